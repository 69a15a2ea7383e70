package hotelapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"park_palace/internal/adapters/hotelapi"
	"park_palace/internal/domain"
)

func newClient(t *testing.T, url string, opts ...hotelapi.Option) *hotelapi.Client {
	t.Helper()
	cl, err := hotelapi.New(url, 100, 2*time.Second, opts...) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl
}

func TestNew_RejectsRelativeBase(t *testing.T) {
	if _, err := hotelapi.New("/api", 1, time.Second); err == nil {
		t.Fatalf("expected error for relative base URL")
	}
}

func TestClient_FeaturedRooms(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rooms/featured" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `[{"id":1,"name":"Executive Suite","price":"450.00","capacity":4,
			"size":"75 sqm","amenities":["King Bed","City View"],"imageUrl":"images/rooms/a.jpg"},
			{"id":2,"name":"Ocean View","price":650,"amenities":[]}]`)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rooms, err := newClient(t, ts.URL).FeaturedRooms(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rooms) != 2 || rooms[0].Name != "Executive Suite" || rooms[0].Price != "450.00" {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}
	if rooms[1].Price != "650.00" {
		t.Fatalf("numeric price not normalized: %q", rooms[1].Price)
	}
	if rooms[0].Amenities[0] != "King Bed" || rooms[0].Amenities[1] != "City View" {
		t.Fatalf("amenities reordered: %v", rooms[0].Amenities)
	}
}

func TestClient_GetIgnoresStatusUnlessStrict(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `[{"name":"Pancakes","price":"12.00","dietary":["vegetarian"],"available":true}]`)
	}))
	defer ts.Close()

	items, err := newClient(t, ts.URL).MenuByCategory(context.Background(), "breakfast")
	if err != nil {
		t.Fatalf("lenient client should decode body: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Pancakes" {
		t.Fatalf("unexpected items: %+v", items)
	}

	_, err = newClient(t, ts.URL, hotelapi.WithStrictStatus(true)).MenuByCategory(context.Background(), "breakfast")
	var rej *domain.RejectedError
	if !errors.As(err, &rej) || rej.Status != http.StatusServiceUnavailable {
		t.Fatalf("strict client: expected RejectedError 503, got %v", err)
	}
}

func TestClient_MenuCategoryIsPathEscaped(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.EscapedPath()
		_, _ = io.WriteString(w, `[]`)
	}))
	defer ts.Close()

	if _, err := newClient(t, ts.URL).MenuByCategory(context.Background(), "late night/bar"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "/api/menu/category/late%20night%2Fbar" {
		t.Fatalf("unexpected path: %s", got)
	}
}

func TestClient_HotelInfo_Malformed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `<!doctype html><title>404 Not Found</title>`)
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).HotelInfo(context.Background())
	if !errors.Is(err, domain.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := newClient(t, url).FeaturedRooms(context.Background())
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestClient_RoomNotFoundIsStrict(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Room not found"}`)
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).Room(context.Background(), 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_CreateBooking(t *testing.T) {
	var hits int32
	var sent domain.BookingRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Method != http.MethodPost || r.URL.Path != "/api/bookings" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type: %s", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&sent)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":77,"roomId":3,"checkIn":"2024-06-10","checkOut":"2024-06-12","totalAmount":"450.00"}`)
	}))
	defer ts.Close()

	req := domain.BookingRequest{
		RoomID: 3, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Phone: "+211 700", CheckIn: "2024-06-10", CheckOut: "2024-06-12", Guests: 2, PaymentMethod: "card",
	}
	res, err := newClient(t, ts.URL).CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.ID != 77 || res.CheckIn != "2024-06-10" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if sent != req {
		t.Fatalf("backend received %+v, want %+v", sent, req)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("expected exactly one POST, got %d", hits)
	}
}

func TestClient_CreateBooking_Rejected(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"error": "Room unavailable"}`, "Room unavailable"},
		{"no message", `{}`, "Failed to create booking"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var hits int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				w.WriteHeader(http.StatusConflict)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer ts.Close()

			_, err := newClient(t, ts.URL).CreateBooking(context.Background(), domain.BookingRequest{RoomID: 1})
			var rej *domain.RejectedError
			if !errors.As(err, &rej) {
				t.Fatalf("expected RejectedError, got %v", err)
			}
			if rej.Message != tc.want || rej.Status != http.StatusConflict {
				t.Fatalf("unexpected rejection: %+v", rej)
			}
			if atomic.LoadInt32(&hits) != 1 {
				t.Fatalf("rejections must not be retried, got %d calls", hits)
			}
		})
	}
}
