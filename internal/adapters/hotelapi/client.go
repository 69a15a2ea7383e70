// internal/adapters/hotelapi/client.go
package hotelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"park_palace/internal/adapters/observability"
	"park_palace/internal/domain"
)

const bookingFallbackMessage = "Failed to create booking"

type Client struct {
	base   string
	hc     *http.Client
	rl     *rate.Limiter
	strict bool
}

type Option func(*Client)

// WithStrictStatus makes every GET treat a non-2xx status as an error
// instead of decoding whatever body came back.
func WithStrictStatus(strict bool) Option {
	return func(c *Client) { c.strict = strict }
}

// WithLogger logs every outbound call through l.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *Client) { c.hc.Transport = NewLoggingTransport(l, "hotel-backend", nil) }
}

func New(base string, rps int, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend base URL %q is not absolute", base)
	}
	if rps <= 0 {
		rps = 20
	}
	c := &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ---- Public API ----

func (c *Client) FeaturedRooms(ctx context.Context) ([]domain.Room, error) {
	var out []domain.Room
	return out, c.get(ctx, "rooms_featured", "/api/rooms/featured", c.strict, &out)
}

func (c *Client) Rooms(ctx context.Context) ([]domain.Room, error) {
	var out []domain.Room
	return out, c.get(ctx, "rooms", "/api/rooms", c.strict, &out)
}

func (c *Client) Room(ctx context.Context, id int64) (domain.Room, error) {
	var out domain.Room
	return out, c.get(ctx, "room", "/api/rooms/"+strconv.FormatInt(id, 10), true, &out)
}

func (c *Client) MenuByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	return out, c.get(ctx, "menu_category", "/api/menu/category/"+url.PathEscape(category), c.strict, &out)
}

func (c *Client) HotelInfo(ctx context.Context) (domain.HotelInfo, error) {
	var out domain.HotelInfo
	return out, c.get(ctx, "hotel", "/api/hotel", c.strict, &out)
}

func (c *Client) Booking(ctx context.Context, id int64) (domain.BookingResult, error) {
	var out domain.BookingResult
	return out, c.get(ctx, "booking", "/api/bookings/"+strconv.FormatInt(id, 10), true, &out)
}

// CreateBooking POSTs the request once. A 2xx answer is decoded as the
// booking; anything else becomes a *domain.RejectedError carrying the
// backend's "error" field.
func (c *Client) CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.BookingResult, error) {
	var out domain.BookingResult
	body, err := json.Marshal(req)
	if err != nil {
		return out, err
	}
	resp, err := c.do(ctx, "bookings_create", http.MethodPost, "/api/bookings", bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if ok(resp.StatusCode) {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return out, fmt.Errorf("%w: booking: %v", domain.ErrMalformed, err)
		}
		return out, nil
	}
	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil {
		return out, fmt.Errorf("%w: booking error body (status %d): %v", domain.ErrMalformed, resp.StatusCode, err)
	}
	msg := strings.TrimSpace(eb.Error)
	if msg == "" {
		msg = bookingFallbackMessage
	}
	return out, &domain.RejectedError{Status: resp.StatusCode, Message: msg}
}

// ---- Internals ----

type errorBody struct {
	Error string `json:"error"`
}

func ok(status int) bool { return status >= 200 && status < 300 }

// get issues a single GET and decodes the body into out. Unless strict is
// set the status code is not inspected: any body that parses is data.
func (c *Client) get(ctx context.Context, endpoint, path string, strict bool, out any) error {
	resp, err := c.do(ctx, endpoint, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if strict && !ok(resp.StatusCode) {
		var eb errorBody
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(b, &eb)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", endpoint, domain.ErrNotFound)
		}
		return &domain.RejectedError{Status: resp.StatusCode, Message: strings.TrimSpace(eb.Error)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrMalformed, endpoint, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, body io.Reader) (*http.Response, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "park-palace-storefront/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("backend", endpoint, 0, time.Since(start))
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUnavailable, endpoint, err)
	}
	observability.ObserveExternal("backend", endpoint, resp.StatusCode, time.Since(start))
	return resp, nil
}
