package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "park_palace/internal/adapters/redis"
	"park_palace/internal/app"
	"park_palace/internal/domain"
)

// ---- fakes ----

type fakeAPI struct {
	mu sync.Mutex

	rooms      []domain.Room
	roomsErr   error
	menu       map[string][]domain.MenuItem
	menuErr    error
	hotel      domain.HotelInfo
	hotelErr   error
	hotelDelay time.Duration
	onHotel    func()
	booked     domain.BookingResult
	bookErr    error

	menuCalls []string
	bookCalls []domain.BookingRequest
}

func (f *fakeAPI) FeaturedRooms(ctx context.Context) ([]domain.Room, error) {
	return f.rooms, f.roomsErr
}

func (f *fakeAPI) Rooms(ctx context.Context) ([]domain.Room, error) { return f.rooms, f.roomsErr }

func (f *fakeAPI) Room(ctx context.Context, id int64) (domain.Room, error) {
	for _, r := range f.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Room{}, domain.ErrNotFound
}

func (f *fakeAPI) MenuByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	f.mu.Lock()
	f.menuCalls = append(f.menuCalls, category)
	f.mu.Unlock()
	return f.menu[category], f.menuErr
}

func (f *fakeAPI) HotelInfo(ctx context.Context) (domain.HotelInfo, error) {
	if f.hotelDelay > 0 {
		time.Sleep(f.hotelDelay)
	}
	if f.onHotel != nil {
		f.onHotel()
	}
	return f.hotel, f.hotelErr
}

func (f *fakeAPI) CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.BookingResult, error) {
	f.mu.Lock()
	f.bookCalls = append(f.bookCalls, req)
	f.mu.Unlock()
	return f.booked, f.bookErr
}

func (f *fakeAPI) Booking(ctx context.Context, id int64) (domain.BookingResult, error) {
	if f.booked.ID == id {
		return f.booked, nil
	}
	return domain.BookingResult{}, domain.ErrNotFound
}

func (f *fakeAPI) menuCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.menuCalls)
}

func newNotifier(t *testing.T) (*app.Notifier, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return app.NewNotifier(redisad.New(mr.Addr(), "", 0), 5*time.Second), mr
}

// fixedToday pins "today" to 2024-06-01 UTC.
func fixedToday() time.Time { return time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC) }
