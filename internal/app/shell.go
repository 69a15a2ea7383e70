package app

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"park_palace/internal/domain"
	"park_palace/internal/render"
)

const SiteTitle = "Park Palace"

// Shell composes the page from the other controllers.
type Shell struct {
	api      domain.HotelAPI
	r        *render.Renderer
	Loader   *Loader
	Tabs     *CategoryTabs
	Booking  *BookingFlow
	Notifier *Notifier

	copyrightStart int
	now            func() time.Time
}

func NewShell(api domain.HotelAPI, r *render.Renderer, booking *BookingFlow, n *Notifier, copyrightStart int) *Shell {
	l := NewLoader(api, r)
	return &Shell{
		api:            api,
		r:              r,
		Loader:         l,
		Tabs:           NewCategoryTabs(l, r),
		Booking:        booking,
		Notifier:       n,
		copyrightStart: copyrightStart,
		now:            time.Now,
	}
}

// ErrPartialLoad means at least one container holds an error block instead
// of its content. The page is still complete and renderable.
var ErrPartialLoad = errors.New("initial load incomplete")

// InitialLoad fills rooms, hotel info, tabs and the menu for category. The
// three fetches run concurrently and share no cancellation: one failing
// leaves the others to finish. Load failures come back wrapped in
// ErrPartialLoad once every container is filled.
func (s *Shell) InitialLoad(ctx context.Context, page *render.Page, category string) error {
	if category == "" {
		category = DefaultCategory
	}
	if !IsCategory(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if err := s.Tabs.RenderTabs(page, category); err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error { return s.Loader.LoadRooms(ctx, page) })
	g.Go(func() error { return s.Loader.LoadMenu(ctx, page, category) })
	g.Go(func() error { return s.Loader.LoadHotelInfo(ctx, page) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrPartialLoad, err)
	}
	return nil
}

func (s *Shell) view(page *render.Page, category string) render.PageView {
	return render.PageView{
		Title:     SiteTitle,
		Page:      page,
		Category:  category,
		YearRange: render.YearRange(s.copyrightStart, s.now()),
	}
}

// Home builds the full page view for one request. Failed loads show up as
// error blocks on the page, not as an error.
func (s *Shell) Home(ctx context.Context, session string, state UIState) (render.PageView, error) {
	if state.Category == "" {
		state.Category = DefaultCategory
	}
	if !IsCategory(state.Category) {
		return render.PageView{}, fmt.Errorf("%w: %q", ErrUnknownCategory, state.Category)
	}
	// read before the loads: a slow backend must not outlast the notification TTL
	notes := s.Notifications(ctx, session)

	page := render.NewPage()
	if err := s.InitialLoad(ctx, page, state.Category); err != nil {
		if !errors.Is(err, ErrPartialLoad) {
			return render.PageView{}, err
		}
		log.Debug().Err(err).Msg("home rendered with error blocks")
	}

	v := s.view(page, state.Category)
	if state.CurrentRoom != nil {
		m := s.Booking.Open(*state.CurrentRoom)
		v.Modal = &m
	}
	v.Notifications = notes
	return v, nil
}

// StaticPage builds the session-free page for category. Unlike Home it fails
// when any load failed, so an error page is never published.
func (s *Shell) StaticPage(ctx context.Context, category string) (render.PageView, error) {
	if category == "" {
		category = DefaultCategory
	}
	page := render.NewPage()
	if err := s.InitialLoad(ctx, page, category); err != nil {
		return render.PageView{}, err
	}
	return s.view(page, category), nil
}

// Notifications renders the live notifications of session. A store failure
// yields no notifications rather than a failed page.
func (s *Shell) Notifications(ctx context.Context, session string) template.HTML {
	if session == "" {
		return ""
	}
	ns, err := s.Notifier.Active(ctx, session)
	if err != nil {
		log.Warn().Err(err).Msg("list notifications failed")
		return ""
	}
	html, err := s.r.Notifications(ns)
	if err != nil {
		log.Error().Err(err).Msg("render notifications failed")
		return ""
	}
	return html
}

// Confirmation renders a stored booking.
func (s *Shell) Confirmation(ctx context.Context, id int64) (template.HTML, error) {
	b, err := s.api.Booking(ctx, id)
	if err != nil {
		return "", err
	}
	return s.r.BookingConfirmation(b)
}
