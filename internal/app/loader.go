package app

import (
	"context"
	"html/template"
	"net/url"

	"github.com/rs/zerolog/log"

	"park_palace/internal/adapters/observability"
	"park_palace/internal/domain"
	"park_palace/internal/render"
)

// Loader fetches one backend resource per call and renders it into its
// container. A failed load never returns without presenting an error block.
type Loader struct {
	api domain.HotelAPI
	r   *render.Renderer
}

func NewLoader(api domain.HotelAPI, r *render.Renderer) *Loader {
	return &Loader{api: api, r: r}
}

func (l *Loader) LoadRooms(ctx context.Context, page *render.Page) error {
	rooms, err := l.api.FeaturedRooms(ctx)
	if err == nil {
		var html template.HTML
		if html, err = l.r.Rooms(rooms); err == nil {
			page.Render(render.RoomsContainer, html)
		}
	}
	return l.settle(page, render.RoomsContainer, MsgRoomsFailed, "/#rooms", err)
}

// LoadAllRooms renders the full room list, featured or not.
func (l *Loader) LoadAllRooms(ctx context.Context, page *render.Page) error {
	rooms, err := l.api.Rooms(ctx)
	if err == nil {
		var html template.HTML
		if html, err = l.r.AllRooms(rooms); err == nil {
			page.Render(render.RoomsContainer, html)
		}
	}
	return l.settle(page, render.RoomsContainer, MsgRoomsFailed, "/rooms", err)
}

func (l *Loader) LoadMenu(ctx context.Context, page *render.Page, category string) error {
	items, err := l.api.MenuByCategory(ctx, category)
	if err == nil {
		var html template.HTML
		if html, err = l.r.Menu(items); err == nil {
			page.Render(render.MenuContainer, html)
		}
	}
	return l.settle(page, render.MenuContainer, MsgMenuFailed, menuURL(category), err)
}

func (l *Loader) LoadHotelInfo(ctx context.Context, page *render.Page) error {
	info, err := l.api.HotelInfo(ctx)
	if err == nil {
		var html template.HTML
		if html, err = l.r.HotelInfo(info); err == nil {
			page.Render(render.HotelInfoContainer, html)
		}
	}
	return l.settle(page, render.HotelInfoContainer, MsgHotelFailed, "/#about", err)
}

func (l *Loader) settle(page *render.Page, container, message, retryURL string, err error) error {
	observability.ObserveRender(container, err)
	if err != nil {
		log.Warn().Err(err).Str("container", container).Msg("load failed")
		ShowError(l.r, page, container, message, retryURL)
	}
	return err
}

func menuURL(category string) string {
	return "/?" + url.Values{"category": {category}}.Encode() + "#menu"
}
