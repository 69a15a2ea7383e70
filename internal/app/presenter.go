package app

import (
	"html/template"

	"github.com/rs/zerolog/log"

	"park_palace/internal/render"
)

// Fixed messages shown in a container when its load fails.
const (
	MsgRoomsFailed = "Failed to load rooms"
	MsgMenuFailed  = "Failed to load menu"
	MsgHotelFailed = "Failed to load hotel information"
)

// ShowError replaces container with message and a Retry control pointing at
// retryURL ("/" when empty).
func ShowError(r *render.Renderer, page *render.Page, container, message, retryURL string) {
	html, err := r.Error(message, retryURL)
	if err != nil {
		log.Error().Err(err).Str("container", container).Msg("render error block failed")
		html = template.HTML(`<p class="text-muted">` + template.HTMLEscapeString(message) + `</p>`)
	}
	page.Render(container, html)
}
