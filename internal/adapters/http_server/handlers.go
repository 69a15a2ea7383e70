// internal/adapters/http_server/handlers.go
package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"park_palace/internal/app"
	"park_palace/internal/domain"
	"park_palace/internal/render"
)

type Handlers struct {
	Shell *app.Shell
	R     *render.Renderer
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/", h.home)
	s.mux.Get("/fragments/rooms", h.roomsFragment)
	s.mux.Get("/fragments/hotel", h.hotelFragment)
	s.mux.Get("/fragments/menu/{category}", h.switchCategory)
	s.mux.Get("/rooms", h.allRooms)

	s.mux.Get("/book", h.bookingModal)
	s.mux.Get("/book/dates", h.coupleDates)
	s.mux.Post("/bookings", h.submitBooking)
	s.mux.Get("/bookings/{id}", h.confirmation)

	s.mux.Get("/notifications", h.notifications)
	s.mux.Post("/notifications/{id}/dismiss", h.dismiss)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeHTML(w http.ResponseWriter, status int, body template.HTML) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Error().Err(err).Msg("write HTML response failed")
	}
}

// writeContainers writes each container wrapped in an element carrying its id,
// so the browser can swap them one by one.
func writeContainers(w http.ResponseWriter, page *render.Page, ids ...string) {
	var b bytes.Buffer
	for _, id := range ids {
		fmt.Fprintf(&b, `<div data-container=%q>%s</div>`, id, page.Container(id))
	}
	writeHTML(w, http.StatusOK, template.HTML(b.String()))
}

// roomFromQuery reads the room a booking link carries; ok is false when the
// query names no room.
func roomFromQuery(q url.Values) (domain.SelectedRoom, bool, error) {
	raw := q.Get("roomId")
	if raw == "" {
		return domain.SelectedRoom{}, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return domain.SelectedRoom{}, false, errors.New("roomId must be a positive integer")
	}
	return domain.SelectedRoom{ID: id, Name: q.Get("name"), Price: domain.Price(q.Get("price"))}, true, nil
}

func (h *Handlers) renderHome(w http.ResponseWriter, r *http.Request, status int, state app.UIState, modal *render.BookingModal) {
	v, err := h.Shell.Home(r.Context(), SessionID(r.Context()), state)
	if errors.Is(err, app.ErrUnknownCategory) {
		writeProblem(w, http.StatusBadRequest, "Invalid category", err.Error())
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("home page failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if modal != nil {
		v.Modal = modal
	}
	var b bytes.Buffer
	if err := h.R.Document(&b, v); err != nil {
		log.Error().Err(err).Msg("render document failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeHTML(w, status, template.HTML(b.String()))
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := app.UIState{Category: q.Get("category")}
	room, ok, err := roomFromQuery(q)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid room", err.Error())
		return
	}
	if ok {
		state.CurrentRoom = &room
	}
	h.renderHome(w, r, http.StatusOK, state, nil)
}

func (h *Handlers) roomsFragment(w http.ResponseWriter, r *http.Request) {
	page := render.NewPage()
	_ = h.Shell.Loader.LoadRooms(r.Context(), page)
	writeHTML(w, http.StatusOK, page.Container(render.RoomsContainer))
}

func (h *Handlers) hotelFragment(w http.ResponseWriter, r *http.Request) {
	page := render.NewPage()
	_ = h.Shell.Loader.LoadHotelInfo(r.Context(), page)
	writeHTML(w, http.StatusOK, page.Container(render.HotelInfoContainer))
}

func (h *Handlers) allRooms(w http.ResponseWriter, r *http.Request) {
	page := render.NewPage()
	_ = h.Shell.Loader.LoadAllRooms(r.Context(), page)
	writeHTML(w, http.StatusOK, page.Container(render.RoomsContainer))
}

func (h *Handlers) switchCategory(w http.ResponseWriter, r *http.Request) {
	page := render.NewPage()
	_, err := h.Shell.Tabs.Switch(r.Context(), page, app.UIState{}, chi.URLParam(r, "category"))
	if errors.Is(err, app.ErrUnknownCategory) {
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("render tabs failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeContainers(w, page, render.TabsContainer, render.MenuContainer)
}

func (h *Handlers) bookingModal(w http.ResponseWriter, r *http.Request) {
	room, ok, err := roomFromQuery(r.URL.Query())
	if err != nil || !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid room", "roomId is required")
		return
	}
	html, err := h.R.BookingModal(h.Shell.Booking.Open(room))
	if err != nil {
		log.Error().Err(err).Msg("render booking modal failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (h *Handlers) coupleDates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := app.CoupleDates(q.Get("checkIn"), q.Get("checkOut"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid date", "checkIn must be YYYY-MM-DD")
		return
	}
	html, err := h.R.CheckOutField(c.MinCheckOut, c.CheckOut)
	if err != nil {
		log.Error().Err(err).Msg("render check-out field failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (h *Handlers) submitBooking(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid form", err.Error())
		return
	}
	state := app.UIState{Category: r.PostForm.Get("category")}
	if state.Category != "" && !app.IsCategory(state.Category) {
		state.Category = ""
	}
	out, err := h.Shell.Booking.Submit(r.Context(), SessionID(r.Context()), state, app.FormFromValues(r.PostForm))
	if err != nil {
		log.Warn().Err(err).Msg("booking notification not stored")
	}

	if out.Modal == nil {
		target := "/"
		if out.State.Category != "" {
			target = "/?" + url.Values{"category": {out.State.Category}}.Encode()
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	status := http.StatusOK
	if out.Modal.WasValidated {
		status = http.StatusUnprocessableEntity
	}
	// the modal comes from the outcome, not from a fresh Open
	st := out.State
	st.CurrentRoom = nil
	h.renderHome(w, r, status, st, out.Modal)
}

func (h *Handlers) confirmation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	html, err := h.Shell.Confirmation(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "booking not found")
	case err != nil:
		log.Warn().Err(err).Int64("id", id).Msg("booking lookup failed")
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", "booking lookup failed")
	default:
		writeHTML(w, http.StatusOK, html)
	}
}

func (h *Handlers) notifications(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, h.Shell.Notifications(r.Context(), SessionID(r.Context())))
}

func (h *Handlers) dismiss(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Shell.Notifier.Dismiss(r.Context(), SessionID(r.Context()), chi.URLParam(r, "id")); err != nil {
		log.Warn().Err(err).Msg("dismiss notification failed")
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", "notification store unavailable")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
