// Package render turns backend payloads into HTML fragments. All
// interpolated values go through html/template contextual escaping.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/google/go-querystring/query"

	"park_palace/internal/domain"
)

// Container ids are the page regions whose content is replaced on each render.
const (
	RoomsContainer     = "rooms-container"
	MenuContainer      = "menu-container"
	HotelInfoContainer = "hotel-info-container"
	TabsContainer      = "menu-tabs"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// dietary tag -> style class, exact match only.
var dietaryClasses = map[string]string{
	"vegetarian":  "dietary-vegetarian",
	"vegan":       "dietary-vegan",
	"gluten-free": "dietary-gluten-free",
	"dairy-free":  "dietary-dairy-free",
	"spicy":       "dietary-spicy",
}

const (
	dietaryOther   = "dietary-other"
	availableLabel = "Available"
	availableClass = "dietary-available"

	defaultDismissAfter = 5 * time.Second
)

// DietaryClass maps a dietary tag to its badge class.
func DietaryClass(tag string) string {
	if c, ok := dietaryClasses[tag]; ok {
		return c
	}
	return dietaryOther
}

type checkOutField struct{ Min, Value string }

type Renderer struct {
	t       *template.Template
	dismiss time.Duration
}

func New() (*Renderer, error) {
	t, err := template.New("_root").Funcs(template.FuncMap{
		"checkout": func(minDate, value string) checkOutField { return checkOutField{minDate, value} },
	}).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t, dismiss: defaultDismissAfter}, nil
}

// MustNew is New for program start-up and tests.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// WithDismissAfter sets the auto-removal delay advertised on notifications.
func (r *Renderer) WithDismissAfter(d time.Duration) *Renderer {
	cp := *r
	cp.dismiss = d
	return &cp
}

func (r *Renderer) fragment(name string, data any) (template.HTML, error) {
	var b bytes.Buffer
	if err := r.t.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(b.String()), nil
}

type roomCard struct {
	domain.Room
	BookURL string
}

// BookURL is the link that opens the booking modal for room.
func BookURL(room domain.SelectedRoom) string {
	v, err := query.Values(room)
	if err != nil {
		return "/book?roomId=" + strconv.FormatInt(room.ID, 10)
	}
	return "/book?" + v.Encode()
}

// Rooms renders one card per room in input order, or the placeholder.
func (r *Renderer) Rooms(rooms []domain.Room) (template.HTML, error) {
	if len(rooms) == 0 {
		return r.fragment("rooms_empty", nil)
	}
	cards := make([]roomCard, 0, len(rooms))
	for _, rm := range rooms {
		cards = append(cards, roomCard{
			Room:    rm,
			BookURL: BookURL(domain.SelectedRoom{ID: rm.ID, Name: rm.Name, Price: rm.Price}),
		})
	}
	return r.fragment("rooms", cards)
}

type badge struct{ Label, Class string }

type menuCard struct {
	domain.MenuItem
	Badges []badge
}

// Menu renders one card per item in input order, or the placeholder.
func (r *Renderer) Menu(items []domain.MenuItem) (template.HTML, error) {
	if len(items) == 0 {
		return r.fragment("menu_empty", nil)
	}
	cards := make([]menuCard, 0, len(items))
	for _, it := range items {
		badges := make([]badge, 0, len(it.Dietary)+1)
		for _, d := range it.Dietary {
			badges = append(badges, badge{Label: d, Class: DietaryClass(d)})
		}
		if it.Available {
			badges = append(badges, badge{Label: availableLabel, Class: availableClass})
		}
		cards = append(cards, menuCard{MenuItem: it, Badges: badges})
	}
	return r.fragment("menu", cards)
}

func (r *Renderer) HotelInfo(info domain.HotelInfo) (template.HTML, error) {
	return r.fragment("hotel_info", info)
}

func (r *Renderer) AllRooms(rooms []domain.Room) (template.HTML, error) {
	inner, err := r.Rooms(rooms)
	if err != nil {
		return "", err
	}
	return r.fragment("all_rooms", inner)
}

// Error is the error block with a manual retry control.
func (r *Renderer) Error(message, retryURL string) (template.HTML, error) {
	if retryURL == "" {
		retryURL = "/"
	}
	return r.fragment("error", struct{ Message, RetryURL string }{message, retryURL})
}

func (r *Renderer) Notification(n domain.Notification) (template.HTML, error) {
	return r.fragment("notification", struct {
		domain.Notification
		DismissAfter int64
	}{n, r.dismiss.Milliseconds()})
}

func (r *Renderer) Notifications(ns []domain.Notification) (template.HTML, error) {
	var b bytes.Buffer
	for _, n := range ns {
		h, err := r.Notification(n)
		if err != nil {
			return "", err
		}
		b.WriteString(string(h))
	}
	return template.HTML(b.String()), nil
}

func (r *Renderer) Tabs(tabs []Tab) (template.HTML, error) {
	return r.fragment("tabs", tabs)
}

func (r *Renderer) BookingModal(m BookingModal) (template.HTML, error) {
	return r.fragment("booking_modal", m)
}

func (r *Renderer) CheckOutField(minDate, value string) (template.HTML, error) {
	return r.fragment("checkout_field", checkOutField{minDate, value})
}

func (r *Renderer) BookingConfirmation(b domain.BookingResult) (template.HTML, error) {
	return r.fragment("booking_confirmation", b)
}

// Document writes the full page.
func (r *Renderer) Document(w io.Writer, v PageView) error {
	return r.t.ExecuteTemplate(w, "layout", v)
}

// YearRange is the footer copyright span.
func YearRange(start int, now time.Time) string {
	if y := now.Year(); y > start {
		return fmt.Sprintf("%d - %d", start, y)
	}
	return strconv.Itoa(start)
}
