package render

import (
	"html/template"
	"sync"

	"park_palace/internal/domain"
)

// Page is the set of named containers of one page. Loads run concurrently,
// so access is guarded.
type Page struct {
	mu         sync.Mutex
	containers map[string]template.HTML
}

func NewPage() *Page { return &Page{containers: make(map[string]template.HTML)} }

// Render replaces the whole content of container id.
func (p *Page) Render(id string, fragment template.HTML) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.containers[id] = fragment
}

func (p *Page) Container(id string) template.HTML {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.containers[id]
}

type Tab struct {
	Key    string
	Label  string
	Active bool
}

// BookingModal is the booking dialog for one room.
type BookingModal struct {
	Visible      bool
	Title        string
	Room         domain.SelectedRoom
	MinCheckIn   string
	MinCheckOut  string
	WasValidated bool
	Values       map[string]string // field name -> submitted value
	Errors       map[string]string // field name -> message
}

type PageView struct {
	Title         string
	Page          *Page
	Category      string
	Modal         *BookingModal
	Notifications template.HTML
	YearRange     string
}
