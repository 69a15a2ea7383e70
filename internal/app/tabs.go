package app

import (
	"context"
	"errors"
	"fmt"

	"park_palace/internal/render"
)

var ErrUnknownCategory = errors.New("unknown menu category")

type Category struct {
	Key   string
	Label string
}

// Categories in tab order.
var Categories = []Category{
	{Key: "breakfast", Label: "Breakfast"},
	{Key: "lunch", Label: "Lunch"},
	{Key: "dinner", Label: "Dinner"},
	{Key: "beverages", Label: "Beverages"},
	{Key: "desserts", Label: "Desserts"},
}

const DefaultCategory = "breakfast"

// IsCategory reports whether key names a tab. Exact match only.
func IsCategory(key string) bool {
	for _, c := range Categories {
		if c.Key == key {
			return true
		}
	}
	return false
}

// CategoryTabs keeps exactly one menu tab active and reloads the menu on switch.
type CategoryTabs struct {
	loader *Loader
	r      *render.Renderer
}

func NewCategoryTabs(l *Loader, r *render.Renderer) *CategoryTabs {
	return &CategoryTabs{loader: l, r: r}
}

// Tabs returns every category with only active marked.
func (c *CategoryTabs) Tabs(active string) []render.Tab {
	out := make([]render.Tab, 0, len(Categories))
	for _, cat := range Categories {
		out = append(out, render.Tab{Key: cat.Key, Label: cat.Label, Active: cat.Key == active})
	}
	return out
}

// RenderTabs writes the tab strip for active into page.
func (c *CategoryTabs) RenderTabs(page *render.Page, active string) error {
	html, err := c.r.Tabs(c.Tabs(active))
	if err != nil {
		return err
	}
	page.Render(render.TabsContainer, html)
	return nil
}

// Switch activates key and reloads its menu once. Selecting the already
// active key reloads as well. An unknown key leaves state and page untouched.
func (c *CategoryTabs) Switch(ctx context.Context, page *render.Page, state UIState, key string) (UIState, error) {
	if !IsCategory(key) {
		return state, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}
	if err := c.RenderTabs(page, key); err != nil {
		return state, err
	}
	state.Category = key
	// load failures are already presented in the menu container
	_ = c.loader.LoadMenu(ctx, page, key)
	return state, nil
}
