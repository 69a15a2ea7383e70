package app

import "park_palace/internal/domain"

// UIState is the per-request view state. It travels in query strings and
// hidden form fields and is never kept between requests.
type UIState struct {
	Category    string
	CurrentRoom *domain.SelectedRoom
}
