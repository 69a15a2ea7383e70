package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price is a display-only amount. The backend serializes prices as "%.2f"
// strings; bare JSON numbers are accepted as well.
type Price string

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price(strings.TrimSpace(s))
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = Price(strconv.FormatFloat(f, 'f', 2, 64))
	return nil
}

func (p Price) String() string { return string(p) }

type Room struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       Price    `json:"price"`
	Capacity    int      `json:"capacity"`
	Size        string   `json:"size"`
	Amenities   []string `json:"amenities"` // payload order, never sorted
	ImageURL    string   `json:"imageUrl"`
	Featured    bool     `json:"featured"`
}

type MenuItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       Price    `json:"price"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	Dietary     []string `json:"dietary"`
	Available   bool     `json:"available"`
}

// HotelInfo fields are opaque display strings.
type HotelInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	CheckInTime  string   `json:"checkInTime"`
	CheckOutTime string   `json:"checkOutTime"`
	Amenities    []string `json:"amenities"`
	Policies     []string `json:"policies"`
}
