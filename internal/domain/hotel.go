package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Same patterns as the valid_email / valid_phone CHECK constraints.
var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
)

type Hotel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Address     *string   `json:"address,omitempty"`
	Stars       int       `json:"stars"`
	Description *string   `json:"description,omitempty"`
	Phone       *string   `json:"phone_number,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Lat         *float64  `json:"latitude,omitempty"`
	Lon         *float64  `json:"longitude,omitempty"`
	Amenities   []string  `json:"amenities"`
	Active      bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h Hotel) Validate() error {
	switch {
	case strings.TrimSpace(h.Name) == "":
		return fmt.Errorf("%w: hotel name is required", ErrInvalidArgument)
	case strings.TrimSpace(h.City) == "":
		return fmt.Errorf("%w: hotel city is required", ErrInvalidArgument)
	case h.Stars < 1 || h.Stars > 5:
		return fmt.Errorf("%w: stars must be between 1 and 5, got %d", ErrInvalidArgument, h.Stars)
	}
	if h.Email != nil && !ValidEmail(*h.Email) {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidArgument, *h.Email)
	}
	if h.Phone != nil && !ValidPhone(*h.Phone) {
		return fmt.Errorf("%w: invalid phone number %q", ErrInvalidArgument, *h.Phone)
	}
	return nil
}

// AddressLine joins address and city the way chat replies print them.
func (h Hotel) AddressLine() string {
	if h.Address == nil || *h.Address == "" {
		return h.City
	}
	return *h.Address + ", " + h.City
}

func ValidEmail(s string) bool { return emailRe.MatchString(s) }
func ValidPhone(s string) bool { return phoneRe.MatchString(s) }
