package domain

import (
	"fmt"
	"strings"
	"time"
)

type RoomType string

const (
	RoomSingle       RoomType = "single"
	RoomDouble       RoomType = "double"
	RoomSuite        RoomType = "suite"
	RoomDeluxe       RoomType = "deluxe"
	RoomPresidential RoomType = "presidential"
)

// RoomTypes lists the enum in schema order.
var RoomTypes = []RoomType{RoomSingle, RoomDouble, RoomSuite, RoomDeluxe, RoomPresidential}

func (t RoomType) Valid() bool {
	for _, v := range RoomTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ParseRoomType is case-insensitive and trims whitespace.
func ParseRoomType(s string) (RoomType, error) {
	t := RoomType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown room type %q", ErrInvalidArgument, s)
	}
	return t, nil
}

type Room struct {
	ID          int64     `json:"id"`
	HotelID     int64     `json:"hotel_id"`
	RoomNumber  string    `json:"room_number"`
	Capacity    int       `json:"capacity"`
	Price       float64   `json:"price_per_night"`
	Type        RoomType  `json:"room_type"`
	IsAvailable bool      `json:"is_available"`
	ImageURLs   []string  `json:"image_urls"`
	Amenities   []string  `json:"amenities"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r Room) Validate() error {
	switch {
	case r.HotelID <= 0:
		return fmt.Errorf("%w: room must belong to a hotel", ErrInvalidArgument)
	case strings.TrimSpace(r.RoomNumber) == "" || len(r.RoomNumber) > 10:
		return fmt.Errorf("%w: room number must be 1-10 characters", ErrInvalidArgument)
	case r.Capacity < 1 || r.Capacity > 10:
		return fmt.Errorf("%w: capacity must be between 1 and 10, got %d", ErrInvalidArgument, r.Capacity)
	case r.Price <= 0:
		return fmt.Errorf("%w: price per night must be positive", ErrInvalidArgument)
	case !r.Type.Valid():
		return fmt.Errorf("%w: unknown room type %q", ErrInvalidArgument, r.Type)
	}
	return nil
}
