package domain

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

var BookingStatuses = []BookingStatus{BookingConfirmed, BookingCompleted, BookingCancelled}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return BookingConfirmed, nil
	}
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown booking status %q", ErrInvalidArgument, s)
	}
	return st, nil
}

type Booking struct {
	ID          int64         `json:"id"`
	RoomID      int64         `json:"room_id"`
	GuestName   string        `json:"guest_name"`
	GuestEmail  *string       `json:"guest_email,omitempty"`
	GuestPhone  *string       `json:"guest_phone,omitempty"`
	CheckIn     time.Time     `json:"check_in"`
	CheckOut    time.Time     `json:"check_out"`
	TotalAmount *float64      `json:"total_amount,omitempty"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Nights counts whole days between check-in and check-out.
func (b Booking) Nights() int {
	return int(dateOnly(b.CheckOut).Sub(dateOnly(b.CheckIn)).Hours() / 24)
}

// Covers reports whether day falls within [check-in, check-out].
func (b Booking) Covers(day time.Time) bool {
	d := dateOnly(day)
	return !d.Before(dateOnly(b.CheckIn)) && !d.After(dateOnly(b.CheckOut))
}

func (b Booking) Validate() error {
	if b.RoomID <= 0 {
		return fmt.Errorf("%w: booking must reference a room", ErrInvalidArgument)
	}
	if strings.TrimSpace(b.GuestName) == "" {
		return fmt.Errorf("%w: guest name is required", ErrInvalidArgument)
	}
	if !dateOnly(b.CheckOut).After(dateOnly(b.CheckIn)) {
		return fmt.Errorf("%w: check-out must be after check-in", ErrInvalidArgument)
	}
	if b.GuestEmail != nil && !ValidEmail(*b.GuestEmail) {
		return fmt.Errorf("%w: invalid guest email %q", ErrInvalidArgument, *b.GuestEmail)
	}
	if b.GuestPhone != nil && !ValidPhone(*b.GuestPhone) {
		return fmt.Errorf("%w: invalid guest phone %q", ErrInvalidArgument, *b.GuestPhone)
	}
	if b.Status != "" && !b.Status.Valid() {
		return fmt.Errorf("%w: unknown booking status %q", ErrInvalidArgument, b.Status)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
