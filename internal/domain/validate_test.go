package domain_test

import (
	"errors"
	"testing"
	"time"

	"hotelbot/internal/domain"
)

func pstr(s string) *string { return &s }

func TestHotelValidate(t *testing.T) {
	cases := []struct {
		name string
		h    domain.Hotel
		ok   bool
	}{
		{"valid", domain.Hotel{Name: "Grand Palace Hotel", City: "New York", Stars: 5, Email: pstr("info@grandpalace.com"), Phone: pstr("+1-212-555-0123")}, true},
		{"no name", domain.Hotel{City: "Miami", Stars: 3}, false},
		{"no city", domain.Hotel{Name: "X", Stars: 3}, false},
		{"stars low", domain.Hotel{Name: "X", City: "Y", Stars: 0}, false},
		{"stars high", domain.Hotel{Name: "X", City: "Y", Stars: 6}, false},
		{"bad email", domain.Hotel{Name: "X", City: "Y", Stars: 3, Email: pstr("nope@")}, false},
		{"bad phone", domain.Hotel{Name: "X", City: "Y", Stars: 3, Phone: pstr("12ab")}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.h.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("expected error")
				}
				if !errors.Is(err, domain.ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
			}
		})
	}
}

func TestRoomValidate(t *testing.T) {
	base := domain.Room{HotelID: 1, RoomNumber: "001", Capacity: 2, Price: 120, Type: domain.RoomDouble}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid room rejected: %v", err)
	}

	bad := []func(r *domain.Room){
		func(r *domain.Room) { r.HotelID = 0 },
		func(r *domain.Room) { r.RoomNumber = "" },
		func(r *domain.Room) { r.RoomNumber = "12345678901" },
		func(r *domain.Room) { r.Capacity = 0 },
		func(r *domain.Room) { r.Capacity = 11 },
		func(r *domain.Room) { r.Price = 0 },
		func(r *domain.Room) { r.Type = "penthouse" },
	}
	for i, mutate := range bad {
		r := base
		mutate(&r)
		if err := r.Validate(); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("case %d: expected ErrInvalidArgument, got %v", i, err)
		}
	}
}

func TestParseRoomType(t *testing.T) {
	rt, err := domain.ParseRoomType("  Suite ")
	if err != nil || rt != domain.RoomSuite {
		t.Fatalf("got %q, %v", rt, err)
	}
	if _, err := domain.ParseRoomType("penthouse"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestBookingDates(t *testing.T) {
	in := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	b := domain.Booking{RoomID: 1, GuestName: "Jane Doe", CheckIn: in, CheckOut: in.AddDate(0, 0, 3), Status: domain.BookingConfirmed}
	if err := b.Validate(); err != nil {
		t.Fatalf("valid booking rejected: %v", err)
	}
	if b.Nights() != 3 {
		t.Fatalf("nights: %d", b.Nights())
	}
	if !b.Covers(in.AddDate(0, 0, 3)) || b.Covers(in.AddDate(0, 0, 4)) || b.Covers(in.AddDate(0, 0, -1)) {
		t.Fatalf("Covers boundaries wrong")
	}

	same := b
	same.CheckOut = same.CheckIn
	if err := same.Validate(); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("check-out == check-in must be rejected, got %v", err)
	}

	noGuest := b
	noGuest.GuestName = " "
	if err := noGuest.Validate(); err == nil {
		t.Fatalf("missing guest name must be rejected")
	}

	badStatus := b
	badStatus.Status = "pending"
	if err := badStatus.Validate(); err == nil {
		t.Fatalf("unknown status must be rejected")
	}
}

func TestParseBookingStatusDefaultsToConfirmed(t *testing.T) {
	st, err := domain.ParseBookingStatus("")
	if err != nil || st != domain.BookingConfirmed {
		t.Fatalf("got %q, %v", st, err)
	}
}
