package app_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelbot/internal/app"
	"hotelbot/internal/domain"
)

func TestFormatHotelsByCity(t *testing.T) {
	assert.Equal(t, "No hotels found in Atlantis. Please try another city.", app.FormatHotelsByCity("Atlantis", nil))

	out := app.FormatHotelsByCity("Miami", []domain.HotelSummary{{
		Hotel:          domain.Hotel{ID: 2, Name: "Ocean View Resort", City: "Miami", Address: ptr("456 Beach Avenue"), Stars: 4},
		TotalRooms:     12,
		AvailableRooms: 9,
	}})
	assert.Contains(t, out, "Found 1 hotels in Miami:")
	assert.Contains(t, out, "🏨 **Ocean View Resort** (Hotel ID: 2)")
	assert.Contains(t, out, "📍 456 Beach Avenue, Miami")
	assert.Contains(t, out, "⭐ Rating: 4/5")
	assert.Contains(t, out, "✅ Available Rooms: 9")
}

func TestFormatHotelsByPriceRange(t *testing.T) {
	out := app.FormatHotelsByPriceRange(100, 250, []domain.HotelSummary{{
		Hotel:        domain.Hotel{ID: 4, Name: "City Center Inn", City: "Chicago", Stars: 3},
		MinRoomPrice: ptr(110.0),
		MaxRoomPrice: ptr(240.5),
	}})
	assert.Contains(t, out, "in $100.00 - $250.00 range")
	assert.Contains(t, out, "💰 Room Price Range: $110.00 - $240.50")
}

func TestFormatRooms(t *testing.T) {
	assert.Equal(t, "No available rooms found with the specified criteria.", app.FormatRooms(nil))
	out := app.FormatRooms([]domain.RoomView{{
		Room:      domain.Room{ID: 31, RoomNumber: "004", Type: domain.RoomSuite, Price: 420, Capacity: 3},
		HotelName: "Luxury Suites",
		City:      "Los Angeles",
	}})
	assert.Contains(t, out, "🏠 **Room 004** - suite")
	assert.Contains(t, out, "💰 Price: $420.00/night")
	assert.Contains(t, out, "👥 Capacity: 3 guests")
	assert.Contains(t, out, "🆔 Room ID: 31")
}

func TestFormatRoomTypes_SingleHotelOmitsCity(t *testing.T) {
	ps := []domain.RoomTypePrice{{RoomType: domain.RoomDouble, HotelID: 1, HotelName: "Grand Palace Hotel", City: "New York", AvailableCount: 2, MinPrice: 150, MaxPrice: 280, AvgPrice: 215}}
	assert.Contains(t, app.FormatRoomTypes(ps, true), "🏨 Hotel: Grand Palace Hotel (Hotel ID: 1)")
	assert.Contains(t, app.FormatRoomTypes(ps, false), "🏨 Hotel: Grand Palace Hotel (New York, Hotel ID: 1)")
	assert.Equal(t, "No room types found.", app.FormatRoomTypes(nil, false))
}

func TestFormatHotelOverview_GroupsAndTruncates(t *testing.T) {
	d := domain.HotelDetails{HotelSummary: domain.HotelSummary{Hotel: domain.Hotel{ID: 5, Name: "Luxury Suites", City: "Los Angeles", Stars: 5}}}
	for i := 1; i <= 5; i++ {
		d.Rooms = append(d.Rooms, domain.RoomView{Room: domain.Room{RoomNumber: fmt.Sprintf("%03d", i), Type: domain.RoomSingle, Price: float64(90 + i)}})
	}
	d.Rooms = append(d.Rooms, domain.RoomView{Room: domain.Room{RoomNumber: "010", Type: domain.RoomSuite, Price: 400}})

	out := app.FormatHotelOverview(d)
	assert.Contains(t, out, "🏠 **single** (5 available)")
	assert.Contains(t, out, "• Room 003 - $93.00/night")
	assert.NotContains(t, out, "Room 004")
	assert.Contains(t, out, "... and 2 more single rooms")
	assert.Contains(t, out, "🏠 **suite** (1 available)")
	assert.Less(t, strings.Index(out, "**single**"), strings.Index(out, "**suite**"))

	d.Rooms = nil
	assert.Contains(t, app.FormatHotelOverview(d), "No rooms currently available at this hotel.")
}

func TestFormatHotelDetails(t *testing.T) {
	d := domain.HotelDetails{
		HotelSummary: domain.HotelSummary{
			Hotel:        domain.Hotel{ID: 3, Name: "Mountain Lodge", City: "Denver", Stars: 4, Description: ptr("Cozy mountain retreat"), Amenities: []string{"WiFi", "Fireplace"}},
			MinRoomPrice: ptr(99.0), MaxRoomPrice: ptr(350.0),
		},
		TotalBookings: 4,
		Rooms:         []domain.RoomView{{Room: domain.Room{RoomNumber: "002", Type: domain.RoomDeluxe, Price: 250}}},
	}
	out := app.FormatHotelDetails(d)
	assert.Contains(t, out, "📝 Cozy mountain retreat")
	assert.Contains(t, out, "🎯 Amenities: WiFi, Fireplace")
	assert.Contains(t, out, "💰 Price Range: $99.00 - $350.00")
	assert.Contains(t, out, "📅 Total Bookings: 4")
	assert.Contains(t, out, "• Room 002 (deluxe) - $250.00/night")
}

func TestFormatCitySummaryAndBookings(t *testing.T) {
	cs := app.FormatCitySummary(domain.CitySummary{City: "Boston", HotelCount: 1, AvgStars: 4, TotalRooms: 10, AvailableRooms: 7})
	assert.Contains(t, cs, "🌍 **Boston** overview:")
	assert.Contains(t, cs, "💰 Price Range: n/a/night")

	assert.Equal(t, "No recent bookings found.", app.FormatBookings(nil))
	bk := domain.BookingView{
		Booking:    domain.Booking{GuestName: "Jane Doe", CheckIn: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), CheckOut: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), TotalAmount: ptr(450.0), Status: domain.BookingConfirmed},
		HotelName:  "Historic Hotel",
		City:       "Boston",
		RoomNumber: "007",
		RoomType:   domain.RoomDouble,
	}
	out := app.FormatBookings([]domain.BookingView{bk})
	assert.Contains(t, out, "📆 2025-03-01 to 2025-03-04")
	assert.Contains(t, out, "💰 $450.00")
	assert.Contains(t, out, "📊 Status: confirmed")
}
