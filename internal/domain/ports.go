package domain

import "context"

type HotelRepository interface {
	// Write paths
	InsertHotel(ctx context.Context, h Hotel) (int64, error)
	InsertRoom(ctx context.Context, r Room) (int64, error)
	InsertBooking(ctx context.Context, b Booking) (int64, error)
	SetRoomAvailability(ctx context.Context, roomID int64, available bool) error
	Truncate(ctx context.Context) error

	// Read paths
	SearchHotelsByCity(ctx context.Context, city string, limit int) ([]HotelSummary, error)
	SearchHotelsByRating(ctx context.Context, minStars float64, limit int) ([]HotelSummary, error)
	SearchHotelsByPriceRange(ctx context.Context, minPrice, maxPrice float64, limit int) ([]HotelSummary, error)
	AvailableRooms(ctx context.Context, f RoomFilter) ([]RoomView, error)
	RoomTypesAndPrices(ctx context.Context, hotelID *int64) ([]RoomTypePrice, error)
	HotelByID(ctx context.Context, id int64) (HotelDetails, error)
	HotelByName(ctx context.Context, name string) (HotelDetails, error)
	CitySummary(ctx context.Context, city string) (CitySummary, error)
	RecentBookings(ctx context.Context, limit int) ([]BookingView, error)
	CheckRoomAvailability(ctx context.Context, hotelName, roomType string, limit int) ([]RoomView, error)
}

// ReportRepository backs the database contents report.
type ReportRepository interface {
	ListHotels(ctx context.Context) ([]HotelListing, error)
	RoomTypeStats(ctx context.Context) ([]RoomTypeStat, error)
	AvailabilityStats(ctx context.Context) (AvailabilityStat, error)
	CityStats(ctx context.Context) ([]CityStat, error)
	BookingStatusStats(ctx context.Context) ([]BookingStatusStat, error)
	OverallStats(ctx context.Context) (OverallStats, error)
	RecentBookings(ctx context.Context, limit int) ([]BookingView, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	// Flush removes every key starting with prefix.
	Flush(ctx context.Context, prefix string) error
}

// Read models & queries

type RoomFilter struct {
	HotelID  *int64
	RoomType string // substring, case-insensitive
	MaxPrice *float64
	Limit    int
}

type HotelSummary struct {
	Hotel
	TotalRooms     int      `json:"total_rooms"`
	AvailableRooms int      `json:"available_rooms"`
	MinRoomPrice   *float64 `json:"min_room_price,omitempty"`
	MaxRoomPrice   *float64 `json:"max_room_price,omitempty"`
}

type RoomView struct {
	Room
	HotelName string  `json:"hotel_name"`
	City      string  `json:"city"`
	Address   *string `json:"address,omitempty"`
}

type RoomTypePrice struct {
	RoomType       RoomType `json:"room_type"`
	HotelID        int64    `json:"hotel_id"`
	HotelName      string   `json:"hotel_name"`
	City           string   `json:"city"`
	AvailableCount int      `json:"available_count"`
	MinPrice       float64  `json:"min_price"`
	MaxPrice       float64  `json:"max_price"`
	AvgPrice       float64  `json:"avg_price"`
}

type HotelDetails struct {
	HotelSummary
	TotalBookings int        `json:"total_bookings"`
	Rooms         []RoomView `json:"rooms,omitempty"` // available rooms, cheapest first
}

type CitySummary struct {
	City           string   `json:"city"`
	HotelCount     int      `json:"hotel_count"`
	TotalRooms     int      `json:"total_rooms"`
	AvailableRooms int      `json:"available_rooms"`
	AvgStars       float64  `json:"avg_stars"`
	MinPrice       *float64 `json:"min_price,omitempty"`
	MaxPrice       *float64 `json:"max_price,omitempty"`
}

type BookingView struct {
	Booking
	HotelName  string   `json:"hotel_name"`
	City       string   `json:"city"`
	RoomNumber string   `json:"room_number"`
	RoomType   RoomType `json:"room_type"`
}

// Report models

type HotelListing struct {
	Hotel
	RoomCount    int `json:"room_count"`
	BookingCount int `json:"booking_count"`
}

type RoomTypeStat struct {
	RoomType    RoomType `json:"room_type"`
	Count       int      `json:"count"`
	MinPrice    float64  `json:"min_price"`
	MaxPrice    float64  `json:"max_price"`
	AvgPrice    float64  `json:"avg_price"`
	AvgCapacity float64  `json:"avg_capacity"`
}

type AvailabilityStat struct {
	TotalRooms     int     `json:"total_rooms"`
	AvailableRooms int     `json:"available_rooms"`
	OccupiedRooms  int     `json:"occupied_rooms"`
	Percentage     float64 `json:"availability_percentage"`
}

type CityStat struct {
	City           string  `json:"city"`
	HotelCount     int     `json:"hotel_count"`
	AvgStars       float64 `json:"avg_stars"`
	TotalRooms     int     `json:"total_rooms"`
	AvailableRooms int     `json:"available_rooms"`
}

type BookingStatusStat struct {
	Status  BookingStatus `json:"status"`
	Count   int           `json:"count"`
	Revenue float64       `json:"total_revenue"`
}

type OverallStats struct {
	TotalHotels      int     `json:"total_hotels"`
	TotalRooms       int     `json:"total_rooms"`
	TotalBookings    int     `json:"total_bookings"`
	ConfirmedRevenue float64 `json:"confirmed_revenue"`
	AvgHotelStars    float64 `json:"avg_hotel_stars"`
	AvgRoomPrice     float64 `json:"avg_room_price"`
}
