package app_test

import (
	"context"
	"sync"

	"hotelbot/internal/domain"
)

// ---- fakes ----

// fakeRepo records writes and serves canned reads.
type fakeRepo struct {
	mu       sync.Mutex
	nextID   int64
	hotels   []domain.Hotel
	rooms    []domain.Room
	bookings []domain.Booking
	avail    map[int64]bool
	cleared  bool

	summaries []domain.HotelSummary
	roomViews []domain.RoomView
	types     []domain.RoomTypePrice
	details   domain.HotelDetails
	city      domain.CitySummary
	recent    []domain.BookingView

	calls     map[string]int
	lastLimit int
	lastRooms domain.RoomFilter
	err       error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{avail: map[int64]bool{}, calls: map[string]int{}}
}

func (f *fakeRepo) hit(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeRepo) InsertHotel(ctx context.Context, h domain.Hotel) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	h.ID = f.nextID
	f.hotels = append(f.hotels, h)
	return h.ID, nil
}
func (f *fakeRepo) InsertRoom(ctx context.Context, r domain.Room) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = f.nextID
	f.rooms = append(f.rooms, r)
	f.avail[r.ID] = r.IsAvailable
	return r.ID, nil
}
func (f *fakeRepo) InsertBooking(ctx context.Context, b domain.Booking) (int64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b.ID = f.nextID
	f.bookings = append(f.bookings, b)
	return b.ID, nil
}
func (f *fakeRepo) SetRoomAvailability(ctx context.Context, roomID int64, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.avail[roomID]; !ok {
		return domain.ErrNotFound
	}
	f.avail[roomID] = available
	return nil
}
func (f *fakeRepo) Truncate(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = true
	f.hotels, f.rooms, f.bookings = nil, nil, nil
	return nil
}

func (f *fakeRepo) SearchHotelsByCity(ctx context.Context, city string, limit int) ([]domain.HotelSummary, error) {
	f.hit("city")
	f.lastLimit = limit
	return f.summaries, f.err
}
func (f *fakeRepo) SearchHotelsByRating(ctx context.Context, minStars float64, limit int) ([]domain.HotelSummary, error) {
	f.hit("rating")
	return f.summaries, f.err
}
func (f *fakeRepo) SearchHotelsByPriceRange(ctx context.Context, minPrice, maxPrice float64, limit int) ([]domain.HotelSummary, error) {
	f.hit("price")
	return f.summaries, f.err
}
func (f *fakeRepo) AvailableRooms(ctx context.Context, rf domain.RoomFilter) ([]domain.RoomView, error) {
	f.hit("rooms")
	f.lastRooms = rf
	return f.roomViews, f.err
}
func (f *fakeRepo) RoomTypesAndPrices(ctx context.Context, hotelID *int64) ([]domain.RoomTypePrice, error) {
	f.hit("types")
	return f.types, f.err
}
func (f *fakeRepo) HotelByID(ctx context.Context, id int64) (domain.HotelDetails, error) {
	f.hit("byid")
	if f.details.ID != id {
		return domain.HotelDetails{}, domain.ErrNotFound
	}
	return f.details, nil
}
func (f *fakeRepo) HotelByName(ctx context.Context, name string) (domain.HotelDetails, error) {
	f.hit("byname")
	if f.details.ID == 0 {
		return domain.HotelDetails{}, domain.ErrNotFound
	}
	return f.details, nil
}
func (f *fakeRepo) CitySummary(ctx context.Context, city string) (domain.CitySummary, error) {
	f.hit("citysummary")
	if f.city.City == "" {
		return domain.CitySummary{}, domain.ErrNotFound
	}
	return f.city, nil
}
func (f *fakeRepo) RecentBookings(ctx context.Context, limit int) ([]domain.BookingView, error) {
	f.hit("recent")
	f.lastLimit = limit
	return f.recent, f.err
}
func (f *fakeRepo) CheckRoomAvailability(ctx context.Context, hotelName, roomType string, limit int) ([]domain.RoomView, error) {
	f.hit("check")
	return f.roomViews, f.err
}

// fakeCache stores values as-is; Get only understands the types the tests cache.
type fakeCache struct {
	store   map[string]any
	flushed []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.HotelSummary:
		*d = v.([]domain.HotelSummary)
	case *domain.HotelDetails:
		*d = v.(domain.HotelDetails)
	case *[]domain.RoomView:
		*d = v.([]domain.RoomView)
	default:
		return false, nil
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}
func (c *fakeCache) Flush(ctx context.Context, prefix string) error {
	c.flushed = append(c.flushed, prefix)
	c.store = nil
	return nil
}

func ptr[T any](v T) *T { return &v }
