package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"hotelbot/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// DemoHotels is the fixed hotel catalogue the seeder inserts.
var DemoHotels = []domain.Hotel{
	{Name: "Grand Palace Hotel", City: "New York", Address: ptr("123 Main Street"), Stars: 5, Description: ptr("Luxury hotel in Manhattan"), Phone: ptr("+1-212-555-0123"), Email: ptr("info@grandpalace.com"), Lat: ptr(40.7589), Lon: ptr(-73.9851), Amenities: []string{"WiFi", "Spa", "Pool", "Gym"}},
	{Name: "Ocean View Resort", City: "Miami", Address: ptr("456 Beach Avenue"), Stars: 4, Description: ptr("Beautiful beachfront resort"), Phone: ptr("+1-305-555-0456"), Email: ptr("reservations@oceanview.com"), Lat: ptr(25.7617), Lon: ptr(-80.1918), Amenities: []string{"WiFi", "Beach Access", "Pool", "Restaurant"}},
	{Name: "Mountain Lodge", City: "Denver", Address: ptr("789 Alpine Drive"), Stars: 4, Description: ptr("Cozy mountain retreat"), Phone: ptr("+1-303-555-0789"), Email: ptr("stay@mountainlodge.com"), Lat: ptr(39.7392), Lon: ptr(-104.9903), Amenities: []string{"WiFi", "Fireplace", "Ski Access"}},
	{Name: "City Center Inn", City: "Chicago", Address: ptr("321 Downtown Blvd"), Stars: 3, Description: ptr("Convenient downtown location"), Phone: ptr("+1-312-555-0321"), Email: ptr("bookings@citycenter.com"), Lat: ptr(41.8781), Lon: ptr(-87.6298), Amenities: []string{"WiFi", "Business Center"}},
	{Name: "Luxury Suites", City: "Los Angeles", Address: ptr("654 Elite Street"), Stars: 5, Description: ptr("Premium luxury accommodations"), Phone: ptr("+1-310-555-0654"), Email: ptr("concierge@luxurysuites.com"), Lat: ptr(34.0522), Lon: ptr(-118.2437), Amenities: []string{"WiFi", "Spa", "Pool", "Valet"}},
	{Name: "Historic Hotel", City: "Boston", Address: ptr("987 Heritage Lane"), Stars: 4, Description: ptr("Charming historic property"), Phone: ptr("+1-617-555-0987"), Email: ptr("heritage@historichotel.com"), Lat: ptr(42.3601), Lon: ptr(-71.0589), Amenities: []string{"WiFi", "Historic Tours"}},
	{Name: "Boutique Hotel", City: "San Francisco", Address: ptr("147 Trendy Ave"), Stars: 4, Description: ptr("Stylish boutique experience"), Phone: ptr("+1-415-555-0147"), Email: ptr("stay@boutique.com"), Lat: ptr(37.7749), Lon: ptr(-122.4194), Amenities: []string{"WiFi", "Rooftop Bar", "Art Gallery"}},
	{Name: "Business Hotel", City: "Seattle", Address: ptr("258 Corporate Plaza"), Stars: 3, Description: ptr("Modern business accommodations"), Phone: ptr("+1-206-555-0258"), Email: ptr("business@corporatehotel.com"), Lat: ptr(47.6062), Lon: ptr(-122.3321), Amenities: []string{"WiFi", "Conference Rooms", "Business Center"}},
	{Name: "Seaside Resort", City: "San Diego", Address: ptr("369 Coastal Highway"), Stars: 4, Description: ptr("Relaxing coastal getaway"), Phone: ptr("+1-619-555-0369"), Email: ptr("info@seasideresort.com"), Lat: ptr(32.7157), Lon: ptr(-117.1611), Amenities: []string{"WiFi", "Beach Access", "Pool", "Spa"}},
	{Name: "Urban Retreat", City: "Las Vegas", Address: ptr("741 Metropolitan Way"), Stars: 4, Description: ptr("Modern urban hotel"), Phone: ptr("+1-702-555-0741"), Email: ptr("retreat@urbanhotel.com"), Lat: ptr(36.1699), Lon: ptr(-115.1398), Amenities: []string{"WiFi", "Casino", "Pool", "Shows"}},
}

var guestNames = []string{
	"John Smith", "Jane Doe", "Mike Johnson", "Sarah Wilson", "David Brown",
	"Emily Davis", "Chris Anderson", "Lisa Taylor", "Robert Miller", "Amanda Garcia",
	"Kevin Martinez", "Rachel Rodriguez", "Brian Lee", "Nicole White", "Steven Harris",
}

// base nightly price range per room type, before jitter
var basePrice = map[domain.RoomType][2]int{
	domain.RoomSingle:       {80, 200},
	domain.RoomDouble:       {150, 300},
	domain.RoomDeluxe:       {200, 400},
	domain.RoomSuite:        {300, 600},
	domain.RoomPresidential: {500, 1000},
}

type SeedOptions struct {
	Keep    bool      // append instead of clearing the tables first
	Seed    uint64    // same seed, same data
	Workers int       // hotels populated concurrently
	Today   time.Time // reference date for bookings; zero means now
}

type SeedResult struct {
	Hotels   int
	Rooms    int
	Bookings int
}

type Seeder struct {
	repo  domain.HotelRepository
	cache domain.Cache
}

func NewSeeder(r domain.HotelRepository, cache domain.Cache) *Seeder {
	return &Seeder{repo: r, cache: cache}
}

func (s *Seeder) Populate(ctx context.Context, opt SeedOptions) (SeedResult, error) {
	if opt.Workers <= 0 {
		opt.Workers = 4
	}
	if opt.Today.IsZero() {
		opt.Today = time.Now()
	}
	today := time.Date(opt.Today.Year(), opt.Today.Month(), opt.Today.Day(), 0, 0, 0, 0, time.UTC)

	if !opt.Keep {
		if err := s.repo.Truncate(ctx); err != nil {
			return SeedResult{}, fmt.Errorf("clear tables: %w", err)
		}
		log.Info().Msg("existing data cleared")
	}

	// hotels go in sequentially so ids follow catalogue order
	ids := make([]int64, 0, len(DemoHotels))
	for _, h := range DemoHotels {
		h.Active = true
		id, err := s.repo.InsertHotel(ctx, h)
		if err != nil {
			return SeedResult{Hotels: len(ids)}, err
		}
		log.Debug().Int64("id", id).Str("hotel", h.Name).Msg("hotel inserted")
		ids = append(ids, id)
	}

	var rooms, bookings atomic.Int64
	sem := semaphore.NewWeighted(int64(opt.Workers))
	g, gctx := errgroup.WithContext(ctx)
	var acquireErr error
	for i, id := range ids {
		// acquire before launching the goroutine; release inside it
		if acquireErr = sem.Acquire(gctx, 1); acquireErr != nil {
			break
		}
		rng := rand.New(rand.NewPCG(opt.Seed, uint64(i)))
		g.Go(func() error {
			defer sem.Release(1)
			nr, nb, err := s.populateHotel(gctx, rng, id, today)
			rooms.Add(int64(nr))
			bookings.Add(int64(nb))
			if err != nil {
				return fmt.Errorf("hotel %d: %w", id, err)
			}
			log.Info().Int64("hotel_id", id).Int("rooms", nr).Int("bookings", nb).Msg("hotel populated")
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = acquireErr
	}

	res := SeedResult{Hotels: len(ids), Rooms: int(rooms.Load()), Bookings: int(bookings.Load())}
	if s.cache != nil {
		if ferr := s.cache.Flush(ctx, CachePrefix); ferr != nil {
			log.Warn().Err(ferr).Msg("cache flush after seeding failed")
		}
	}
	return res, err
}

func between(r *rand.Rand, lo, hi int) int { return lo + r.IntN(hi-lo+1) }

// populateHotel inserts 8-15 rooms and books roughly 30% of them.
func (s *Seeder) populateHotel(ctx context.Context, r *rand.Rand, hotelID int64, today time.Time) (int, int, error) {
	n := between(r, 8, 15)
	var nRooms, nBookings int
	for num := 1; num <= n; num++ {
		rt := domain.RoomTypes[r.IntN(len(domain.RoomTypes))]
		pr := basePrice[rt]
		room := domain.Room{
			HotelID:     hotelID,
			RoomNumber:  fmt.Sprintf("%03d", num),
			Capacity:    between(r, 1, 6),
			Price:       float64(between(r, pr[0], pr[1]) + between(r, -30, 50)),
			Type:        rt,
			IsAvailable: r.IntN(4) != 0,
			Amenities:   roomAmenities(rt),
		}
		room.ImageURLs = []string{fmt.Sprintf("https://example.com/hotel%d/room%s.jpg", hotelID, room.RoomNumber)}

		roomID, err := s.repo.InsertRoom(ctx, room)
		if err != nil {
			return nRooms, nBookings, err
		}
		nRooms++

		if r.Float64() >= 0.3 {
			continue
		}
		b := randomBooking(r, roomID, room.Price, today)
		if _, err := s.repo.InsertBooking(ctx, b); err != nil {
			return nRooms, nBookings, err
		}
		nBookings++
		if b.Status == domain.BookingConfirmed && b.Covers(today) {
			if err := s.repo.SetRoomAvailability(ctx, roomID, false); err != nil {
				return nRooms, nBookings, err
			}
		}
	}
	return nRooms, nBookings, nil
}

func roomAmenities(rt domain.RoomType) []string {
	a := []string{"WiFi", "TV", "Air Conditioning"}
	switch rt {
	case domain.RoomSuite, domain.RoomDeluxe:
		a = append(a, "Mini Bar", "Room Service")
	case domain.RoomPresidential:
		a = append(a, "Mini Bar", "Room Service", "Butler Service", "Jacuzzi", "Balcony")
	}
	return a
}

func randomBooking(r *rand.Rand, roomID int64, price float64, today time.Time) domain.Booking {
	guest := guestNames[r.IntN(len(guestNames))]
	in := today.AddDate(0, 0, between(r, -30, 30))
	out := in.AddDate(0, 0, between(r, 1, 7))
	b := domain.Booking{
		RoomID:     roomID,
		GuestName:  guest,
		GuestEmail: ptr(strings.ToLower(strings.ReplaceAll(guest, " ", ".")) + "@example.com"),
		GuestPhone: ptr(fmt.Sprintf("+1-%d-555-%04d", between(r, 200, 999), between(r, 1000, 9999))),
		CheckIn:    in,
		CheckOut:   out,
		Status:     domain.BookingStatuses[r.IntN(len(domain.BookingStatuses))],
	}
	b.TotalAmount = ptr(price * float64(b.Nights()))
	return b
}
