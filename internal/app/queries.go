package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotelbot/internal/domain"
)

// CachePrefix namespaces every cached query result.
const CachePrefix = "hotelbot:q:"

const (
	defaultBookings = 10
	maxBookings     = 50
)

type QueryService struct {
	repo       domain.HotelRepository
	cache      domain.Cache
	cacheTTL   time.Duration
	maxResults int
}

func NewQueryService(r domain.HotelRepository, c domain.Cache, ttl time.Duration, maxResults int) *QueryService {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &QueryService{repo: r, cache: c, cacheTTL: ttl, maxResults: maxResults}
}

// cached is the read-through path shared by every query.
func cached[T any](ctx context.Context, s *QueryService, key string, load func() (T, error)) (T, error) {
	key = CachePrefix + key
	var out T
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, key, &out)
		switch {
		case ok && err == nil:
			return out, nil
		case err != nil:
			// undecodable or unreachable entry; fall back to the repository
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
			var zero T
			out = zero
		}
	}
	out, err := load()
	if err != nil {
		return out, err
	}
	if s.cache != nil && s.cacheTTL > 0 {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (s *QueryService) SearchByCity(ctx context.Context, city string) ([]domain.HotelSummary, error) {
	c := normalize(city)
	if c == "" {
		return nil, invalid("city is required")
	}
	return cached(ctx, s, fmt.Sprintf("city:%s:%d", c, s.maxResults), func() ([]domain.HotelSummary, error) {
		return s.repo.SearchHotelsByCity(ctx, c, s.maxResults)
	})
}

func (s *QueryService) SearchByRating(ctx context.Context, minRating float64) ([]domain.HotelSummary, error) {
	if minRating < 1 || minRating > 5 {
		return nil, invalid("Rating must be between 1.0 and 5.0")
	}
	return cached(ctx, s, fmt.Sprintf("rating:%.2f:%d", minRating, s.maxResults), func() ([]domain.HotelSummary, error) {
		return s.repo.SearchHotelsByRating(ctx, minRating, s.maxResults)
	})
}

func (s *QueryService) SearchByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]domain.HotelSummary, error) {
	if minPrice < 0 || maxPrice < 0 {
		return nil, invalid("Prices cannot be negative.")
	}
	if minPrice > maxPrice {
		return nil, invalid("Minimum price cannot be greater than maximum price.")
	}
	return cached(ctx, s, fmt.Sprintf("price:%.2f:%.2f:%d", minPrice, maxPrice, s.maxResults), func() ([]domain.HotelSummary, error) {
		return s.repo.SearchHotelsByPriceRange(ctx, minPrice, maxPrice, s.maxResults)
	})
}

func (s *QueryService) AvailableRooms(ctx context.Context, f domain.RoomFilter) ([]domain.RoomView, error) {
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return nil, invalid("Maximum price cannot be negative.")
	}
	if f.HotelID != nil && *f.HotelID <= 0 {
		return nil, invalid("Invalid hotel ID format. Please provide a valid number.")
	}
	if f.Limit <= 0 || f.Limit > s.maxResults {
		f.Limit = s.maxResults
	}
	f.RoomType = normalize(f.RoomType)
	key := fmt.Sprintf("rooms:%s:%s:%s:%d", optInt(f.HotelID), f.RoomType, optFloat(f.MaxPrice), f.Limit)
	return cached(ctx, s, key, func() ([]domain.RoomView, error) {
		return s.repo.AvailableRooms(ctx, f)
	})
}

func (s *QueryService) RoomTypesAndPrices(ctx context.Context, hotelID *int64) ([]domain.RoomTypePrice, error) {
	if hotelID != nil && *hotelID <= 0 {
		return nil, invalid("Invalid hotel ID format. Please provide a valid number.")
	}
	return cached(ctx, s, "roomtypes:"+optInt(hotelID), func() ([]domain.RoomTypePrice, error) {
		return s.repo.RoomTypesAndPrices(ctx, hotelID)
	})
}

// HotelDetails returns the hotel with all of its available rooms.
func (s *QueryService) HotelDetails(ctx context.Context, id int64) (domain.HotelDetails, error) {
	if id <= 0 {
		return domain.HotelDetails{}, invalid("Invalid hotel ID format. Please provide a valid number.")
	}
	return cached(ctx, s, fmt.Sprintf("hotel:%d", id), func() (domain.HotelDetails, error) {
		d, err := s.repo.HotelByID(ctx, id)
		if err != nil {
			return d, err
		}
		return s.withRooms(ctx, d)
	})
}

func (s *QueryService) HotelByName(ctx context.Context, name string) (domain.HotelDetails, error) {
	n := normalize(name)
	if n == "" {
		return domain.HotelDetails{}, invalid("hotel name is required")
	}
	return cached(ctx, s, "hotelname:"+n, func() (domain.HotelDetails, error) {
		d, err := s.repo.HotelByName(ctx, n)
		if err != nil {
			return d, err
		}
		return s.withRooms(ctx, d)
	})
}

func (s *QueryService) withRooms(ctx context.Context, d domain.HotelDetails) (domain.HotelDetails, error) {
	id := d.ID
	rooms, err := s.repo.AvailableRooms(ctx, domain.RoomFilter{HotelID: &id})
	if err != nil {
		return domain.HotelDetails{}, err
	}
	d.Rooms = rooms
	return d, nil
}

func (s *QueryService) CitySummary(ctx context.Context, city string) (domain.CitySummary, error) {
	c := normalize(city)
	if c == "" {
		return domain.CitySummary{}, invalid("city is required")
	}
	return cached(ctx, s, "citysummary:"+c, func() (domain.CitySummary, error) {
		return s.repo.CitySummary(ctx, c)
	})
}

// RecentBookings is never cached; bookings are the most volatile table.
func (s *QueryService) RecentBookings(ctx context.Context, limit int) ([]domain.BookingView, error) {
	if limit <= 0 {
		limit = defaultBookings
	}
	if limit > maxBookings {
		limit = maxBookings
	}
	return s.repo.RecentBookings(ctx, limit)
}

func (s *QueryService) CheckRoomAvailability(ctx context.Context, hotelName, roomType string) ([]domain.RoomView, error) {
	n := normalize(hotelName)
	if n == "" {
		return nil, invalid("hotel name is required")
	}
	rt := normalize(roomType)
	return cached(ctx, s, fmt.Sprintf("availability:%s:%s:%d", n, rt, s.maxResults), func() ([]domain.RoomView, error) {
		return s.repo.CheckRoomAvailability(ctx, n, rt, s.maxResults)
	})
}

// InvalidateAll drops every cached query result.
func (s *QueryService) InvalidateAll(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Flush(ctx, CachePrefix)
}

func optInt(p *int64) string {
	if p == nil {
		return "all"
	}
	return fmt.Sprintf("%d", *p)
}

func optFloat(p *float64) string {
	if p == nil {
		return "any"
	}
	return fmt.Sprintf("%.2f", *p)
}
