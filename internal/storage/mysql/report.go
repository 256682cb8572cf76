package mysql

import (
	"context"
	"math"

	"hotelbot/internal/domain"
)

func (r *Repo) ListHotels(ctx context.Context) ([]domain.HotelListing, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelListing
	for rows.Next() {
		var hl domain.HotelListing
		if err := scanHotel(rows, &hl.Hotel, &hl.RoomCount, &hl.BookingCount); err != nil {
			return nil, err
		}
		out = append(out, hl)
	}
	return out, rows.Err()
}

func (r *Repo) RoomTypeStats(ctx context.Context) ([]domain.RoomTypeStat, error) {
	rows, err := r.db.QueryContext(ctx, roomTypeStatsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RoomTypeStat
	for rows.Next() {
		var s domain.RoomTypeStat
		var rt string
		if err := rows.Scan(&rt, &s.Count, &s.MinPrice, &s.MaxPrice, &s.AvgPrice, &s.AvgCapacity); err != nil {
			return nil, err
		}
		s.RoomType = domain.RoomType(rt)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) AvailabilityStats(ctx context.Context) (domain.AvailabilityStat, error) {
	var s domain.AvailabilityStat
	if err := r.db.QueryRowContext(ctx, availabilityStatsSQL).Scan(&s.TotalRooms, &s.AvailableRooms); err != nil {
		return domain.AvailabilityStat{}, err
	}
	s.OccupiedRooms = s.TotalRooms - s.AvailableRooms
	if s.TotalRooms > 0 {
		s.Percentage = math.Round(float64(s.AvailableRooms)/float64(s.TotalRooms)*1000) / 10
	}
	return s, nil
}

func (r *Repo) CityStats(ctx context.Context) ([]domain.CityStat, error) {
	rows, err := r.db.QueryContext(ctx, cityStatsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CityStat
	for rows.Next() {
		var s domain.CityStat
		if err := rows.Scan(&s.City, &s.HotelCount, &s.AvgStars, &s.TotalRooms, &s.AvailableRooms); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) BookingStatusStats(ctx context.Context) ([]domain.BookingStatusStat, error) {
	rows, err := r.db.QueryContext(ctx, bookingStatusStatsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BookingStatusStat
	for rows.Next() {
		var s domain.BookingStatusStat
		var status string
		if err := rows.Scan(&status, &s.Count, &s.Revenue); err != nil {
			return nil, err
		}
		s.Status = domain.BookingStatus(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) OverallStats(ctx context.Context) (domain.OverallStats, error) {
	var s domain.OverallStats
	err := r.db.QueryRowContext(ctx, overallStatsSQL).Scan(
		&s.TotalHotels, &s.TotalRooms, &s.TotalBookings,
		&s.ConfirmedRevenue, &s.AvgHotelStars, &s.AvgRoomPrice,
	)
	return s, err
}
