package app_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbot/internal/app"
	"hotelbot/internal/domain"
)

type fakeReportRepo struct {
	err error
}

func (f fakeReportRepo) ListHotels(ctx context.Context) ([]domain.HotelListing, error) {
	return []domain.HotelListing{{Hotel: domain.Hotel{ID: 1, Name: "Grand Palace Hotel", City: "New York", Stars: 5}, RoomCount: 12, BookingCount: 3}}, nil
}
func (f fakeReportRepo) RoomTypeStats(ctx context.Context) ([]domain.RoomTypeStat, error) {
	return []domain.RoomTypeStat{{RoomType: domain.RoomSuite, Count: 4, MinPrice: 300, MaxPrice: 600, AvgPrice: 450, AvgCapacity: 3.5}}, nil
}
func (f fakeReportRepo) AvailabilityStats(ctx context.Context) (domain.AvailabilityStat, error) {
	return domain.AvailabilityStat{TotalRooms: 12, AvailableRooms: 9, OccupiedRooms: 3, Percentage: 75}, nil
}
func (f fakeReportRepo) CityStats(ctx context.Context) ([]domain.CityStat, error) {
	return []domain.CityStat{{City: "New York", HotelCount: 1, AvgStars: 5, TotalRooms: 12, AvailableRooms: 9}}, nil
}
func (f fakeReportRepo) BookingStatusStats(ctx context.Context) ([]domain.BookingStatusStat, error) {
	return []domain.BookingStatusStat{{Status: domain.BookingConfirmed, Count: 2, Revenue: 900}}, f.err
}
func (f fakeReportRepo) OverallStats(ctx context.Context) (domain.OverallStats, error) {
	return domain.OverallStats{TotalHotels: 1, TotalRooms: 12, TotalBookings: 3, ConfirmedRevenue: 900, AvgHotelStars: 5, AvgRoomPrice: 310}, nil
}
func (f fakeReportRepo) RecentBookings(ctx context.Context, limit int) ([]domain.BookingView, error) {
	return nil, nil
}

func TestReporter_BuildAndRender(t *testing.T) {
	rep, err := app.NewReporter(fakeReportRepo{}).Build(context.Background())
	require.NoError(t, err)
	assert.Len(t, rep.Hotels, 1)
	assert.Equal(t, 75.0, rep.Availability.Percentage)

	var buf bytes.Buffer
	require.NoError(t, rep.Render(&buf))
	out := buf.String()
	for _, s := range []string{"HOTELS", "ROOM STATISTICS", "AVAILABILITY", "RECENT BOOKINGS", "CITY STATISTICS", "BOOKING STATUS SUMMARY", "OVERALL STATISTICS"} {
		assert.Contains(t, out, s)
	}
	assert.Contains(t, out, "Grand Palace Hotel")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "$900.00")
}

func TestReporter_BuildError(t *testing.T) {
	_, err := app.NewReporter(fakeReportRepo{err: errors.New("boom")}).Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
