package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"hotelbot/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valJSONList(v []string) any {
	if v == nil {
		return nil
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}
func nullF64(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	f := n.Float64
	return &f
}

// likePattern lower-cases s and wraps it for a substring LIKE, escaping wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

// rowLimit maps a non-positive limit to "no limit".
func rowLimit(n int) int {
	if n <= 0 {
		return math.MaxInt32
	}
	return n
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- write paths ----

func (r *Repo) InsertHotel(ctx context.Context, h domain.Hotel) (int64, error) {
	if err := h.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, insertHotelSQL,
		h.Name,
		h.City,
		valStr(h.Address),
		h.Stars,
		valStr(h.Description),
		valStr(h.Phone),
		valStr(h.Email),
		valF64(h.Lat),
		valF64(h.Lon),
		valJSONList(h.Amenities),
		h.Active,
	)
	if err != nil {
		return 0, fmt.Errorf("insert hotel %q: %w", h.Name, err)
	}
	return res.LastInsertId()
}

func (r *Repo) InsertRoom(ctx context.Context, rm domain.Room) (int64, error) {
	if err := rm.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, insertRoomSQL,
		rm.HotelID,
		rm.RoomNumber,
		rm.Capacity,
		rm.Price,
		string(rm.Type),
		rm.IsAvailable,
		valJSONList(rm.ImageURLs),
		valJSONList(rm.Amenities),
	)
	if err != nil {
		return 0, fmt.Errorf("insert room %s for hotel %d: %w", rm.RoomNumber, rm.HotelID, err)
	}
	return res.LastInsertId()
}

func (r *Repo) InsertBooking(ctx context.Context, b domain.Booking) (int64, error) {
	if b.Status == "" {
		b.Status = domain.BookingConfirmed
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.RoomID,
		b.GuestName,
		valStr(b.GuestEmail),
		valStr(b.GuestPhone),
		b.CheckIn.Format("2006-01-02"),
		b.CheckOut.Format("2006-01-02"),
		valF64(b.TotalAmount),
		string(b.Status),
	)
	if err != nil {
		return 0, fmt.Errorf("insert booking for room %d: %w", b.RoomID, err)
	}
	return res.LastInsertId()
}

func (r *Repo) SetRoomAvailability(ctx context.Context, roomID int64, available bool) error {
	res, err := r.db.ExecContext(ctx, setRoomAvailabilitySQL, available, roomID)
	if err != nil {
		return err
	}
	// RowsAffected is 0 when the value is unchanged, so only check existence on 0.
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM hotel_rooms WHERE id = ?`, roomID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *Repo) Truncate(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, stmt := range truncateSQL {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return tx.Commit()
}

// ---- read paths ----

func (r *Repo) SearchHotelsByCity(ctx context.Context, city string, limit int) ([]domain.HotelSummary, error) {
	return r.hotelSummaries(ctx, searchHotelsByCitySQL, likePattern(city), rowLimit(limit))
}

func (r *Repo) SearchHotelsByRating(ctx context.Context, minStars float64, limit int) ([]domain.HotelSummary, error) {
	return r.hotelSummaries(ctx, searchHotelsByRatingSQL, minStars, rowLimit(limit))
}

func (r *Repo) hotelSummaries(ctx context.Context, query string, args ...any) ([]domain.HotelSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelSummary
	for rows.Next() {
		var hs domain.HotelSummary
		if err := scanHotel(rows, &hs.Hotel, &hs.TotalRooms, &hs.AvailableRooms); err != nil {
			return nil, err
		}
		out = append(out, hs)
	}
	return out, rows.Err()
}

func (r *Repo) SearchHotelsByPriceRange(ctx context.Context, minPrice, maxPrice float64, limit int) ([]domain.HotelSummary, error) {
	rows, err := r.db.QueryContext(ctx, searchHotelsByPriceRangeSQL, minPrice, maxPrice, rowLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelSummary
	for rows.Next() {
		var hs domain.HotelSummary
		var lo, hi sql.NullFloat64
		if err := scanHotel(rows, &hs.Hotel, &hs.AvailableRooms, &lo, &hi); err != nil {
			return nil, err
		}
		hs.TotalRooms = hs.AvailableRooms
		hs.MinRoomPrice, hs.MaxRoomPrice = nullF64(lo), nullF64(hi)
		out = append(out, hs)
	}
	return out, rows.Err()
}

func (r *Repo) AvailableRooms(ctx context.Context, f domain.RoomFilter) ([]domain.RoomView, error) {
	var sb strings.Builder
	sb.WriteString(availableRoomsBaseSQL)
	var args []any
	if f.HotelID != nil {
		sb.WriteString("\n  AND r.hotel_id = ?")
		args = append(args, *f.HotelID)
	}
	if rt := strings.TrimSpace(f.RoomType); rt != "" {
		sb.WriteString("\n  AND LOWER(r.room_type) LIKE ?")
		args = append(args, likePattern(rt))
	}
	if f.MaxPrice != nil {
		sb.WriteString("\n  AND r.price_per_night <= ?")
		args = append(args, *f.MaxPrice)
	}
	sb.WriteString("\nORDER BY r.price_per_night ASC, r.id\nLIMIT ?")
	args = append(args, rowLimit(f.Limit))
	return r.roomViews(ctx, sb.String(), args...)
}

func (r *Repo) CheckRoomAvailability(ctx context.Context, hotelName, roomType string, limit int) ([]domain.RoomView, error) {
	var sb strings.Builder
	sb.WriteString(availableRoomsBaseSQL)
	sb.WriteString("\n  AND LOWER(h.name) LIKE ?")
	args := []any{likePattern(hotelName)}
	if rt := strings.TrimSpace(roomType); rt != "" {
		sb.WriteString("\n  AND LOWER(r.room_type) LIKE ?")
		args = append(args, likePattern(rt))
	}
	sb.WriteString("\nORDER BY r.price_per_night ASC, r.id\nLIMIT ?")
	args = append(args, rowLimit(limit))
	return r.roomViews(ctx, sb.String(), args...)
}

func (r *Repo) roomViews(ctx context.Context, query string, args ...any) ([]domain.RoomView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RoomView
	for rows.Next() {
		var rv domain.RoomView
		var addr sql.NullString
		if err := scanRoom(rows, &rv.Room, &rv.HotelName, &rv.City, &addr); err != nil {
			return nil, err
		}
		rv.Address = nullStr(addr)
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) RoomTypesAndPrices(ctx context.Context, hotelID *int64) ([]domain.RoomTypePrice, error) {
	query := roomTypesAndPricesBaseSQL
	var args []any
	if hotelID != nil {
		query += "\n  AND r.hotel_id = ?"
		args = append(args, *hotelID)
	}
	rows, err := r.db.QueryContext(ctx, query+roomTypesAndPricesTailSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RoomTypePrice
	for rows.Next() {
		var p domain.RoomTypePrice
		var rt string
		if err := rows.Scan(&rt, &p.HotelID, &p.HotelName, &p.City, &p.AvailableCount, &p.MinPrice, &p.MaxPrice, &p.AvgPrice); err != nil {
			return nil, err
		}
		p.RoomType = domain.RoomType(rt)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) HotelByID(ctx context.Context, id int64) (domain.HotelDetails, error) {
	return r.hotelDetails(ctx, hotelDetailsByIDSQL, id)
}

// HotelByName picks the best-rated hotel whose name contains name.
func (r *Repo) HotelByName(ctx context.Context, name string) (domain.HotelDetails, error) {
	return r.hotelDetails(ctx, hotelDetailsByNameSQL, likePattern(name))
}

func (r *Repo) hotelDetails(ctx context.Context, query string, arg any) (domain.HotelDetails, error) {
	var d domain.HotelDetails
	var lo, hi sql.NullFloat64
	err := scanHotel(r.db.QueryRowContext(ctx, query, arg), &d.Hotel,
		&d.TotalRooms, &d.AvailableRooms, &lo, &hi, &d.TotalBookings)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.HotelDetails{}, domain.ErrNotFound
		}
		return domain.HotelDetails{}, err
	}
	d.MinRoomPrice, d.MaxRoomPrice = nullF64(lo), nullF64(hi)
	return d, nil
}

func (r *Repo) CitySummary(ctx context.Context, city string) (domain.CitySummary, error) {
	var cs domain.CitySummary
	var avg, lo, hi sql.NullFloat64
	err := r.db.QueryRowContext(ctx, citySummarySQL, likePattern(city)).Scan(
		&cs.City, &cs.HotelCount, &cs.TotalRooms, &cs.AvailableRooms, &avg, &lo, &hi,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CitySummary{}, domain.ErrNotFound
		}
		return domain.CitySummary{}, err
	}
	cs.AvgStars = avg.Float64
	cs.MinPrice, cs.MaxPrice = nullF64(lo), nullF64(hi)
	return cs, nil
}

func (r *Repo) RecentBookings(ctx context.Context, limit int) ([]domain.BookingView, error) {
	rows, err := r.db.QueryContext(ctx, recentBookingsSQL, rowLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BookingView
	for rows.Next() {
		var bv domain.BookingView
		var email, phone sql.NullString
		var total sql.NullFloat64
		var status, rt string
		if err := rows.Scan(
			&bv.ID, &bv.RoomID, &bv.GuestName, &email, &phone,
			&bv.CheckIn, &bv.CheckOut, &total, &status, &bv.CreatedAt, &bv.UpdatedAt,
			&bv.HotelName, &bv.City, &bv.RoomNumber, &rt,
		); err != nil {
			return nil, err
		}
		bv.GuestEmail, bv.GuestPhone = nullStr(email), nullStr(phone)
		bv.TotalAmount = nullF64(total)
		bv.Status = domain.BookingStatus(status)
		bv.RoomType = domain.RoomType(rt)
		out = append(out, bv)
	}
	return out, rows.Err()
}

// ---- scanning ----

type scanner interface{ Scan(dest ...any) error }

// scanHotel reads hotelCols followed by any extra columns into extra.
func scanHotel(s scanner, h *domain.Hotel, extra ...any) error {
	var (
		addr, desc, phone, email sql.NullString
		lat, lon                 sql.NullFloat64
		amenities                []byte
	)
	dest := append([]any{
		&h.ID, &h.Name, &h.City, &addr, &h.Stars, &desc,
		&phone, &email, &lat, &lon, &amenities,
		&h.Active, &h.CreatedAt, &h.UpdatedAt,
	}, extra...)
	if err := s.Scan(dest...); err != nil {
		return err
	}
	h.Address, h.Description = nullStr(addr), nullStr(desc)
	h.Phone, h.Email = nullStr(phone), nullStr(email)
	h.Lat, h.Lon = nullF64(lat), nullF64(lon)
	if len(amenities) > 0 {
		_ = json.Unmarshal(amenities, &h.Amenities)
	}
	return nil
}

// scanRoom reads roomCols followed by any extra columns into extra.
func scanRoom(s scanner, rm *domain.Room, extra ...any) error {
	var (
		rt              string
		images, amenity []byte
	)
	dest := append([]any{
		&rm.ID, &rm.HotelID, &rm.RoomNumber, &rm.Capacity, &rm.Price, &rt,
		&rm.IsAvailable, &images, &amenity, &rm.CreatedAt, &rm.UpdatedAt,
	}, extra...)
	if err := s.Scan(dest...); err != nil {
		return err
	}
	rm.Type = domain.RoomType(rt)
	if len(images) > 0 {
		_ = json.Unmarshal(images, &rm.ImageURLs)
	}
	if len(amenity) > 0 {
		_ = json.Unmarshal(amenity, &rm.Amenities)
	}
	return nil
}
