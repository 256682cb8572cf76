package mysql

const createMigrationsTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version    VARCHAR(64) PRIMARY KEY,
  applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const selectMigrationsSQL = `SELECT version FROM schema_migrations`

const insertMigrationSQL = `INSERT INTO schema_migrations (version) VALUES (?)`

// -----------------------------------------------------------------------------
// WRITE PATHS
// -----------------------------------------------------------------------------

const insertHotelSQL = `
INSERT INTO hotels
  (name, city, address, stars, description, phone_number, email, latitude, longitude, amenities, is_active)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const insertRoomSQL = `
INSERT INTO hotel_rooms
  (hotel_id, room_number, capacity, price_per_night, room_type, is_available, image_urls, amenities)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const insertBookingSQL = `
INSERT INTO bookings
  (room_id, guest_name, guest_email, guest_phone, check_in, check_out, total_amount, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const setRoomAvailabilitySQL = `UPDATE hotel_rooms SET is_available = ? WHERE id = ?`

// children first; FKs cascade anyway but this keeps the row counts honest
var truncateSQL = []string{
	`DELETE FROM bookings`,
	`DELETE FROM hotel_rooms`,
	`DELETE FROM hotels`,
}

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// hotelCols must stay in sync with scanHotel.
const hotelCols = `
  h.id, h.name, h.city, h.address, h.stars, h.description,
  h.phone_number, h.email, h.latitude, h.longitude, h.amenities,
  h.is_active, h.created_at, h.updated_at`

// roomCols must stay in sync with scanRoom.
const roomCols = `
  r.id, r.hotel_id, r.room_number, r.capacity, r.price_per_night, r.room_type,
  r.is_available, r.image_urls, r.amenities, r.created_at, r.updated_at`

const searchHotelsByCitySQL = `
SELECT` + hotelCols + `,
  COUNT(r.id) AS total_rooms,
  COUNT(CASE WHEN r.is_available THEN 1 END) AS available_rooms
FROM hotels h
LEFT JOIN hotel_rooms r ON r.hotel_id = h.id
WHERE LOWER(h.city) LIKE ? AND h.is_active = TRUE
GROUP BY h.id
ORDER BY h.stars DESC, h.name
LIMIT ?
`

const searchHotelsByRatingSQL = `
SELECT` + hotelCols + `,
  COUNT(r.id) AS total_rooms,
  COUNT(CASE WHEN r.is_available THEN 1 END) AS available_rooms
FROM hotels h
LEFT JOIN hotel_rooms r ON r.hotel_id = h.id
WHERE h.stars >= ? AND h.is_active = TRUE
GROUP BY h.id
ORDER BY h.stars DESC, h.name
LIMIT ?
`

// Only available rooms inside the range count towards the summary.
const searchHotelsByPriceRangeSQL = `
SELECT` + hotelCols + `,
  COUNT(r.id) AS matching_rooms,
  MIN(r.price_per_night) AS min_room_price,
  MAX(r.price_per_night) AS max_room_price
FROM hotels h
JOIN hotel_rooms r ON r.hotel_id = h.id
WHERE r.price_per_night BETWEEN ? AND ?
  AND r.is_available = TRUE AND h.is_active = TRUE
GROUP BY h.id
ORDER BY h.stars DESC, h.name
LIMIT ?
`

// availableRoomsBaseSQL is completed with optional predicates in Repo.AvailableRooms.
const availableRoomsBaseSQL = `
SELECT` + roomCols + `,
  h.name AS hotel_name, h.city, h.address
FROM hotel_rooms r
JOIN hotels h ON h.id = r.hotel_id
WHERE r.is_available = TRUE AND h.is_active = TRUE`

const roomTypesAndPricesBaseSQL = `
SELECT
  r.room_type,
  h.id,
  h.name AS hotel_name,
  h.city,
  COUNT(*) AS available_count,
  MIN(r.price_per_night) AS min_price,
  MAX(r.price_per_night) AS max_price,
  AVG(r.price_per_night) AS avg_price
FROM hotel_rooms r
JOIN hotels h ON h.id = r.hotel_id
WHERE r.is_available = TRUE AND h.is_active = TRUE`

const roomTypesAndPricesTailSQL = `
GROUP BY r.room_type, h.id, h.name, h.city
ORDER BY avg_price ASC`

// DISTINCT keeps room counts correct across the bookings join.
const hotelDetailsBaseSQL = `
SELECT` + hotelCols + `,
  COUNT(DISTINCT r.id) AS total_rooms,
  COUNT(DISTINCT CASE WHEN r.is_available THEN r.id END) AS available_rooms,
  MIN(r.price_per_night) AS min_price,
  MAX(r.price_per_night) AS max_price,
  COUNT(b.id) AS total_bookings
FROM hotels h
LEFT JOIN hotel_rooms r ON r.hotel_id = h.id
LEFT JOIN bookings b ON b.room_id = r.id
WHERE h.is_active = TRUE AND `

const hotelDetailsByIDSQL = hotelDetailsBaseSQL + `h.id = ?
GROUP BY h.id
`

const hotelDetailsByNameSQL = hotelDetailsBaseSQL + `LOWER(h.name) LIKE ?
GROUP BY h.id
ORDER BY h.stars DESC, h.name
LIMIT 1
`

// A substring can match several cities; the one with most hotels wins.
const citySummarySQL = `
SELECT
  h.city,
  COUNT(DISTINCT h.id) AS hotel_count,
  COUNT(r.id) AS total_rooms,
  COUNT(CASE WHEN r.is_available THEN 1 END) AS available_rooms,
  (SELECT AVG(h2.stars) FROM hotels h2
    WHERE h2.city = h.city AND h2.is_active = TRUE) AS avg_stars,
  MIN(r.price_per_night) AS min_price,
  MAX(r.price_per_night) AS max_price
FROM hotels h
LEFT JOIN hotel_rooms r ON r.hotel_id = h.id
WHERE LOWER(h.city) LIKE ? AND h.is_active = TRUE
GROUP BY h.city
ORDER BY hotel_count DESC, h.city
LIMIT 1
`

const recentBookingsSQL = `
SELECT
  b.id, b.room_id, b.guest_name, b.guest_email, b.guest_phone,
  b.check_in, b.check_out, b.total_amount, b.status, b.created_at, b.updated_at,
  h.name AS hotel_name, h.city, r.room_number, r.room_type
FROM bookings b
JOIN hotel_rooms r ON r.id = b.room_id
JOIN hotels h ON h.id = r.hotel_id
WHERE h.is_active = TRUE
ORDER BY b.created_at DESC, b.id DESC
LIMIT ?
`

// -----------------------------------------------------------------------------
// REPORT QUERIES
// -----------------------------------------------------------------------------

const listHotelsSQL = `
SELECT` + hotelCols + `,
  COUNT(DISTINCT r.id) AS room_count,
  COUNT(b.id) AS booking_count
FROM hotels h
LEFT JOIN hotel_rooms r ON r.hotel_id = h.id
LEFT JOIN bookings b ON b.room_id = r.id
WHERE h.is_active = TRUE
GROUP BY h.id
ORDER BY h.name
`

const roomTypeStatsSQL = `
SELECT
  room_type,
  COUNT(*) AS cnt,
  MIN(price_per_night),
  MAX(price_per_night),
  AVG(price_per_night) AS avg_price,
  AVG(capacity)
FROM hotel_rooms
GROUP BY room_type
ORDER BY avg_price
`

const availabilityStatsSQL = `
SELECT
  COUNT(*),
  COUNT(CASE WHEN is_available THEN 1 END)
FROM hotel_rooms
`

const cityStatsSQL = `
SELECT
  h.city,
  COUNT(*) AS hotel_count,
  AVG(h.stars),
  COALESCE(SUM(rc.total), 0),
  COALESCE(SUM(rc.available), 0)
FROM hotels h
LEFT JOIN (
  SELECT hotel_id, COUNT(*) AS total, SUM(is_available) AS available
  FROM hotel_rooms
  GROUP BY hotel_id
) rc ON rc.hotel_id = h.id
WHERE h.is_active = TRUE
GROUP BY h.city
ORDER BY hotel_count DESC, h.city
`

const bookingStatusStatsSQL = `
SELECT status, COUNT(*) AS cnt, COALESCE(SUM(total_amount), 0)
FROM bookings
GROUP BY status
ORDER BY cnt DESC, status
`

const overallStatsSQL = `
SELECT
  (SELECT COUNT(*) FROM hotels WHERE is_active = TRUE),
  (SELECT COUNT(*) FROM hotel_rooms),
  (SELECT COUNT(*) FROM bookings),
  COALESCE((SELECT SUM(total_amount) FROM bookings WHERE status = 'confirmed'), 0),
  COALESCE((SELECT AVG(stars) FROM hotels WHERE is_active = TRUE), 0),
  COALESCE((SELECT AVG(price_per_night) FROM hotel_rooms), 0)
`
