package app

import (
	"fmt"
	"strings"

	"hotelbot/internal/domain"
)

// Chat reply renderers. Tool handlers return these strings to the model
// verbatim, so hotel IDs are always included for follow-up questions.

func money(f float64) string { return fmt.Sprintf("$%.2f", f) }

func priceRange(lo, hi *float64) string {
	if lo == nil || hi == nil {
		return "n/a"
	}
	return money(*lo) + " - " + money(*hi)
}

func FormatHotelsByCity(city string, hs []domain.HotelSummary) string {
	if len(hs) == 0 {
		return fmt.Sprintf("No hotels found in %s. Please try another city.", city)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d hotels in %s:\n\n", len(hs), city)
	for _, h := range hs {
		fmt.Fprintf(&b, "🏨 **%s** (Hotel ID: %d)\n", h.Name, h.ID)
		fmt.Fprintf(&b, "   📍 %s\n", h.AddressLine())
		fmt.Fprintf(&b, "   ⭐ Rating: %d/5\n", h.Stars)
		fmt.Fprintf(&b, "   🏠 Total Rooms: %d\n", h.TotalRooms)
		fmt.Fprintf(&b, "   ✅ Available Rooms: %d\n\n", h.AvailableRooms)
	}
	return b.String()
}

func FormatHotelsByRating(minRating float64, hs []domain.HotelSummary) string {
	if len(hs) == 0 {
		return fmt.Sprintf("No hotels found with rating %.1f or higher.", minRating)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d hotels with rating %.1f+ stars:\n\n", len(hs), minRating)
	for _, h := range hs {
		fmt.Fprintf(&b, "🏨 **%s** (Hotel ID: %d)\n", h.Name, h.ID)
		fmt.Fprintf(&b, "   📍 %s\n", h.City)
		fmt.Fprintf(&b, "   ⭐ Rating: %d/5\n", h.Stars)
		fmt.Fprintf(&b, "   🏠 Available Rooms: %d\n\n", h.AvailableRooms)
	}
	return b.String()
}

func FormatHotelsByPriceRange(minPrice, maxPrice float64, hs []domain.HotelSummary) string {
	if len(hs) == 0 {
		return fmt.Sprintf("No hotels found with rooms in the price range %s - %s.", money(minPrice), money(maxPrice))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d hotels with rooms in %s - %s range:\n\n", len(hs), money(minPrice), money(maxPrice))
	for _, h := range hs {
		fmt.Fprintf(&b, "🏨 **%s** (Hotel ID: %d)\n", h.Name, h.ID)
		fmt.Fprintf(&b, "   📍 %s\n", h.City)
		fmt.Fprintf(&b, "   ⭐ Rating: %d/5\n", h.Stars)
		fmt.Fprintf(&b, "   💰 Room Price Range: %s\n", priceRange(h.MinRoomPrice, h.MaxRoomPrice))
		fmt.Fprintf(&b, "   🏠 Available Rooms: %d\n\n", h.AvailableRooms)
	}
	return b.String()
}

func writeRoom(b *strings.Builder, r domain.RoomView) {
	fmt.Fprintf(b, "🏠 **Room %s** - %s\n", r.RoomNumber, r.Type)
	fmt.Fprintf(b, "   🏨 Hotel: %s\n", r.HotelName)
	fmt.Fprintf(b, "   📍 Location: %s\n", r.City)
	fmt.Fprintf(b, "   💰 Price: %s/night\n", money(r.Price))
	fmt.Fprintf(b, "   👥 Capacity: %d guests\n", r.Capacity)
	fmt.Fprintf(b, "   🆔 Room ID: %d\n\n", r.ID)
}

func FormatRooms(rs []domain.RoomView) string {
	if len(rs) == 0 {
		return "No available rooms found with the specified criteria."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d available rooms:\n\n", len(rs))
	for _, r := range rs {
		writeRoom(&b, r)
	}
	return b.String()
}

func FormatRoomAvailability(hotelName, roomType string, rs []domain.RoomView) string {
	kind := "rooms"
	if roomType != "" {
		kind = roomType + " rooms"
	}
	if len(rs) == 0 {
		return fmt.Sprintf("No available %s found at hotels matching '%s'.", kind, hotelName)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d available %s at hotels matching '%s':\n\n", len(rs), kind, hotelName)
	for _, r := range rs {
		writeRoom(&b, r)
	}
	return b.String()
}

// FormatRoomTypes omits the city when the list is scoped to one hotel.
func FormatRoomTypes(ps []domain.RoomTypePrice, singleHotel bool) string {
	if len(ps) == 0 {
		return "No room types found."
	}
	var b strings.Builder
	b.WriteString("Available room types and prices:\n\n")
	for _, p := range ps {
		fmt.Fprintf(&b, "🏠 **%s**\n", p.RoomType)
		if singleHotel {
			fmt.Fprintf(&b, "   🏨 Hotel: %s (Hotel ID: %d)\n", p.HotelName, p.HotelID)
		} else {
			fmt.Fprintf(&b, "   🏨 Hotel: %s (%s, Hotel ID: %d)\n", p.HotelName, p.City, p.HotelID)
		}
		fmt.Fprintf(&b, "   📊 Available: %d rooms\n", p.AvailableCount)
		fmt.Fprintf(&b, "   💰 Price Range: %s - %s\n", money(p.MinPrice), money(p.MaxPrice))
		fmt.Fprintf(&b, "   📈 Average Price: %s/night\n\n", money(p.AvgPrice))
	}
	return b.String()
}

func writeHotelHeader(b *strings.Builder, d domain.HotelDetails) {
	fmt.Fprintf(b, "🏨 **%s** (Hotel ID: %d)\n", d.Name, d.ID)
	fmt.Fprintf(b, "📍 Address: %s\n", d.AddressLine())
	fmt.Fprintf(b, "⭐ Rating: %d/5\n", d.Stars)
	if d.Description != nil && *d.Description != "" {
		fmt.Fprintf(b, "📝 %s\n", *d.Description)
	}
	if d.Phone != nil {
		fmt.Fprintf(b, "📞 %s\n", *d.Phone)
	}
	if d.Email != nil {
		fmt.Fprintf(b, "📧 %s\n", *d.Email)
	}
	if len(d.Amenities) > 0 {
		fmt.Fprintf(b, "🎯 Amenities: %s\n", strings.Join(d.Amenities, ", "))
	}
	fmt.Fprintf(b, "🏠 Total Rooms: %d\n", d.TotalRooms)
	fmt.Fprintf(b, "✅ Available Rooms: %d\n", d.AvailableRooms)
	if d.MinRoomPrice != nil {
		fmt.Fprintf(b, "💰 Price Range: %s\n", priceRange(d.MinRoomPrice, d.MaxRoomPrice))
	}
	fmt.Fprintf(b, "📅 Total Bookings: %d\n\n", d.TotalBookings)
}

// FormatHotelDetails lists every available room.
func FormatHotelDetails(d domain.HotelDetails) string {
	var b strings.Builder
	writeHotelHeader(&b, d)
	if len(d.Rooms) == 0 {
		b.WriteString("No rooms currently available.\n")
		return b.String()
	}
	b.WriteString("**Available Rooms:**\n")
	for _, r := range d.Rooms {
		fmt.Fprintf(&b, "  • Room %s (%s) - %s/night\n", r.RoomNumber, r.Type, money(r.Price))
	}
	return b.String()
}

// roomsPerTypePreview bounds how many rooms of one type FormatHotelOverview lists.
const roomsPerTypePreview = 3

// FormatHotelOverview groups available rooms by type, cheapest type first.
func FormatHotelOverview(d domain.HotelDetails) string {
	var b strings.Builder
	writeHotelHeader(&b, d)
	if len(d.Rooms) == 0 {
		b.WriteString("No rooms currently available at this hotel.\n")
		return b.String()
	}
	var order []domain.RoomType
	groups := map[domain.RoomType][]domain.RoomView{}
	for _, r := range d.Rooms {
		if _, ok := groups[r.Type]; !ok {
			order = append(order, r.Type)
		}
		groups[r.Type] = append(groups[r.Type], r)
	}
	b.WriteString("**Available Room Types:**\n")
	for _, t := range order {
		rooms := groups[t]
		fmt.Fprintf(&b, "\n🏠 **%s** (%d available)\n", t, len(rooms))
		for i, r := range rooms {
			if i == roomsPerTypePreview {
				fmt.Fprintf(&b, "  • ... and %d more %s rooms\n", len(rooms)-roomsPerTypePreview, t)
				break
			}
			fmt.Fprintf(&b, "  • Room %s - %s/night\n", r.RoomNumber, money(r.Price))
		}
	}
	return b.String()
}

func FormatCitySummary(cs domain.CitySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌍 **%s** overview:\n", cs.City)
	fmt.Fprintf(&b, "   🏨 Hotels: %d\n", cs.HotelCount)
	fmt.Fprintf(&b, "   ⭐ Average Stars: %.1f\n", cs.AvgStars)
	fmt.Fprintf(&b, "   🏠 Total Rooms: %d\n", cs.TotalRooms)
	fmt.Fprintf(&b, "   ✅ Available Rooms: %d\n", cs.AvailableRooms)
	fmt.Fprintf(&b, "   💰 Price Range: %s/night\n", priceRange(cs.MinPrice, cs.MaxPrice))
	return b.String()
}

func FormatBookings(bs []domain.BookingView) string {
	if len(bs) == 0 {
		return "No recent bookings found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d recent bookings:\n\n", len(bs))
	for _, bk := range bs {
		writeBooking(&b, bk)
	}
	return b.String()
}

func writeBooking(b *strings.Builder, bk domain.BookingView) {
	fmt.Fprintf(b, "📅 **%s**\n", bk.GuestName)
	fmt.Fprintf(b, "   🏨 %s (%s) - Room %s (%s)\n", bk.HotelName, bk.City, bk.RoomNumber, bk.RoomType)
	fmt.Fprintf(b, "   📆 %s to %s\n", bk.CheckIn.Format("2006-01-02"), bk.CheckOut.Format("2006-01-02"))
	if bk.TotalAmount != nil {
		fmt.Fprintf(b, "   💰 %s\n", money(*bk.TotalAmount))
	}
	fmt.Fprintf(b, "   📊 Status: %s\n\n", bk.Status)
}
