package agent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"hotelbot/internal/adapters/observability"
	"hotelbot/internal/app"
	"hotelbot/internal/domain"
)

// Queries is the read side the tools need; *app.QueryService satisfies it.
type Queries interface {
	SearchByCity(ctx context.Context, city string) ([]domain.HotelSummary, error)
	SearchByRating(ctx context.Context, minRating float64) ([]domain.HotelSummary, error)
	SearchByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]domain.HotelSummary, error)
	AvailableRooms(ctx context.Context, f domain.RoomFilter) ([]domain.RoomView, error)
	RoomTypesAndPrices(ctx context.Context, hotelID *int64) ([]domain.RoomTypePrice, error)
	HotelDetails(ctx context.Context, id int64) (domain.HotelDetails, error)
	HotelByName(ctx context.Context, name string) (domain.HotelDetails, error)
	CitySummary(ctx context.Context, city string) (domain.CitySummary, error)
	RecentBookings(ctx context.Context, limit int) ([]domain.BookingView, error)
	CheckRoomAvailability(ctx context.Context, hotelName, roomType string) ([]domain.RoomView, error)
}

type Handler func(ctx context.Context, args map[string]any) (string, error)

type Tool struct {
	Decl    *genai.FunctionDeclaration
	Handler Handler
	// prefix for unexpected failures, e.g. "Error searching hotels"
	errPrefix string
}

// userError carries text that goes back to the model unchanged.
type userError string

func (e userError) Error() string { return string(e) }

type Toolset struct {
	tools map[string]Tool
	order []string
}

func (ts *Toolset) add(t Tool) {
	if ts.tools == nil {
		ts.tools = map[string]Tool{}
	}
	ts.tools[t.Decl.Name] = t
	ts.order = append(ts.order, t.Decl.Name)
}

// Declarations returns the function declarations in registration order.
func (ts *Toolset) Declarations() []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(ts.order))
	for _, n := range ts.order {
		out = append(out, ts.tools[n].Decl)
	}
	return out
}

// Names is sorted.
func (ts *Toolset) Names() []string {
	out := append([]string(nil), ts.order...)
	sort.Strings(out)
	return out
}

// Call runs one tool and always produces text for the model; the error is
// only for logging and metrics.
func (ts *Toolset) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	t, ok := ts.tools[name]
	if !ok {
		observability.ObserveTool(name, "unknown")
		return fmt.Sprintf("Unknown tool %q. Available tools: %s", name, strings.Join(ts.Names(), ", ")),
			fmt.Errorf("unknown tool %q", name)
	}
	start := time.Now()
	out, err := t.Handler(ctx, args)
	status := "ok"
	var ue userError
	switch {
	case err == nil:
	case errors.As(err, &ue):
		status, out = "invalid", ue.Error()
	case errors.Is(err, domain.ErrInvalidArgument):
		status, out = "invalid", strings.TrimPrefix(err.Error(), domain.ErrInvalidArgument.Error()+": ")
	default:
		status, out = "error", fmt.Sprintf("%s: %v", t.errPrefix, err)
	}
	observability.ObserveTool(name, status)
	log.Debug().Str("tool", name).Str("status", status).Dur("took", time.Since(start)).Msg("tool call")
	return out, err
}

func str(desc string) *genai.Schema { return &genai.Schema{Type: genai.TypeString, Description: desc} }
func num(desc string) *genai.Schema { return &genai.Schema{Type: genai.TypeNumber, Description: desc} }
func integer(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeInteger, Description: desc}
}

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

// NewToolset registers the hotel lookup tools against q.
func NewToolset(q Queries) *Toolset {
	ts := &Toolset{}

	ts.add(Tool{
		Decl: &genai.FunctionDeclaration{
			Name:        "search_hotels_by_city",
			Description: "Search for hotels in a specific city. Use this when the user asks about hotels in a particular location.",
			Parameters:  object(map[string]*genai.Schema{"city": str("City name, e.g. Miami")}, "city"),
		},
		errPrefix: "Error searching hotels",
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			city := argString(args, "city")
			if city == "" {
				return "", userError("Please tell me which city to search in.")
			}
			hs, err := q.SearchByCity(ctx, city)
			if err != nil {
				return "", err
			}
			return app.FormatHotelsByCity(city, hs), nil
		},
	})

	ts.add(Tool{
		Decl: &genai.FunctionDeclaration{
			Name:        "search_hotels_by_rating",
			Description: "Search for hotels with a minimum star rating. Rating should be between 1.0 and 5.0.",
			Parameters:  object(map[string]*genai.Schema{"min_rating": num("Minimum star rating, 1.0 to 5.0")}, "min_rating"),
		},
		errPrefix: "Error searching hotels by rating",
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			r, err := argFloat(args, "min_rating", "rating")
			if err != nil || r == nil {
				return "", userError("Invalid rating format. Please provide a number between 1.0 and 5.0")
			}
			hs, err := q.SearchByRating(ctx, *r)
			if err != nil {
				return "", err
			}
			return app.FormatHotelsByRating(*r, hs), nil
		},
	})

	ts.add(Tool{
		Decl: &genai.FunctionDeclaration{
			Name: "get_available_rooms",
			Description: "Get available rooms with optional filters. Filters may be given as separate arguments " +
				"or as a string like 'hotel_id:1,room_type:single,max_price:200'.",
			Parameters: object(map[string]*genai.Schema{
				"hotel_id":  integer("Only rooms of this hotel"),
				"room_type": str("single, double, suite, deluxe or presidential"),
				"max_price": num("Maximum price per night"),
				"filters":   str("Legacy filter string, e.g. 'hotel_id:1,room_type:single,max_price:200'"),
			}),
		},
		errPrefix: "Error fetching available rooms",
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			f := ParseRoomFilter(argString(args, "filters"))
			id, err := argInt64(args, "hotel_id")
			if err != nil {
				return "", userError("Invalid hotel ID format. Please provide a valid number.")
			}
			if id != nil {
				f.HotelID = id
			}
			if rt := argString(args, "room_type"); rt != "" {
				f.RoomType = rt
			}
			p, err := argFloat(args, "max_price")
			if err != nil {
				return "", userError("Invalid price format. Please provide valid numbers.")
			}
			if p != nil {
				f.MaxPrice = p
			}
			rooms, err := q.AvailableRooms(ctx, f)
			if err != nil {
				return "", err
			}
			return app.FormatRooms(rooms), nil
		},
	})

	ts.add(Tool{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_room_types_and_prices",
			Description: "Get room types and their price ranges. Optionally filter by hotel_id.",
			Parameters:  object(map[string]*genai.Schema{"hotel_id": integer("Only room types of this hotel")}),
		},
		errPrefix: "Error fetching room types",
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			id, err := argInt64(args, "hotel_id")
			if err != nil {
				return "", userError("Invalid hotel ID format. Please provide a valid number.")
			}
			ps, err := q.RoomTypesAndPrices(ctx, id)
			if err != nil {
				return "", err
			}
			return app.FormatRoomTypes(ps, id != nil), nil
		},
	})

	ts.add(Tool{
		Decl: &genai.FunctionDeclaration{
			Name:        "search_hotels_by_price_range",
			Description: "Search hotels with available rooms in a specific price range per night.",
			Parameters: object(map[string]*genai.Schema{
				"min_price": num("Minimum price per night"),
				"max_price": num("Maximum price per night"),
			}, "min_price", "max_price"),
		},
		errPrefix: "Error searching hotels by price range",
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			lo, err1 := argFloat(args, "min_price")
			hi, err2 := argFloat(args, "max_price")
			if err1 != nil || err2 != nil || lo == nil || hi == nil {
				return "", userError("Invalid price format. Please provide valid numbers.")
			}
			hs, err := q.SearchByPriceRange(ctx, *lo, *hi)
			if err != nil {
				return "", err
			}
			return app.FormatHotelsByPriceRange(*lo, *hi, hs), nil
		},
	})

	ts.add(Tool{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_hotel_details",
			Description: "Get detailed information about a specific hotel including its available rooms.",
			Parameters:  object(map[string]*genai.Schema{"hotel_id": integer("Hotel ID from earlier search results")}, "hotel_id"),
		},
		errPrefix: "Error fetching hotel details",
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			id, err := argInt64(args, "hotel_id")
			if err != nil || id == nil {
				return "", userError("Invalid hotel ID format. Please provide a valid number.")
			}
			d, err := q.HotelDetails(ctx, *id)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Sprintf("Hotel with ID %d not found.", *id), nil
			}
			if err != nil {
				return "", err
			}
			return app.FormatHotelDetails(d), nil
		},
	})

	ts.add(Tool{
		Decl: &genai.FunctionDeclaration{
			Name:        "search_hotel_by_name",
			Description: "Search for a hotel by its name and get its details and available rooms.",
			Parameters:  object(map[string]*genai.Schema{"hotel_name": str("Full or partial hotel name")}, "hotel_name"),
		},
		errPrefix: "Error searching hotel by name",
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			name := argString(args, "hotel_name", "name")
			if name == "" {
				return "", userError("Please provide a hotel name.")
			}
			d, err := q.HotelByName(ctx, name)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Sprintf("No hotel found with name '%s'. Please try a different name or search by city.", name), nil
			}
			if err != nil {
				return "", err
			}
			return app.FormatHotelOverview(d), nil
		},
	})

	ts.add(Tool{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_city_summary",
			Description: "Get an overview of a city: number of hotels, average rating, rooms and price range.",
			Parameters:  object(map[string]*genai.Schema{"city": str("City name")}, "city"),
		},
		errPrefix: "Error fetching city summary",
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			city := argString(args, "city")
			if city == "" {
				return "", userError("Please tell me which city to summarize.")
			}
			cs, err := q.CitySummary(ctx, city)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Sprintf("No hotels found in %s. Please try another city.", city), nil
			}
			if err != nil {
				return "", err
			}
			return app.FormatCitySummary(cs), nil
		},
	})

	ts.add(Tool{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_recent_bookings",
			Description: "List the most recent bookings across all hotels.",
			Parameters:  object(map[string]*genai.Schema{"limit": integer("How many bookings to show, default 10")}),
		},
		errPrefix: "Error fetching bookings",
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			n, err := argInt64(args, "limit")
			if err != nil {
				return "", userError("Invalid limit. Please provide a whole number.")
			}
			limit := 0
			if n != nil {
				limit = int(*n)
			}
			bs, err := q.RecentBookings(ctx, limit)
			if err != nil {
				return "", err
			}
			return app.FormatBookings(bs), nil
		},
	})

	ts.add(Tool{
		Decl: &genai.FunctionDeclaration{
			Name:        "check_room_availability",
			Description: "Check which rooms are available at a hotel, optionally of one room type.",
			Parameters: object(map[string]*genai.Schema{
				"hotel_name": str("Full or partial hotel name"),
				"room_type":  str("single, double, suite, deluxe or presidential"),
			}, "hotel_name"),
		},
		errPrefix: "Error checking room availability",
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			name := argString(args, "hotel_name", "name")
			if name == "" {
				return "", userError("Please provide a hotel name.")
			}
			rt := argString(args, "room_type")
			rooms, err := q.CheckRoomAvailability(ctx, name, rt)
			if err != nil {
				return "", err
			}
			return app.FormatRoomAvailability(name, rt, rooms), nil
		},
	})

	return ts
}
