package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotelbot/internal/agent"
	"hotelbot/internal/domain"
)

// Queries is the read side exposed over HTTP; *app.QueryService satisfies it.
type Queries interface {
	SearchByCity(ctx context.Context, city string) ([]domain.HotelSummary, error)
	SearchByRating(ctx context.Context, minRating float64) ([]domain.HotelSummary, error)
	SearchByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]domain.HotelSummary, error)
	AvailableRooms(ctx context.Context, f domain.RoomFilter) ([]domain.RoomView, error)
	HotelDetails(ctx context.Context, id int64) (domain.HotelDetails, error)
	CitySummary(ctx context.Context, city string) (domain.CitySummary, error)
}

// Chatter is the conversational side; *agent.Bot satisfies it.
type Chatter interface {
	Chat(ctx context.Context, thread, message string) (string, error)
	History(ctx context.Context, thread string) ([]agent.Message, error)
	Reset(ctx context.Context, thread string) error
	Tools() []agent.ToolInfo
}

type Handlers struct {
	Q   Queries
	Bot Chatter // nil disables the chat routes
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/{id}", h.getHotel)
		r.Get("/hotels/{id}/rooms", h.listRooms)
		r.Get("/cities/{city}/summary", h.citySummary)

		if h.Bot != nil {
			r.Post("/chat", h.chat)
			r.Get("/chat/{thread}/history", h.history)
			r.Delete("/chat/{thread}", h.reset)
			r.Get("/tools", h.tools)
		}
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrInvalidArgument):
		writeProblem(w, http.StatusBadRequest, "Bad Request",
			strings.TrimPrefix(err.Error(), domain.ErrInvalidArgument.Error()+": "))
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable answers 304 when the client already holds this version.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "encoding failed")
		return
	}
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return 0, false
	}
	return id, true
}

func queryFloat(w http.ResponseWriter, r *http.Request, name string) (*float64, bool) {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid "+name, name+" must be a number")
		return nil, false
	}
	return &f, true
}

// listHotels searches by exactly one of: city, min_stars, or min_price+max_price.
func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	stars, ok := queryFloat(w, r, "min_stars")
	if !ok {
		return
	}
	lo, ok := queryFloat(w, r, "min_price")
	if !ok {
		return
	}
	hi, ok := queryFloat(w, r, "max_price")
	if !ok {
		return
	}

	var (
		out []domain.HotelSummary
		err error
	)
	switch {
	case city != "" && stars == nil && lo == nil && hi == nil:
		out, err = h.Q.SearchByCity(r.Context(), city)
	case stars != nil && city == "" && lo == nil && hi == nil:
		out, err = h.Q.SearchByRating(r.Context(), *stars)
	case lo != nil && hi != nil && city == "" && stars == nil:
		out, err = h.Q.SearchByPriceRange(r.Context(), *lo, *hi)
	default:
		writeProblem(w, http.StatusBadRequest, "Invalid query", "use one of: city, min_stars, or min_price with max_price")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []domain.HotelSummary{}
	}
	writeCacheable(w, r, map[string]any{"items": out})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := h.Q.HotelDetails(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, d)
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	maxPrice, ok := queryFloat(w, r, "max_price")
	if !ok {
		return
	}
	rooms, err := h.Q.AvailableRooms(r.Context(), domain.RoomFilter{
		HotelID:  &id,
		RoomType: r.URL.Query().Get("room_type"),
		MaxPrice: maxPrice,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if rooms == nil {
		rooms = []domain.RoomView{}
	}
	writeCacheable(w, r, map[string]any{"items": rooms})
}

func (h *Handlers) citySummary(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Q.CitySummary(r.Context(), chi.URLParam(r, "city"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, cs)
}

type chatRequest struct {
	ThreadID string `json:"thread_id"`
	Message  string `json:"message"`
}

type chatResponse struct {
	ThreadID string `json:"thread_id"`
	Reply    string `json:"reply"`
}

const maxChatBody = 16 << 10

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected {\"thread_id\"?: string, \"message\": string}")
		return
	}
	if req.ThreadID == "" {
		req.ThreadID = uuid.NewString()
	}
	reply, err := h.Bot.Chat(r.Context(), req.ThreadID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{ThreadID: req.ThreadID, Reply: reply})
}

func (h *Handlers) history(w http.ResponseWriter, r *http.Request) {
	thread := chi.URLParam(r, "thread")
	msgs, err := h.Bot.History(r.Context(), thread)
	if err != nil {
		writeError(w, err)
		return
	}
	if msgs == nil {
		msgs = []agent.Message{}
	}
	writeCacheable(w, r, map[string]any{"thread_id": thread, "messages": msgs})
}

func (h *Handlers) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Bot.Reset(r.Context(), chi.URLParam(r, "thread")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) tools(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, map[string]any{"items": h.Bot.Tools()})
}
