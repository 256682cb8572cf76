package agent

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"hotelbot/internal/domain"
)

// fakeQueries serves canned data and records the last arguments it saw.
type fakeQueries struct {
	hotels  []domain.HotelSummary
	rooms   []domain.RoomView
	types   []domain.RoomTypePrice
	details domain.HotelDetails
	city    domain.CitySummary
	recent  []domain.BookingView
	err     error

	lastCity   string
	lastRating float64
	lastFilter domain.RoomFilter
	lastHotel  *int64
	lastLimit  int
}

func (f *fakeQueries) SearchByCity(ctx context.Context, city string) ([]domain.HotelSummary, error) {
	f.lastCity = city
	return f.hotels, f.err
}
func (f *fakeQueries) SearchByRating(ctx context.Context, minRating float64) ([]domain.HotelSummary, error) {
	f.lastRating = minRating
	if minRating < 1 || minRating > 5 {
		return nil, fmt.Errorf("%w: Rating must be between 1.0 and 5.0", domain.ErrInvalidArgument)
	}
	return f.hotels, f.err
}
func (f *fakeQueries) SearchByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]domain.HotelSummary, error) {
	return f.hotels, f.err
}
func (f *fakeQueries) AvailableRooms(ctx context.Context, rf domain.RoomFilter) ([]domain.RoomView, error) {
	f.lastFilter = rf
	return f.rooms, f.err
}
func (f *fakeQueries) RoomTypesAndPrices(ctx context.Context, hotelID *int64) ([]domain.RoomTypePrice, error) {
	f.lastHotel = hotelID
	return f.types, f.err
}
func (f *fakeQueries) HotelDetails(ctx context.Context, id int64) (domain.HotelDetails, error) {
	if f.details.ID != id {
		return domain.HotelDetails{}, domain.ErrNotFound
	}
	return f.details, f.err
}
func (f *fakeQueries) HotelByName(ctx context.Context, name string) (domain.HotelDetails, error) {
	if f.details.ID == 0 {
		return domain.HotelDetails{}, domain.ErrNotFound
	}
	return f.details, f.err
}
func (f *fakeQueries) CitySummary(ctx context.Context, city string) (domain.CitySummary, error) {
	if f.city.City == "" {
		return domain.CitySummary{}, domain.ErrNotFound
	}
	return f.city, f.err
}
func (f *fakeQueries) RecentBookings(ctx context.Context, limit int) ([]domain.BookingView, error) {
	f.lastLimit = limit
	return f.recent, f.err
}
func (f *fakeQueries) CheckRoomAvailability(ctx context.Context, hotelName, roomType string) ([]domain.RoomView, error) {
	return f.rooms, f.err
}

// scriptedModel replays canned responses, one per Send.
type scriptedModel struct {
	replies  []*genai.GenerateContentResponse
	sent     [][]*genai.Part
	seeded   [][]*genai.Content
	startErr error
	sendErr  error
}

func (m *scriptedModel) StartChat(ctx context.Context, history []*genai.Content) (ChatSession, error) {
	if m.startErr != nil {
		return nil, m.startErr
	}
	m.seeded = append(m.seeded, history)
	return &scriptedSession{m: m, history: append([]*genai.Content(nil), history...)}, nil
}

type scriptedSession struct {
	m       *scriptedModel
	history []*genai.Content
}

func (s *scriptedSession) Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error) {
	if s.m.sendErr != nil {
		return nil, s.m.sendErr
	}
	s.m.sent = append(s.m.sent, parts)
	if len(s.m.replies) == 0 {
		return nil, errors.New("script exhausted")
	}
	resp := s.m.replies[0]
	s.m.replies = s.m.replies[1:]
	s.history = append(s.history, &genai.Content{Role: genai.RoleUser, Parts: parts}, resp.Candidates[0].Content)
	return resp, nil
}

func (s *scriptedSession) History() []*genai.Content { return s.history }

func textReply(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: genai.NewContentFromText(text, genai.RoleModel),
	}}}
}

func callReply(name string, args map[string]any) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{
			{FunctionCall: &genai.FunctionCall{ID: "call-" + name, Name: name, Args: args}},
		}},
	}}}
}

// mapStore is a plain ConversationStore.
type mapStore struct {
	threads map[string][]*genai.Content
	saveErr error
}

func newMapStore() *mapStore { return &mapStore{threads: map[string][]*genai.Content{}} }

func (s *mapStore) Load(ctx context.Context, thread string) ([]*genai.Content, error) {
	return s.threads[thread], nil
}
func (s *mapStore) Save(ctx context.Context, thread string, h []*genai.Content) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.threads[thread] = h
	return nil
}
func (s *mapStore) Delete(ctx context.Context, thread string) error {
	delete(s.threads, thread)
	return nil
}
