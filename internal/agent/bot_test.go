package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"hotelbot/internal/domain"
)

func newTestBot(m ChatModel, s ConversationStore, window int) *Bot {
	q := &fakeQueries{hotels: []domain.HotelSummary{{Hotel: domain.Hotel{ID: 1, Name: "Grand Palace Hotel", City: "New York", Stars: 5}}}}
	return NewBot(m, s, NewToolset(q), Options{MaxToolRounds: 3, MemoryWindow: window})
}

func TestChat_TextAnswer(t *testing.T) {
	m := &scriptedModel{replies: []*genai.GenerateContentResponse{textReply("Hello! I'm HotelBot 🏨")}}
	store := newMapStore()
	bot := newTestBot(m, store, 10)

	reply, err := bot.Chat(context.Background(), "t1", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello! I'm HotelBot 🏨", reply)
	assert.Len(t, store.threads["t1"], 2)
}

func TestChat_ToolRoundTrip(t *testing.T) {
	m := &scriptedModel{replies: []*genai.GenerateContentResponse{
		callReply("search_hotels_by_city", map[string]any{"city": "New York"}),
		textReply("There is one hotel in New York: Grand Palace Hotel."),
	}}
	store := newMapStore()
	bot := newTestBot(m, store, 10)

	reply, err := bot.Chat(context.Background(), "t1", "hotels in New York?")
	require.NoError(t, err)
	assert.Contains(t, reply, "Grand Palace Hotel")

	require.Len(t, m.sent, 2)
	fr := m.sent[1][0].FunctionResponse
	require.NotNil(t, fr)
	assert.Equal(t, "search_hotels_by_city", fr.Name)
	assert.Equal(t, "call-search_hotels_by_city", fr.ID)
	assert.Contains(t, fr.Response["result"], "Grand Palace Hotel** (Hotel ID: 1)")

	// user text, model call, function response, model text
	assert.Len(t, store.threads["t1"], 4)
}

func TestChat_UnknownToolGoesBackToModel(t *testing.T) {
	m := &scriptedModel{replies: []*genai.GenerateContentResponse{
		callReply("teleport", nil),
		textReply("Sorry, I can't do that."),
	}}
	reply, err := newTestBot(m, newMapStore(), 10).Chat(context.Background(), "t1", "teleport me")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I can't do that.", reply)
	assert.Contains(t, m.sent[1][0].FunctionResponse.Response["result"], "Unknown tool")
}

func TestChat_MaxToolRounds(t *testing.T) {
	var replies []*genai.GenerateContentResponse
	for i := 0; i < 5; i++ {
		replies = append(replies, callReply("search_hotels_by_city", map[string]any{"city": "New York"}))
	}
	store := newMapStore()
	reply, err := newTestBot(&scriptedModel{replies: replies}, store, 10).Chat(context.Background(), "t1", "loop")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply, "I apologize, but I encountered an error:"), reply)
	assert.Contains(t, reply, "too many tool rounds")
	assert.Empty(t, store.threads["t1"], "failed turns are not remembered")
}

func TestChat_ModelErrorBecomesApology(t *testing.T) {
	m := &scriptedModel{sendErr: errors.New("quota exceeded")}
	reply, err := newTestBot(m, newMapStore(), 10).Chat(context.Background(), "t1", "hi")
	require.NoError(t, err)
	assert.Equal(t, "I apologize, but I encountered an error: quota exceeded. Please try again or rephrase your question.", reply)
}

func TestChat_SaveFailureStillReplies(t *testing.T) {
	store := newMapStore()
	store.saveErr = errors.New("redis down")
	m := &scriptedModel{replies: []*genai.GenerateContentResponse{textReply("ok")}}
	reply, err := newTestBot(m, store, 10).Chat(context.Background(), "t1", "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

func TestChat_RejectsEmptyInput(t *testing.T) {
	bot := newTestBot(&scriptedModel{}, newMapStore(), 10)
	_, err := bot.Chat(context.Background(), "t1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = bot.Chat(context.Background(), "", "hi")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestChat_HistoryCarriesOverAndTrims(t *testing.T) {
	m := &scriptedModel{}
	store := newMapStore()
	bot := newTestBot(m, store, 2)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		m.replies = append(m.replies, textReply(fmt.Sprintf("answer %d", i)))
		_, err := bot.Chat(ctx, "t1", fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}
	// the third session was seeded with the first two exchanges
	require.Len(t, m.seeded, 3)
	assert.Len(t, m.seeded[2], 4)

	msgs, err := bot.History(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, Message{Role: genai.RoleUser, Text: "question 2"}, msgs[0])
	assert.Equal(t, Message{Role: genai.RoleModel, Text: "answer 3"}, msgs[3])
}

func TestTrimHistory_KeepsToolPairs(t *testing.T) {
	user := func(s string) *genai.Content { return genai.NewContentFromText(s, genai.RoleUser) }
	model := func(s string) *genai.Content { return genai.NewContentFromText(s, genai.RoleModel) }
	call := &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{genai.NewPartFromFunctionCall("f", nil)}}
	resp := &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{genai.NewPartFromFunctionResponse("f", map[string]any{"result": "x"})}}

	h := []*genai.Content{user("q1"), model("a1"), user("q2"), call, resp, model("a2"), user("q3"), model("a3")}

	got := trimHistory(h, 2)
	require.Len(t, got, 6)
	assert.Equal(t, "q2", got[0].Parts[0].Text)

	assert.Len(t, trimHistory(h, 0), len(h))
	assert.Len(t, trimHistory(h, 10), len(h))
	assert.Equal(t, "q3", trimHistory(h, 1)[0].Parts[0].Text)
}

func TestReset(t *testing.T) {
	m := &scriptedModel{replies: []*genai.GenerateContentResponse{textReply("hi there")}}
	store := newMapStore()
	bot := newTestBot(m, store, 10)
	ctx := context.Background()

	_, err := bot.Chat(ctx, "t1", "hello")
	require.NoError(t, err)
	require.NoError(t, bot.Reset(ctx, "t1"))

	msgs, err := bot.History(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestThreadLocksAreReleased(t *testing.T) {
	replies := make([]*genai.GenerateContentResponse, 0, 200)
	for range 200 {
		replies = append(replies, textReply("ok"))
	}
	bot := newTestBot(&scriptedModel{replies: replies}, newMapStore(), 10)
	ctx := context.Background()

	for i := range 200 {
		thread := fmt.Sprintf("t-%d", i)
		_, err := bot.Chat(ctx, thread, "hello")
		require.NoError(t, err)
		if i%2 == 0 {
			require.NoError(t, bot.Reset(ctx, thread))
		}
	}
	assert.Empty(t, bot.locks)
}

func TestThreadLockSerializesSameThread(t *testing.T) {
	bot := newTestBot(&scriptedModel{}, newMapStore(), 10)

	var (
		wg     sync.WaitGroup
		inside = map[string]int{}
		guard  sync.Mutex
	)
	for i := range 400 {
		wg.Add(1)
		go func(thread string) {
			defer wg.Done()
			unlock := bot.lock(thread)
			defer unlock()

			guard.Lock()
			inside[thread]++
			n := inside[thread]
			guard.Unlock()
			if n != 1 {
				t.Errorf("thread %s held by %d turns", thread, n)
			}
			guard.Lock()
			inside[thread]--
			guard.Unlock()
		}(fmt.Sprintf("t-%d", i%4))
	}
	wg.Wait()

	bot.mu.Lock()
	defer bot.mu.Unlock()
	assert.Empty(t, bot.locks)
}

func TestBotTools(t *testing.T) {
	tools := newTestBot(&scriptedModel{}, newMapStore(), 10).Tools()
	require.Len(t, tools, 10)
	assert.Equal(t, "search_hotels_by_city", tools[0].Name)
}
