package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"hotelbot/internal/adapters/observability"
	"hotelbot/internal/domain"
)

const SystemPrompt = `You are a helpful and friendly hotel booking assistant. Your name is HotelBot.

You have access to a comprehensive hotel database and can help users:
- Search for hotels in specific cities
- Find hotels by rating
- Check room availability and types
- Get price information
- Provide detailed hotel information
- Search for specific hotels by name

Guidelines:
- Be conversational and friendly
- Ask clarifying questions when needed
- Provide detailed, helpful responses
- Use emojis to make responses more engaging
- Remember the conversation context from previous messages
- When users ask about room types or availability at a specific hotel, use the hotel name or ID from previous search results
- If a user asks about "this hotel" or "that hotel", refer to the most recently mentioned hotel in the conversation
- Always include hotel IDs in search results so users can reference them later
- If a user asks about booking, explain that you can help them find hotels and rooms, but they would need to contact the hotel directly for actual booking
- When showing hotel or room information, include relevant details like prices, ratings, and availability

When users ask follow-up questions about a specific hotel, use search_hotel_by_name or get_hotel_details with the hotel ID to get current information.`

const (
	apologyFormat = "I apologize, but I encountered an error: %v. Please try again or rephrase your question."
	emptyReply    = "I'm sorry, I couldn't come up with an answer. Could you rephrase your question?"
)

// ChatSession is one multi-turn exchange with the model.
type ChatSession interface {
	Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error)
	// History returns the valid turns so far, seed history included.
	History() []*genai.Content
}

// ChatModel opens chat sessions seeded with a stored history.
type ChatModel interface {
	StartChat(ctx context.Context, history []*genai.Content) (ChatSession, error)
}

// ConversationStore keeps the curated history of each thread.
type ConversationStore interface {
	Load(ctx context.Context, thread string) ([]*genai.Content, error)
	Save(ctx context.Context, thread string, history []*genai.Content) error
	Delete(ctx context.Context, thread string) error
}

// Options tunes the tool loop and the per-thread memory.
type Options struct {
	MaxToolRounds int // default 5
	MemoryWindow  int // user turns kept per thread; 0 keeps everything
}

// Bot runs chat turns against the model, executing the tools it asks for.
type Bot struct {
	model ChatModel
	store ConversationStore
	tools *Toolset
	opts  Options

	mu    sync.Mutex
	locks map[string]*threadLock
}

// threadLock serializes turns on one thread; refs counts holders and waiters.
type threadLock struct {
	sync.Mutex
	refs int
}

func NewBot(model ChatModel, store ConversationStore, tools *Toolset, opts Options) *Bot {
	if opts.MaxToolRounds <= 0 {
		opts.MaxToolRounds = 5
	}
	return &Bot{model: model, store: store, tools: tools, opts: opts, locks: map[string]*threadLock{}}
}

// lock holds thread's mutex until the returned func runs. The entry is
// dropped once nobody holds or waits on it.
func (b *Bot) lock(thread string) func() {
	b.mu.Lock()
	l, ok := b.locks[thread]
	if !ok {
		l = &threadLock{}
		b.locks[thread] = l
	}
	l.refs++
	b.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		b.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(b.locks, thread)
		}
		b.mu.Unlock()
	}
}

// Chat answers one user message on thread. Failures during the turn are
// folded into an apology reply; the error return is only for bad input.
func (b *Bot) Chat(ctx context.Context, thread, message string) (string, error) {
	message = strings.TrimSpace(message)
	if thread == "" || message == "" {
		return "", fmt.Errorf("%w: thread and message are required", domain.ErrInvalidArgument)
	}
	defer b.lock(thread)()

	reply, err := b.turn(ctx, thread, message)
	if err != nil {
		observability.ObserveChat("error")
		log.Error().Err(err).Str("thread", thread).Str("error_type", observability.LabelErr(err)).Msg("chat turn failed")
		return fmt.Sprintf(apologyFormat, err), nil
	}
	observability.ObserveChat("reply")
	return reply, nil
}

var errTooManyRounds = errors.New("too many tool rounds")

func (b *Bot) turn(ctx context.Context, thread, message string) (string, error) {
	history, err := b.store.Load(ctx, thread)
	if err != nil {
		return "", err
	}
	sess, err := b.model.StartChat(ctx, history)
	if err != nil {
		return "", err
	}
	resp, err := sess.Send(ctx, genai.NewPartFromText(message))
	if err != nil {
		return "", err
	}

	for round := 0; ; round++ {
		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			break
		}
		if round >= b.opts.MaxToolRounds {
			return "", fmt.Errorf("%w (%d)", errTooManyRounds, b.opts.MaxToolRounds)
		}
		parts := make([]*genai.Part, 0, len(calls))
		for _, c := range calls {
			out, err := b.tools.Call(ctx, c.Name, c.Args)
			if err != nil {
				log.Warn().Err(err).Str("tool", c.Name).Msg("tool returned error text")
			}
			p := genai.NewPartFromFunctionResponse(c.Name, map[string]any{"result": out})
			p.FunctionResponse.ID = c.ID
			parts = append(parts, p)
		}
		if resp, err = sess.Send(ctx, parts...); err != nil {
			return "", err
		}
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		reply = emptyReply
	}
	if err := b.store.Save(ctx, thread, trimHistory(sess.History(), b.opts.MemoryWindow)); err != nil {
		// the reply is still good; only memory is lost
		log.Warn().Err(err).Str("thread", thread).Msg("saving conversation failed")
	}
	return reply, nil
}

func isUserText(c *genai.Content) bool {
	if c == nil || c.Role != genai.RoleUser {
		return false
	}
	for _, p := range c.Parts {
		if p != nil && p.Text != "" {
			return true
		}
	}
	return false
}

// trimHistory keeps the last window user turns. Cuts only happen right before
// a user text message, so a function call is never separated from its response.
func trimHistory(h []*genai.Content, window int) []*genai.Content {
	if window <= 0 {
		return h
	}
	seen := 0
	for i := len(h) - 1; i >= 0; i-- {
		if isUserText(h[i]) {
			seen++
			if seen == window {
				return h[i:]
			}
		}
	}
	return h
}

// Reset forgets the stored history of thread.
func (b *Bot) Reset(ctx context.Context, thread string) error {
	defer b.lock(thread)()
	return b.store.Delete(ctx, thread)
}

// Message is one text turn of a transcript.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// History is the plain transcript of thread; tool traffic is left out.
func (b *Bot) History(ctx context.Context, thread string) ([]Message, error) {
	h, err := b.store.Load(ctx, thread)
	if err != nil {
		return nil, err
	}
	out := make([]Message, 0, len(h))
	for _, c := range h {
		if c == nil {
			continue
		}
		var sb strings.Builder
		for _, p := range c.Parts {
			if p != nil && p.Text != "" && !p.Thought {
				sb.WriteString(p.Text)
			}
		}
		if sb.Len() == 0 {
			continue
		}
		out = append(out, Message{Role: c.Role, Text: sb.String()})
	}
	return out, nil
}

type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (b *Bot) Tools() []ToolInfo {
	out := make([]ToolInfo, 0, len(b.tools.order))
	for _, d := range b.tools.Declarations() {
		out = append(out, ToolInfo{Name: d.Name, Description: d.Description})
	}
	return out
}
