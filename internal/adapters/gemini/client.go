package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"hotelbot/internal/adapters/observability"
	"hotelbot/internal/agent"
	"hotelbot/internal/shared"
)

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string // empty means the public endpoint
	Temperature float32
	MaxTokens   int
	RPS         int
	Timeout     time.Duration
}

// Client opens chat sessions configured with the system prompt and tools.
type Client struct {
	c     *genai.Client
	model string
	gen   *genai.GenerateContentConfig
}

func New(ctx context.Context, cfg Config, systemPrompt string, tools []*genai.FunctionDeclaration) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", shared.ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	hc := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &limitedTransport{
			next: http.DefaultTransport,
			rl:   rate.NewLimiter(rate.Limit(cfg.RPS), cfg.RPS),
		},
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  hc,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, err
	}

	gen := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(cfg.Temperature),
	}
	if cfg.MaxTokens > 0 {
		gen.MaxOutputTokens = int32(cfg.MaxTokens)
	}
	if len(tools) > 0 {
		gen.Tools = []*genai.Tool{{FunctionDeclarations: tools}}
	}
	return &Client{c: c, model: cfg.Model, gen: gen}, nil
}

func (c *Client) Model() string { return c.model }

func (c *Client) StartChat(ctx context.Context, history []*genai.Content) (agent.ChatSession, error) {
	chat, err := c.c.Chats.Create(ctx, c.model, c.gen, history)
	if err != nil {
		return nil, err
	}
	return session{chat}, nil
}

type session struct{ chat *genai.Chat }

func (s session) Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error) {
	return s.chat.Send(ctx, parts...)
}

func (s session) History() []*genai.Content { return s.chat.History(true) }

// limitedTransport applies the client-side rate limit and records latency
// for every call the SDK makes.
type limitedTransport struct {
	next http.RoundTripper
	rl   *rate.Limiter
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.rl.Wait(req.Context()); err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	observability.ObserveExternal("gemini", endpoint(req.URL.Path), status, time.Since(start))
	return resp, err
}

// endpoint reduces ".../models/gemini-2.5-flash:generateContent" to "generateContent".
func endpoint(path string) string {
	if i := strings.LastIndexByte(path, ':'); i >= 0 {
		return path[i+1:]
	}
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
