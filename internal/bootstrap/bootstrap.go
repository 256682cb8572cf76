// Package bootstrap wires configuration into the concrete adapters shared by
// the API server and the CLI.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"hotelbot/internal/adapters/gemini"
	"hotelbot/internal/adapters/memory"
	redisad "hotelbot/internal/adapters/redis"
	"hotelbot/internal/agent"
	"hotelbot/internal/app"
	"hotelbot/internal/domain"
	"hotelbot/internal/shared"
	mysqlrepo "hotelbot/internal/storage/mysql"
)

type Deps struct {
	Cfg     shared.Config
	DB      *sql.DB
	Repo    *mysqlrepo.Repo
	Cache   domain.Cache
	Threads agent.ConversationStore
	Queries *app.QueryService

	rdb *redis.Client
}

// Open connects to MySQL and, when configured, Redis. Without REDIS_ADDR the
// cache and conversation memory live in process.
func Open(ctx context.Context, cfg shared.Config) (*Deps, error) {
	db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
	if err != nil {
		return nil, err
	}
	d := &Deps{Cfg: cfg, DB: db, Repo: mysqlrepo.New(db)}

	if cfg.RedisAddr != "" {
		d.rdb = redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := redisad.Ping(ctx, d.rdb); err != nil {
			d.Close()
			return nil, err
		}
		d.Cache = redisad.NewCache(d.rdb)
		d.Threads = redisad.NewConversationStore(d.rdb, cfg.MemoryTTL)
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis connection ok")
	} else {
		d.Cache = memory.NewCache()
		d.Threads = memory.NewConversationStore(cfg.MemoryTTL)
		log.Info().Msg("no REDIS_ADDR; using in-process cache and memory")
	}

	d.Queries = app.NewQueryService(d.Repo, d.Cache, cfg.CacheTTL, cfg.MaxResults)
	return d, nil
}

// Bot builds the Gemini-backed chatbot over d.Queries.
func (d *Deps) Bot(ctx context.Context) (*agent.Bot, error) {
	if err := d.Cfg.RequireLLM(); err != nil {
		return nil, err
	}
	tools := agent.NewToolset(d.Queries)
	model, err := gemini.New(ctx, gemini.Config{
		APIKey:      d.Cfg.GeminiKey,
		Model:       d.Cfg.GeminiModel,
		BaseURL:     d.Cfg.GeminiBaseURL,
		Temperature: d.Cfg.Temperature,
		MaxTokens:   d.Cfg.MaxTokens,
		RPS:         d.Cfg.LLMRPS,
	}, agent.SystemPrompt, tools.Declarations())
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	log.Info().Str("model", model.Model()).Int("tools", len(tools.Names())).Msg("chat model ready")
	return agent.NewBot(model, d.Threads, tools, agent.Options{
		MaxToolRounds: d.Cfg.MaxToolRounds,
		MemoryWindow:  d.Cfg.MemoryWindow,
	}), nil
}

func (d *Deps) Close() {
	if d.rdb != nil {
		_ = d.rdb.Close()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
