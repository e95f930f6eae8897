package server

import (
	"context"
	"net/http"

	"github.com/bethneyQQ/prompt-forge/internal/agent"
	"github.com/bethneyQQ/prompt-forge/internal/docs"
	"github.com/bethneyQQ/prompt-forge/internal/handler"
	"github.com/bethneyQQ/prompt-forge/internal/llm"
	"github.com/bethneyQQ/prompt-forge/internal/middleware"
	"github.com/bethneyQQ/prompt-forge/internal/tools"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func (s *Server) setupRoutes() (http.Handler, error) {
	cfg := s.cfg
	ctx := context.Background()

	// ─── Documentation store + tool executor ────────────────────────────────────
	store := docs.NewStore(cfg.DocsPath)
	executor := tools.NewExecutor(store)

	if providers := store.Providers(); len(providers) == 0 {
		log.Warn().Str("path", cfg.DocsPath).Msg("no provider documentation found - agent tools will come up empty")
	} else {
		log.Info().Strs("providers", providers).Msg("documentation store loaded")
	}

	// ─── LLM backends ───────────────────────────────────────────────────────────
	// One optimizer per provider with a configured credential. The clients
	// are stateless per call and shared across concurrent runs.
	optimizers := make(map[llm.Provider]*agent.Optimizer)
	for _, p := range []llm.Provider{llm.ProviderAnthropic, llm.ProviderOpenRouter, llm.ProviderDashScope, llm.ProviderGemini} {
		apiKey := cfg.APIKeyFor(string(p))
		if apiKey == "" {
			continue
		}
		clientCfg := llm.ClientConfig{
			Provider:    p,
			APIKey:      apiKey,
			Model:       cfg.ModelFor(string(p)),
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}
		if p == llm.ProviderAnthropic {
			clientCfg.BaseURL = cfg.AnthropicBaseURL
		}
		client, err := llm.New(ctx, clientCfg)
		if err != nil {
			log.Warn().Err(err).Str("provider", string(p)).Msg("llm backend unavailable")
			continue
		}
		optimizers[p] = agent.NewOptimizer(client, executor, cfg.LogsPath)
	}

	defaultProvider, err := llm.ParseProvider(cfg.LLMProvider)
	if err != nil {
		return nil, err
	}

	configuredDefault := ""
	if _, ok := optimizers[defaultProvider]; ok {
		configuredDefault = string(defaultProvider)
	}

	log.Info().
		Int("llm_backends", len(optimizers)).
		Str("default_backend", string(defaultProvider)).
		Bool("auth_enabled", cfg.EnableAuth && len(cfg.APIKeys) > 0).
		Msg("service configuration")

	if len(optimizers) == 0 {
		log.Warn().Msg("WARNING: no LLM credentials configured - /api/v1/optimize will return 503")
	}
	if cfg.EnableAuth && len(cfg.APIKeys) == 0 {
		log.Warn().Msg("WARNING: auth enabled but no API keys configured - all API requests will be rejected")
	}

	// ─── Handlers ───────────────────────────────────────────────────────────────
	healthH := handler.NewHealthHandler(store, configuredDefault)
	providersH := handler.NewProvidersHandler(store)
	optimizeH := handler.NewOptimizeHandler(optimizers, defaultProvider, cfg.AgentTimeout)

	// ─── Router ─────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	// Public routes
	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	// Auth + rate limiting for API routes
	apiMiddleware := []func(http.Handler) http.Handler{
		middleware.RateLimit(cfg.RateLimitPerMinute),
	}
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		apiMiddleware = append(apiMiddleware, middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
	}

	r.Group(func(r chi.Router) {
		for _, m := range apiMiddleware {
			r.Use(m)
		}

		r.Route(cfg.APIPrefix, func(r chi.Router) {
			r.Get("/providers", providersH.List)
			r.Post("/optimize", optimizeH.Optimize)
		})
	})

	return r, nil
}
