package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/claraeverett/Sierra-Agent/agent/agents/orchestrator"
	"github.com/claraeverett/Sierra-Agent/agent/catalog"
	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/llm"
	"github.com/claraeverett/Sierra-Agent/agent/search"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
	toolx "github.com/claraeverett/Sierra-Agent/agent/tool"
	configx "github.com/claraeverett/Sierra-Agent/pkg/config"
	"github.com/claraeverett/Sierra-Agent/pkg/httpserver"
	_ "github.com/claraeverett/Sierra-Agent/pkg/logger/autoload"
	"github.com/claraeverett/Sierra-Agent/pkg/mailer"
	"github.com/claraeverett/Sierra-Agent/pkg/openrouter"
	"github.com/claraeverett/Sierra-Agent/pkg/weather"
)

type AppConfig struct {
	// DatabaseDSN points at the catalog database; empty runs the seeded
	// in-memory catalog.
	DatabaseDSN string `envconfig:"DATABASE_DSN" split_words:"true"`

	ToolTimeout time.Duration `envconfig:"TOOL_TIMEOUT" split_words:"true" default:"15s"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	llmCfg := configx.MustNew[llm.Config]("LLM")
	apiClient := openrouter.NewClient(llmCfg.OpenRouter())
	if apiClient == nil {
		log.Fatal().Msg("llm api key is not configured")
	}
	llmClient, err := llm.NewClient(apiClient, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize llm client")
	}

	cat := buildCatalog(appCfg.DatabaseDSN)
	searcher := buildSearcher(llmClient)
	weatherClient := buildWeather()
	mailClient := buildMailer()

	registry := toolx.NewRegistry(toolx.Deps{
		Catalog: cat,
		Model:   llmClient,
		Weather: weatherClient,
		Mailer:  mailClient,
		Search:  searcher,
	})

	orch, err := orchestrator.New(llmClient, llmClient, registry, orchestrator.Config{
		ToolTimeout: appCfg.ToolTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("initialize orchestrator")
	}

	store := statex.NewStore()
	serverCfg := configx.MustNew[httpserver.Config]("SERVER")
	server, err := httpserver.New(*serverCfg, store, orch)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize http server")
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}

func buildCatalog(dsn string) contractx.Catalog {
	if strings.TrimSpace(dsn) == "" {
		log.Info().Msg("no database dsn, using seeded in-memory catalog")
		return catalog.NewMemory()
	}
	return catalog.NewPostgres(dsn)
}

func buildSearcher(embedder contractx.Embedder) contractx.VectorSearcher {
	cfg, err := configx.New[search.Config]("QDRANT")
	if err != nil || strings.TrimSpace(cfg.URL) == "" {
		log.Info().Msg("no qdrant url, semantic search disabled")
		return nil
	}
	searcher, err := search.New(*cfg, embedder)
	if err != nil {
		log.Warn().Err(err).Msg("qdrant unavailable, semantic search disabled")
		return nil
	}
	return searcher
}

func buildWeather() contractx.WeatherService {
	cfg, err := configx.New[weather.Config]("WEATHER")
	if err != nil {
		log.Warn().Err(err).Msg("weather config invalid, weather disabled")
		return nil
	}
	client, err := weather.NewClient(*cfg)
	if err != nil {
		log.Warn().Err(err).Msg("weather unavailable")
		return nil
	}
	return client
}

func buildMailer() contractx.Mailer {
	cfg, err := configx.New[mailer.Config]("MAILER")
	if err != nil || strings.TrimSpace(cfg.APIKey) == "" {
		log.Info().Msg("no mailer api key, human handoff email disabled")
		return nil
	}
	client, err := mailer.NewClient(*cfg)
	if err != nil {
		log.Warn().Err(err).Msg("mailer unavailable")
		return nil
	}
	return client
}
