package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/mandatedisrael/basefly/internal/adapters/airports"
	"github.com/mandatedisrael/basefly/internal/adapters/amadeus"
	server "github.com/mandatedisrael/basefly/internal/adapters/http_server"
	"github.com/mandatedisrael/basefly/internal/adapters/llm"
	"github.com/mandatedisrael/basefly/internal/adapters/observability"
	redisad "github.com/mandatedisrael/basefly/internal/adapters/redis"
	"github.com/mandatedisrael/basefly/internal/app"
	"github.com/mandatedisrael/basefly/internal/shared"
	mysqlrepo "github.com/mandatedisrael/basefly/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "basefly-api")

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	recorder := mysqlrepo.New(db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := recorder.EnsureSchema(ctx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("schema setup failed")
	}
	cancel()
	log.Info().Msg("database connection ok")

	// collaborators
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	model, err := llm.New(cfg.LLMBase, cfg.LLMKey, cfg.LLMModel, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize model client")
	}
	provider, err := amadeus.New(cfg.AmadeusBase, cfg.AmadeusKey, cfg.AmadeusSecret, 5, cache)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize offer provider")
	}

	svc := app.NewSearchService(model, provider, airports.New(), recorder, app.Config{
		Order:            app.SortOrder(cfg.SortOrder),
		PlanMaxTokens:    cfg.PlanMaxTokens,
		SummaryMaxTokens: cfg.SummaryMaxTokens,
		Temperature:      cfg.Temperature,
	})

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
