// searcher runs the flight-search pipeline over a batch of free-text
// requests (one per line on stdin, or as arguments) outside the
// conversational host. Useful for smoke-testing prompts and provider
// credentials.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/mandatedisrael/basefly/internal/adapters/airports"
	"github.com/mandatedisrael/basefly/internal/adapters/amadeus"
	"github.com/mandatedisrael/basefly/internal/adapters/llm"
	"github.com/mandatedisrael/basefly/internal/adapters/observability"
	redisad "github.com/mandatedisrael/basefly/internal/adapters/redis"
	"github.com/mandatedisrael/basefly/internal/app"
	"github.com/mandatedisrael/basefly/internal/domain"
	"github.com/mandatedisrael/basefly/internal/shared"
	mysqlrepo "github.com/mandatedisrael/basefly/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "basefly-searcher")

	requests := os.Args[1:]
	if len(requests) == 0 {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if line := sc.Text(); line != "" {
				requests = append(requests, line)
			}
		}
	}
	if len(requests) == 0 {
		log.Fatal().Msg("no requests given (arguments or stdin lines)")
	}

	log.Info().
		Int("requests", len(requests)).
		Int("workers", cfg.Workers).
		Msg("searcher starting")

	// The recorder is optional here: without a reachable database the
	// pipeline still runs, it just doesn't persist.
	var recorder domain.SearchRecorder
	if db, err := sql.Open("mysql", cfg.MySQLDSN); err == nil && db.Ping() == nil {
		repo := mysqlrepo.New(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("schema setup failed, recording disabled")
		} else {
			recorder = repo
		}
	} else {
		log.Warn().Msg("database unavailable, recording disabled")
	}

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

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for i, text := range requests {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(n int, userText string) {
			defer wg.Done()
			defer sem.Release(1)

			runCtx, cancel := context.WithTimeout(ctx, cfg.SearchTimeout)
			defer cancel()

			res := svc.Handle(runCtx, userText, domain.RequestContext{UserID: "searcher"})
			if !res.Success {
				log.Warn().Int("request", n).Str("code", res.Code).Msg("search failed")
				return
			}
			fmt.Printf("--- request %d: %s\n%s\n", n, userText, res.Text)
		}(i+1, text)
	}

	wg.Wait()
	log.Info().Msg("all searches completed")
}
