package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mandatedisrael/basefly/internal/adapters/observability"
	"github.com/mandatedisrael/basefly/internal/domain"
)

// Fixed user-facing messages. Raw error detail never reaches the user; it
// travels in logs and in the failure audit record.
const (
	msgInvalidPlan  = "Invalid flight plan provided."
	msgNoOffers     = "I couldn't find any flights for that itinerary. Try different dates or airports."
	msgSearchFailed = "Failed to complete your flight search. Please try again."
)

const (
	CodeInvalidPlan  = "INVALID_FLIGHT_PLAN"
	CodeNoOffers     = "NO_OFFERS"
	CodeSearchFailed = "SEARCH_FAILED"
)

// Config replaces the ambient toggles of earlier revisions: everything the
// pipeline varies on comes in through the constructor.
type Config struct {
	Order            SortOrder
	PlanMaxTokens    int
	SummaryMaxTokens int
	Temperature      float64
}

func DefaultConfig() Config {
	return Config{
		Order:            PriceAscending,
		PlanMaxTokens:    500,
		SummaryMaxTokens: 500,
		Temperature:      0.7,
	}
}

// SearchService runs the interpretation-normalization-ranking pipeline:
// model plan extraction, schema validation, date repair, provider search,
// price ranking, model summarization, best-effort persistence.
type SearchService struct {
	model    domain.ModelClient
	provider domain.OfferProvider
	airports domain.AirportDirectory
	recorder domain.SearchRecorder
	cfg      Config
	now      func() time.Time
}

func NewSearchService(m domain.ModelClient, p domain.OfferProvider, a domain.AirportDirectory, r domain.SearchRecorder, cfg Config) *SearchService {
	if cfg.PlanMaxTokens <= 0 {
		cfg.PlanMaxTokens = DefaultConfig().PlanMaxTokens
	}
	if cfg.SummaryMaxTokens <= 0 {
		cfg.SummaryMaxTokens = DefaultConfig().SummaryMaxTokens
	}
	return &SearchService{model: m, provider: p, airports: a, recorder: r, cfg: cfg, now: time.Now}
}

// Result is what the hosting agent gets back. Success=false always carries
// one of the fixed messages in Text and a machine code in Code.
type Result struct {
	Success bool        `json:"success"`
	Text    string      `json:"text"`
	Code    string      `json:"code,omitempty"`
	Data    *ResultData `json:"data,omitempty"`
}

type ResultData struct {
	Query              domain.FlightQuery  `json:"query"`
	Offers             []domain.Offer      `json:"offers"`
	OriginAirport      *domain.AirportInfo `json:"originAirport,omitempty"`
	DestinationAirport *domain.AirportInfo `json:"destinationAirport,omitempty"`
}

// Handle runs one request through the whole pipeline. It never panics and
// never returns an error: every failure mode maps onto a Result.
func (s *SearchService) Handle(ctx context.Context, userText string, rc domain.RequestContext) Result {
	searchID := uuid.NewString()
	l := log.With().Str("searchId", searchID).Logger()

	planText, err := s.model.Complete(ctx, domain.Completion{
		Prompt:      BuildPlanPrompt(userText),
		MaxTokens:   s.cfg.PlanMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return s.fail(ctx, l, searchID, fmt.Errorf("plan completion: %w", err))
	}

	raw, err := ExtractQuery(planText)
	if err != nil {
		// Fail-soft: a confusing message degrades to the generic
		// itinerary instead of aborting the conversation.
		l.Warn().Err(err).Msg("plan extraction failed, using default query")
		raw = DefaultQuery()
	}
	raw = Canonicalize(raw)

	if vs := ValidatePlan(raw); len(vs) > 0 {
		l.Warn().Any("violations", vs).Msg("flight plan rejected")
		observability.ObservePipeline("invalid_plan")
		s.bestEffort(l, "log_failure", func() error {
			return s.recorder.LogFailure(ctx, searchID, CodeInvalidPlan, Violations(vs).String())
		})
		return Result{Success: false, Text: msgInvalidPlan, Code: CodeInvalidPlan}
	}

	query := DecodeQuery(raw)
	query.DepartureDate, query.ReturnDate = NormalizeDates(query.DepartureDate, query.ReturnDate, s.now())

	offers, err := s.provider.Search(ctx, query)
	if err != nil {
		return s.fail(ctx, l, searchID, fmt.Errorf("offer search: %w", err))
	}

	origin := s.lookup(query.Origin)
	destination := s.lookup(query.Destination)

	sel, err := SelectOffers(offers, s.cfg.Order)
	if errors.Is(err, domain.ErrNoOffers) {
		l.Info().Str("origin", query.Origin).Str("destination", query.Destination).Msg("provider returned no offers")
		observability.ObservePipeline("no_offers")
		s.bestEffort(l, "log_failure", func() error {
			return s.recorder.LogFailure(ctx, searchID, CodeNoOffers, query.Origin+"-"+query.Destination)
		})
		return Result{
			Success: false,
			Text:    msgNoOffers,
			Code:    CodeNoOffers,
			Data:    &ResultData{Query: query, Offers: []domain.Offer{}, OriginAirport: origin, DestinationAirport: destination},
		}
	}

	s.bestEffort(l, "save_flight_data", func() error {
		return s.recorder.SaveFlightData(ctx, domain.FlightRecord{
			ID:         searchID,
			Context:    rc,
			TicketType: "round_trip",
			Query:      query,
			Offers:     sel.Offers,
		})
	})

	summary, err := s.model.Complete(ctx, domain.Completion{
		System:      summarySystem,
		Prompt:      BuildDigest(sel),
		MaxTokens:   s.cfg.SummaryMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return s.fail(ctx, l, searchID, fmt.Errorf("summary completion: %w", err))
	}

	s.bestEffort(l, "save_message", func() error {
		return s.recorder.SaveMessage(ctx, domain.MessageRecord{
			ID:       uuid.NewString(),
			SearchID: searchID,
			Context:  rc,
			Text:     summary,
			Source:   "agent_action",
		})
	})

	l.Info().
		Str("origin", query.Origin).
		Str("destination", query.Destination).
		Str("departure", query.DepartureDate).
		Str("return", query.ReturnDate).
		Msg("flight search completed")
	observability.ObservePipeline("ok")

	return Result{
		Success: true,
		Text:    summary,
		Data: &ResultData{
			Query:              query,
			Offers:             sel.Offers,
			OriginAirport:      origin,
			DestinationAirport: destination,
		},
	}
}

// fail is the collaborator-failure path: log the wrapped detail, audit it,
// surface only the fixed message.
func (s *SearchService) fail(ctx context.Context, l zerolog.Logger, searchID string, err error) Result {
	l.Error().Err(err).Msg("flight search failed")
	observability.ObservePipeline("failed")
	s.bestEffort(l, "log_failure", func() error {
		return s.recorder.LogFailure(ctx, searchID, CodeSearchFailed, err.Error())
	})
	return Result{Success: false, Text: msgSearchFailed, Code: CodeSearchFailed}
}

// bestEffort runs a persistence call whose failure must never change the
// pipeline outcome; the error goes to the log and nowhere else.
func (s *SearchService) bestEffort(l zerolog.Logger, op string, fn func() error) {
	if s.recorder == nil {
		return
	}
	if err := fn(); err != nil {
		l.Warn().Err(err).Str("op", op).Msg("recorder call failed")
	}
}

func (s *SearchService) lookup(code string) *domain.AirportInfo {
	if s.airports == nil {
		return nil
	}
	info, ok := s.airports.Lookup(code)
	if !ok {
		return nil
	}
	return &info
}
