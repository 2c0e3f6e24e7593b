package domain

import "context"

// Completion is one bounded model invocation: prompt in, text out.
type Completion struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type ModelClient interface {
	Complete(ctx context.Context, c Completion) (string, error)
}

type OfferProvider interface {
	Search(ctx context.Context, q FlightQuery) ([]Offer, error)
}

// AirportDirectory resolves location codes for display. Pure, synchronous;
// the only failure mode is "not found".
type AirportDirectory interface {
	Lookup(code string) (AirportInfo, bool)
}

// FlightRecord is the "flight_data" persistence payload: the normalized
// query plus everything the provider returned.
type FlightRecord struct {
	ID         string
	Context    RequestContext
	TicketType string
	Query      FlightQuery
	Offers     []Offer
}

// MessageRecord is the conversational summary persistence payload.
type MessageRecord struct {
	ID       string
	SearchID string
	Context  RequestContext
	Text     string
	Source   string
}

// SearchRecorder persists pipeline outcomes. All calls are best-effort from
// the pipeline's point of view: errors are logged by the caller, never
// propagated to the user.
type SearchRecorder interface {
	SaveFlightData(ctx context.Context, rec FlightRecord) error
	SaveMessage(ctx context.Context, msg MessageRecord) error
	LogFailure(ctx context.Context, searchID, code, detail string) error
}

// Cache is a small key/value store with TTL. Used by the provider adapter
// to share its auth token between instances.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
