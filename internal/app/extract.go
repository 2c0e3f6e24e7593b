package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mandatedisrael/basefly/internal/domain"
)

// RawQuery is the untyped candidate object pulled out of model text,
// before schema validation.
type RawQuery map[string]any

var ErrNoObject = errors.New("no JSON object in model output")

// ExtractQuery finds the outermost {...} block in raw model text and parses
// it, tolerating surrounding prose. It never substitutes anything on
// failure; the caller decides whether to fall back to DefaultQuery.
func ExtractQuery(text string) (RawQuery, error) {
	s := strings.TrimSpace(text)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, ErrNoObject
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s[start:end+1]), &m); err != nil {
		return nil, fmt.Errorf("parse flight plan: %w", err)
	}
	return RawQuery(m), nil
}

// DefaultQuery is the fixed fallback plan used when the model's output is
// unusable: a generic one-adult economy itinerary with no dates, so the
// pipeline degrades instead of aborting the conversation.
func DefaultQuery() RawQuery {
	return RawQuery{
		"originLocationCode":      "JFK",
		"destinationLocationCode": "LAX",
		"adults":                  1,
		"travelClass":             "ECONOMY",
	}
}

// Canonicalize uppercases the location codes and cabin class so that the
// schema enum and downstream comparisons see one spelling. Returns a copy;
// the input map is not mutated.
func Canonicalize(q RawQuery) RawQuery {
	out := make(RawQuery, len(q))
	for k, v := range q {
		out[k] = v
	}
	for _, k := range []string{"originLocationCode", "destinationLocationCode", "travelClass"} {
		if s, ok := out[k].(string); ok {
			out[k] = strings.ToUpper(strings.TrimSpace(s))
		}
	}
	return out
}

// DecodeQuery maps a validated candidate onto the typed query, applying the
// documented defaults (one adult, economy).
func DecodeQuery(q RawQuery) domain.FlightQuery {
	fq := domain.FlightQuery{
		Origin:      str(q, "originLocationCode"),
		Destination: str(q, "destinationLocationCode"),
		Adults:      1,
		TravelClass: domain.CabinEconomy,
		DepartureWindow: domain.TimeWindow{
			After:  str(q, "departure_flight_departure_time_after"),
			Before: str(q, "departure_flight_departure_time_before"),
		},
		ReturnWindow: domain.TimeWindow{
			After:  str(q, "return_flight_departure_time_after"),
			Before: str(q, "return_flight_departure_time_before"),
		},
	}
	if s := str(q, "departureDate"); s != "" {
		fq.DepartureDate = s
	}
	if s := str(q, "returnDate"); s != "" {
		fq.ReturnDate = s
	}
	if n, ok := num(q, "adults"); ok && n >= 1 {
		fq.Adults = n
	}
	if c := domain.CabinClass(str(q, "travelClass")); c.Valid() {
		fq.TravelClass = c
	}
	return fq
}

func str(q RawQuery, key string) string {
	if s, ok := q[key].(string); ok {
		return s
	}
	return ""
}

// num accepts both json.Unmarshal's float64 and literal ints (tests,
// hand-built defaults).
func num(q RawQuery, key string) (int, bool) {
	switch v := q[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}
