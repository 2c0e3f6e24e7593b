package app

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// flightPlanSchema is the structural contract a candidate plan must meet
// before we spend a provider call on it. Dates and time bounds are only
// type-checked here; their values are repaired by NormalizeDates.
const flightPlanSchema = `{
  "type": "object",
  "required": ["originLocationCode", "destinationLocationCode"],
  "properties": {
    "originLocationCode":      {"type": "string", "minLength": 3},
    "destinationLocationCode": {"type": "string", "minLength": 3},
    "departureDate":           {"type": ["string", "null"]},
    "returnDate":              {"type": ["string", "null"]},
    "adults":                  {"type": "integer", "minimum": 1, "maximum": 9},
    "travelClass":             {"type": "string", "enum": ["ECONOMY", "PREMIUM_ECONOMY", "BUSINESS", "FIRST"]},
    "departure_flight_departure_time_after":  {"type": "string"},
    "departure_flight_departure_time_before": {"type": "string"},
    "return_flight_departure_time_after":     {"type": "string"},
    "return_flight_departure_time_before":    {"type": "string"}
  }
}`

var planSchema = mustSchema(flightPlanSchema)

func mustSchema(doc string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("flight plan schema: %v", err))
	}
	return s
}

type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string { return v.Field + ": " + v.Message }

type Violations []Violation

func (vs Violations) String() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}

// ValidatePlan evaluates the candidate against the declarative schema and
// returns the list of violations; an empty list means the plan is usable.
func ValidatePlan(q RawQuery) []Violation {
	res, err := planSchema.Validate(gojsonschema.NewGoLoader(map[string]any(q)))
	if err != nil {
		return []Violation{{Field: "(document)", Message: err.Error()}}
	}
	if res.Valid() {
		return nil
	}
	vs := make([]Violation, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		vs = append(vs, Violation{Field: e.Field(), Message: e.Description()})
	}
	return vs
}
