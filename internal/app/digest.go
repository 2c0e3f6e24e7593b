package app

import (
	"fmt"
	"strings"

	"github.com/mandatedisrael/basefly/internal/domain"
)

// flightPlanTemplate instructs the model to answer with nothing but the
// plan object; the field names and enum values here are the wire contract
// the extractor and schema expect.
const flightPlanTemplate = `
Extract flight information from the user's message and return ONLY a valid JSON object with the following structure:

{
  "originLocationCode": "3-letter IATA airport code for departure",
  "destinationLocationCode": "3-letter IATA airport code for arrival",
  "departureDate": "YYYY-MM-DD format (optional)",
  "returnDate": "YYYY-MM-DD format (optional, for round trips)",
  "adults": 1,
  "travelClass": "ECONOMY"
}

IMPORTANT:
- Return ONLY the JSON object, no other text
- Use common airport codes (JFK for New York, LHR for London, LAX for Los Angeles, etc.)
- If information is missing, use reasonable defaults
- Always include originLocationCode and destinationLocationCode
- For number of adults, default to 1 if not specified
- For travel class, use: "ECONOMY", "PREMIUM_ECONOMY", "BUSINESS", or "FIRST" (default to "ECONOMY")

User message: {{userMessage}}

JSON response:`

const summarySystem = "You are an AI travel agent named Basefly, help the user understand their flight options in an easy to consume way."

// BuildPlanPrompt substitutes the user's message into the extraction
// template.
func BuildPlanPrompt(userText string) string {
	return strings.ReplaceAll(flightPlanTemplate, "{{userMessage}}", userText)
}

// BuildDigest renders the selection into the fixed textual form fed to the
// summarization call: one line per segment, legs labeled Departing/Returning
// by position, price last.
func BuildDigest(sel domain.RankedSelection) string {
	var b strings.Builder
	for i, offer := range sel.Offers {
		flights := make([]string, 0, len(offer.Itineraries))
		for j, itin := range offer.Itineraries {
			label := "Departing"
			if j > 0 {
				label = "Returning"
			}
			segs := make([]string, 0, len(itin.Segments))
			for k, seg := range itin.Segments {
				segs = append(segs, fmt.Sprintf("Leg %d is on %s leaving at %s.", k+1, seg.CarrierCode, seg.DepartureAt))
			}
			flights = append(flights, fmt.Sprintf("%s flights: %s\n", label, strings.Join(segs, ".\n")))
		}
		fmt.Fprintf(&b, "option %d: %s\n price: %s %s", i+1, strings.Join(flights, ""), offer.Price.Total, offer.Price.Currency)
	}
	return b.String()
}
