package domain

import "strconv"

type CabinClass string

const (
	CabinEconomy        CabinClass = "ECONOMY"
	CabinPremiumEconomy CabinClass = "PREMIUM_ECONOMY"
	CabinBusiness       CabinClass = "BUSINESS"
	CabinFirst          CabinClass = "FIRST"
)

func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

// TimeWindow bounds a departure to a clock-time range ("HH:MM").
// Either side may be empty, meaning unbounded.
type TimeWindow struct {
	After  string `json:"after,omitempty"`
	Before string `json:"before,omitempty"`
}

func (w TimeWindow) IsZero() bool { return w.After == "" && w.Before == "" }

// FlightQuery is the structured intent extracted from the user's message.
// Dates are ISO calendar dates (YYYY-MM-DD); both are guaranteed non-empty
// and future-or-today after normalization.
type FlightQuery struct {
	Origin          string     `json:"originLocationCode"`
	Destination     string     `json:"destinationLocationCode"`
	DepartureDate   string     `json:"departureDate,omitempty"`
	ReturnDate      string     `json:"returnDate,omitempty"`
	Adults          int        `json:"adults"`
	TravelClass     CabinClass `json:"travelClass"`
	DepartureWindow TimeWindow `json:"departureWindow"`
	ReturnWindow    TimeWindow `json:"returnWindow"`
}

type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// Value parses the decimal total for comparisons; malformed totals sort as 0.
func (p Price) Value() float64 {
	v, _ := strconv.ParseFloat(p.Total, 64)
	return v
}

type Segment struct {
	CarrierCode string `json:"carrierCode"`
	DepartureAt string `json:"departureAt"`
}

// Itinerary is one directional journey (outbound or return) with at least
// one segment.
type Itinerary struct {
	Segments []Segment `json:"segments"`
}

// Offer is one priced itinerary candidate owned by the provider response;
// the pipeline only reads and reorders offers.
type Offer struct {
	ID          string      `json:"id,omitempty"`
	Price       Price       `json:"price"`
	Itineraries []Itinerary `json:"itineraries"`
}

// RankedSelection is the bounded, ordered subset of offers chosen for
// presentation. Derived data, not independently persisted.
type RankedSelection struct {
	Offers []Offer
}

func (s RankedSelection) Top() (Offer, bool) {
	if len(s.Offers) == 0 {
		return Offer{}, false
	}
	return s.Offers[0], true
}

// AirportInfo is a read-only lookup-table record used for display.
type AirportInfo struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// RequestContext carries the hosting agent's conversation identifiers
// through the pipeline into recorded side effects.
type RequestContext struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
}
