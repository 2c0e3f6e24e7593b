package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpserver "github.com/mandatedisrael/basefly/internal/adapters/http_server"
	"github.com/mandatedisrael/basefly/internal/app"
	"github.com/mandatedisrael/basefly/internal/domain"
)

// scripted collaborators so the whole service can sit behind the router
type scriptedModel struct {
	plan, summary string
}

func (m scriptedModel) Complete(ctx context.Context, c domain.Completion) (string, error) {
	if c.System != "" {
		return m.summary, nil
	}
	return m.plan, nil
}

type scriptedProvider struct{ offers []domain.Offer }

func (p scriptedProvider) Search(ctx context.Context, q domain.FlightQuery) ([]domain.Offer, error) {
	return p.offers, nil
}

type noDirectory struct{}

func (noDirectory) Lookup(code string) (domain.AirportInfo, bool) {
	return domain.AirportInfo{}, false
}

func newTestServer(plan string) *httptest.Server {
	offers := []domain.Offer{{
		ID:    "1",
		Price: domain.Price{Total: "250.00", Currency: "USD"},
		Itineraries: []domain.Itinerary{
			{Segments: []domain.Segment{{CarrierCode: "AA", DepartureAt: "2026-09-07T08:15:00"}}},
		},
	}}
	svc := app.NewSearchService(
		scriptedModel{plan: plan, summary: "Found you a flight."},
		scriptedProvider{offers: offers},
		noDirectory{},
		nil,
		app.DefaultConfig(),
	)

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{S: svc})
	return httptest.NewServer(srv.Mux())
}

func TestSearchFlights_OK(t *testing.T) {
	ts := newTestServer(`{"originLocationCode":"JFK","destinationLocationCode":"LAX"}`)
	defer ts.Close()

	body := `{"text":"flight from JFK to LAX","context":{"conversationId":"room-1","userId":"u-1"}}`
	resp, err := http.Post(ts.URL+"/v1/flights/search", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var res app.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Success || res.Text != "Found you a flight." {
		t.Fatalf("result: %+v", res)
	}
	if res.Data == nil || len(res.Data.Offers) != 1 {
		t.Fatalf("data: %+v", res.Data)
	}
}

func TestSearchFlights_PipelineFailureIsStill200(t *testing.T) {
	// missing origin: the plan is rejected, but the HTTP contract stays 200
	ts := newTestServer(`{"destinationLocationCode":"LAX"}`)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/flights/search", "application/json",
		strings.NewReader(`{"text":"take me to LA"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var res app.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Success || res.Code != app.CodeInvalidPlan {
		t.Fatalf("result: %+v", res)
	}
}

func TestSearchFlights_BadRequests(t *testing.T) {
	ts := newTestServer(`{}`)
	defer ts.Close()

	cases := []struct {
		name string
		body string
	}{
		{"not json", "not json at all"},
		{"empty text", `{"text":"  "}`},
		{"missing text", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/flights/search", "application/json", strings.NewReader(tc.body))
			if err != nil {
				t.Fatalf("post: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != 400 {
				t.Fatalf("status %d", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
				t.Fatalf("content type %q", ct)
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(`{}`)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("status %d", resp.StatusCode)
	}
}
