package amadeus_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mandatedisrael/basefly/internal/adapters/amadeus"
	"github.com/mandatedisrael/basefly/internal/domain"
)

func writeToken(w http.ResponseWriter, token string) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": token,
		"expires_in":   1799,
	})
}

func writeOffers(w http.ResponseWriter) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": []map[string]any{
			{
				"id":    "1",
				"price": map[string]any{"total": "312.45", "currency": "USD"},
				"itineraries": []map[string]any{
					{"segments": []map[string]any{
						{"carrierCode": "AA", "departure": map[string]any{"at": "2026-09-07T08:15:00"}},
						{"carrierCode": "AA", "departure": map[string]any{"at": "2026-09-07T13:40:00"}},
					}},
					{"segments": []map[string]any{
						{"carrierCode": "DL", "departure": map[string]any{"at": "2026-09-14T17:05:00"}},
					}},
				},
			},
		},
	})
}

func testQuery() domain.FlightQuery {
	return domain.FlightQuery{
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureDate: "2026-09-07",
		ReturnDate:    "2026-09-14",
		Adults:        1,
		TravelClass:   domain.CabinEconomy,
	}
}

func TestClient_Search_MapsOffers(t *testing.T) {
	var tokenHits, searchHits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/security/oauth2/token":
			atomic.AddInt32(&tokenHits, 1)
			if r.FormValue("grant_type") != "client_credentials" || r.FormValue("client_id") != "key" {
				w.WriteHeader(400)
				return
			}
			writeToken(w, "tok-1")
		case "/v2/shopping/flight-offers":
			atomic.AddInt32(&searchHits, 1)
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				w.WriteHeader(401)
				return
			}
			q := r.URL.Query()
			if q.Get("originLocationCode") != "JFK" || q.Get("travelClass") != "ECONOMY" || q.Get("max") != "20" {
				w.WriteHeader(400)
				return
			}
			writeOffers(w)
		default:
			w.WriteHeader(404)
		}
	}))
	defer ts.Close()

	cl, err := amadeus.New(ts.URL, "key", "secret", 100, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	offers, err := cl.Search(ctx, testQuery())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("offers: %d", len(offers))
	}
	o := offers[0]
	if o.ID != "1" || o.Price.Total != "312.45" || o.Price.Currency != "USD" {
		t.Fatalf("offer: %+v", o)
	}
	if len(o.Itineraries) != 2 || len(o.Itineraries[0].Segments) != 2 {
		t.Fatalf("itineraries: %+v", o.Itineraries)
	}
	if o.Itineraries[1].Segments[0].CarrierCode != "DL" {
		t.Fatalf("return segment: %+v", o.Itineraries[1].Segments[0])
	}
}

func TestClient_Search_ReusesToken(t *testing.T) {
	var tokenHits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/security/oauth2/token":
			atomic.AddInt32(&tokenHits, 1)
			writeToken(w, "tok-1")
		default:
			writeOffers(w)
		}
	}))
	defer ts.Close()

	cl, _ := amadeus.New(ts.URL, "key", "secret", 100, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		if _, err := cl.Search(ctx, testQuery()); err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
	}
	if n := atomic.LoadInt32(&tokenHits); n != 1 {
		t.Fatalf("expected a single token fetch, got %d", n)
	}
}

func TestClient_Search_RefreshesStaleToken(t *testing.T) {
	var tokenHits, searchHits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/security/oauth2/token":
			n := atomic.AddInt32(&tokenHits, 1)
			if n == 1 {
				writeToken(w, "stale")
			} else {
				writeToken(w, "fresh")
			}
		default:
			atomic.AddInt32(&searchHits, 1)
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(401)
				return
			}
			writeOffers(w)
		}
	}))
	defer ts.Close()

	cl, _ := amadeus.New(ts.URL, "key", "secret", 100, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	offers, err := cl.Search(ctx, testQuery())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("offers: %d", len(offers))
	}
	if atomic.LoadInt32(&tokenHits) != 2 {
		t.Fatalf("expected token refetch after 401, got %d fetches", tokenHits)
	}
}

func TestClient_Search_PersistentUnauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			writeToken(w, "tok")
			return
		}
		w.WriteHeader(401)
	}))
	defer ts.Close()

	cl, _ := amadeus.New(ts.URL, "key", "secret", 100, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := cl.Search(ctx, testQuery())
	if !errors.Is(err, amadeus.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_Search_BadRequest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			writeToken(w, "tok")
			return
		}
		w.WriteHeader(400)
	}))
	defer ts.Close()

	cl, _ := amadeus.New(ts.URL, "key", "secret", 100, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := cl.Search(ctx, testQuery())
	if !errors.Is(err, amadeus.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestClient_Search_RetriesThenSuccess(t *testing.T) {
	var searchHits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			writeToken(w, "tok")
			return
		}
		if atomic.AddInt32(&searchHits, 1) < 3 {
			w.WriteHeader(503)
			return
		}
		writeOffers(w)
	}))
	defer ts.Close()

	cl, _ := amadeus.New(ts.URL, "key", "secret", 100, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	offers, err := cl.Search(ctx, testQuery())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("offers: %d", len(offers))
	}
	if atomic.LoadInt32(&searchHits) < 3 {
		t.Fatalf("expected retries, got %d calls", searchHits)
	}
}

func TestNew_RequiresCredentials(t *testing.T) {
	if _, err := amadeus.New("", "key", "", 0, nil); err == nil {
		t.Fatalf("expected error for missing secret")
	}
	if _, err := amadeus.New("", "", "secret", 0, nil); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

// memCache is a map-backed stand-in for the redis adapter.
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Del(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func TestClient_Search_SharesTokenThroughCache(t *testing.T) {
	var tokenHits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			atomic.AddInt32(&tokenHits, 1)
			writeToken(w, "tok")
			return
		}
		writeOffers(w)
	}))
	defer ts.Close()

	cache := newMemCache()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	first, _ := amadeus.New(ts.URL, "key", "secret", 100, cache)
	if _, err := first.Search(ctx, testQuery()); err != nil {
		t.Fatalf("first search: %v", err)
	}

	// a second instance finds the token in the cache
	second, _ := amadeus.New(ts.URL, "key", "secret", 100, cache)
	if _, err := second.Search(ctx, testQuery()); err != nil {
		t.Fatalf("second search: %v", err)
	}
	if n := atomic.LoadInt32(&tokenHits); n != 1 {
		t.Fatalf("expected the cached token to be reused, got %d fetches", n)
	}
}
