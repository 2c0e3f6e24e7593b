// Package amadeus is the offer-provider adapter over the Amadeus
// flight-offers-search API.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mandatedisrael/basefly/internal/adapters/httpx"
	"github.com/mandatedisrael/basefly/internal/adapters/observability"
	"github.com/mandatedisrael/basefly/internal/domain"
)

const (
	defaultBase = "https://test.api.amadeus.com"
	tokenKey    = "amadeus:token"
	maxOffers   = 20
)

var (
	ErrUnauthorized = errors.New("amadeus: unauthorized")
	ErrBadRequest   = errors.New("amadeus: bad request")
)

type Client struct {
	base   string
	key    string
	secret string
	hc     *http.Client
	rl     *rate.Limiter
	cache  domain.Cache // optional; shares the auth token between instances

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// New builds the client. cache may be nil; the token is then held only in
// memory.
func New(base, key, secret string, rps int, cache domain.Cache) (*Client, error) {
	if key == "" || secret == "" {
		return nil, fmt.Errorf("API key and secret are required")
	}
	if base == "" {
		base = defaultBase
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		key:    key,
		secret: secret,
		hc:     &http.Client{Timeout: 20 * time.Second},
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
		cache:  cache,
	}, nil
}

// ---- auth ----

type cachedToken struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.tokenExp) {
		t := c.token
		c.mu.Unlock()
		return t, nil
	}
	c.mu.Unlock()

	if c.cache != nil {
		var ct cachedToken
		if ok, _ := c.cache.Get(ctx, tokenKey, &ct); ok && time.Now().Before(ct.ExpiresAt) {
			c.setToken(ct.AccessToken, ct.ExpiresAt)
			return ct.AccessToken, nil
		}
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.key},
		"client_secret": {c.secret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("amadeus", "oauth2_token", resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("amadeus: token status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("amadeus: decode token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("amadeus: empty access token")
	}

	// renew a minute early
	exp := time.Now().Add(time.Duration(tok.ExpiresIn-60) * time.Second)
	c.setToken(tok.AccessToken, exp)
	if c.cache != nil {
		ttl := int(time.Until(exp).Seconds())
		if ttl > 0 {
			_ = c.cache.Set(ctx, tokenKey, cachedToken{AccessToken: tok.AccessToken, ExpiresAt: exp}, ttl)
		}
	}
	return tok.AccessToken, nil
}

func (c *Client) setToken(token string, exp time.Time) {
	c.mu.Lock()
	c.token = token
	c.tokenExp = exp
	c.mu.Unlock()
}

func (c *Client) dropToken(ctx context.Context) {
	c.setToken("", time.Time{})
	if c.cache != nil {
		_ = c.cache.Del(ctx, tokenKey)
	}
}

// ---- search ----

// wire shapes of the flight-offers-search response
type offersResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Segments []struct {
				CarrierCode string `json:"carrierCode"`
				Departure   struct {
					At string `json:"at"`
				} `json:"departure"`
			} `json:"segments"`
		} `json:"itineraries"`
	} `json:"data"`
}

// Search runs one flight-offers-search call for the normalized query and
// maps the response onto domain offers. A stale token is dropped and
// refetched once; 429/5xx retry with backoff, honoring Retry-After.
func (c *Client) Search(ctx context.Context, q domain.FlightQuery) ([]domain.Offer, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"originLocationCode":      {q.Origin},
		"destinationLocationCode": {q.Destination},
		"departureDate":           {q.DepartureDate},
		"returnDate":              {q.ReturnDate},
		"adults":                  {strconv.Itoa(q.Adults)},
		"travelClass":             {string(q.TravelClass)},
		"max":                     {strconv.Itoa(maxOffers)},
	}
	endpoint := c.base + "/v2/shopping/flight-offers?" + params.Encode()

	var lastErr error
	refreshed := false
	for i := 0; i < 4; i++ {
		token, err := c.accessToken(ctx)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if i < 3 && httpx.SleepCtx(ctx, httpx.Backoff(i)) {
				continue
			}
			return nil, lastErr
		}
		observability.ObserveExternal("amadeus", "flight_offers", resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusOK:
			var out offersResponse
			err := json.NewDecoder(resp.Body).Decode(&out)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("amadeus: decode offers: %w", err)
			}
			return mapOffers(out), nil

		case resp.StatusCode == http.StatusUnauthorized:
			resp.Body.Close()
			if refreshed {
				return nil, ErrUnauthorized
			}
			// token likely expired server-side; refetch once
			refreshed = true
			c.dropToken(ctx)
			continue

		case resp.StatusCode == http.StatusBadRequest:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %s", ErrBadRequest, strings.TrimSpace(string(b)))

		case httpx.Retryable(resp.StatusCode):
			wait := httpx.RetryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = httpx.Backoff(i)
			}
			lastErr = fmt.Errorf("amadeus: remote %d", resp.StatusCode)
			if i < 3 && httpx.SleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("amadeus: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return nil, lastErr
}

func mapOffers(out offersResponse) []domain.Offer {
	offers := make([]domain.Offer, 0, len(out.Data))
	for _, d := range out.Data {
		o := domain.Offer{
			ID:    d.ID,
			Price: domain.Price{Total: d.Price.Total, Currency: d.Price.Currency},
		}
		for _, it := range d.Itineraries {
			itin := domain.Itinerary{Segments: make([]domain.Segment, 0, len(it.Segments))}
			for _, s := range it.Segments {
				itin.Segments = append(itin.Segments, domain.Segment{
					CarrierCode: s.CarrierCode,
					DepartureAt: s.Departure.At,
				})
			}
			o.Itineraries = append(o.Itineraries, itin)
		}
		offers = append(offers, o)
	}
	return offers
}
