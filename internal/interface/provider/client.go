package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"

	"golang.org/x/time/rate"
)

// Client is the flight-data provider HTTP client. Responses are cached
// briefly so overlapping ticks for the same flight don't double-fetch, and
// all outbound calls pass through a shared rate limiter.
type Client struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	limiter   *rate.Limiter
	cache     repository.Cache
	cacheTTL  time.Duration
	airlines  repository.AirlineRepository
	timezones repository.TimezoneRepository
	metrics   *metrics.Metrics
	logger    logger.Logger
}

// NewClient creates a new provider client
func NewClient(
	baseURL, apiKey string,
	rps float64, burst int,
	cache repository.Cache,
	cacheTTL time.Duration,
	airlines repository.AirlineRepository,
	timezones repository.TimezoneRepository,
	m *metrics.Metrics,
	logger logger.Logger,
) *Client {
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 30 * time.Second},
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		cache:     cache,
		cacheTTL:  cacheTTL,
		airlines:  airlines,
		timezones: timezones,
		metrics:   m,
		logger:    logger,
	}
}

// FetchByIdent looks a flight up by public identifier and date. When the
// primary identifier yields nothing, the carrier prefix is mapped to its
// ICAO alternate through the airline reference table and the lookup retried
// once before giving up.
func (c *Client) FetchByIdent(ctx context.Context, ident, date string) (*entity.FlightSnapshot, error) {
	raw, err := c.lookupIdent(ctx, ident, date)
	if errors.Is(err, repository.ErrFlightNotFound) {
		alt, ok := c.alternateIdent(ctx, ident)
		if !ok {
			return nil, repository.ErrFlightNotFound
		}
		c.logger.Debug("Retrying provider lookup with alternate identifier",
			"ident", ident, "alternate", alt)
		raw, err = c.lookupIdent(ctx, alt, date)
	}
	if err != nil {
		return nil, err
	}

	snapshot := normalizeFlight(raw, ident, date)
	c.backfillAirports(ctx, snapshot)
	return snapshot, nil
}

// FetchByFaFlightID looks a flight up by the provider's unique tracking id.
func (c *Client) FetchByFaFlightID(ctx context.Context, faFlightID string) (*entity.FlightSnapshot, error) {
	path := fmt.Sprintf("/flights/%s", url.PathEscape(faFlightID))
	raw, err := c.lookup(ctx, "provider:id:"+faFlightID, path)
	if err != nil {
		return nil, err
	}

	date := ""
	if raw.ScheduledOut != nil {
		date = raw.ScheduledOut.UTC().Format("2006-01-02")
	}
	snapshot := normalizeFlight(raw, raw.Ident, date)
	c.backfillAirports(ctx, snapshot)
	return snapshot, nil
}

func (c *Client) lookupIdent(ctx context.Context, ident, date string) (*rawFlight, error) {
	end, err := nextDay(date)
	if err != nil {
		return nil, fmt.Errorf("bad flight date %q: %w", date, err)
	}
	path := fmt.Sprintf("/flights/%s?start=%s&end=%s", url.PathEscape(ident), date, end)
	return c.lookup(ctx, fmt.Sprintf("provider:%s:%s", ident, date), path)
}

// lookup fetches one provider path, consulting the response cache first.
// The raw body is cached even for successful lookups so concurrent ticks
// share one upstream call.
func (c *Client) lookup(ctx context.Context, cacheKey, path string) (*rawFlight, error) {
	body, hit, err := c.cache.Get(ctx, cacheKey)
	if err != nil {
		c.logger.Warn("Provider cache read failed", "key", cacheKey, "error", err)
	}

	if !hit {
		body, err = c.get(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(ctx, cacheKey, body, c.cacheTTL); err != nil {
			c.logger.Warn("Provider cache write failed", "key", cacheKey, "error", err)
		}
	}

	var parsed flightsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.metrics.ProviderRequests.WithLabelValues("malformed").Inc()
		return nil, fmt.Errorf("malformed provider response: %w", err)
	}
	if len(parsed.Flights) == 0 {
		return nil, repository.ErrFlightNotFound
	}

	// The first record is the primary flight for the requested window.
	return &parsed.Flights[0], nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.metrics.ProviderRequests.WithLabelValues("not_found").Inc()
		return nil, repository.ErrFlightNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		c.metrics.ProviderRequests.WithLabelValues("rate_limited").Inc()
		return nil, fmt.Errorf("provider rate limited")
	case resp.StatusCode != http.StatusOK:
		c.metrics.ProviderRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	c.metrics.ProviderRequests.WithLabelValues("ok").Inc()
	return io.ReadAll(resp.Body)
}

// alternateIdent maps UA123 to UAL123 via the airline reference table.
func (c *Client) alternateIdent(ctx context.Context, ident string) (string, bool) {
	prefix, number := splitIdent(ident)
	if prefix == "" || number == "" {
		return "", false
	}

	airline, err := c.airlines.GetByIataCode(ctx, prefix)
	if err != nil || airline.IcaoCode == "" || airline.IcaoCode == prefix {
		return "", false
	}
	return airline.IcaoCode + number, true
}

// splitIdent separates the leading carrier letters from the flight number.
func splitIdent(ident string) (string, string) {
	i := 0
	for i < len(ident) && unicode.IsLetter(rune(ident[i])) {
		i++
	}
	return ident[:i], ident[i:]
}

// backfillAirports fills city and timezone from the reference table when
// the provider omits them.
func (c *Client) backfillAirports(ctx context.Context, s *entity.FlightSnapshot) {
	fill := func(a *entity.Airport) {
		if a.Code == "" || (a.Timezone != "" && a.City != "") {
			return
		}
		tz, err := c.timezones.GetByAirportCode(ctx, a.Code)
		if err != nil {
			return
		}
		if a.Timezone == "" {
			a.Timezone = tz.TzName
		}
		if a.City == "" {
			a.City = tz.CityName
		}
	}
	fill(&s.Origin)
	fill(&s.Destination)
}

func nextDay(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02"), nil
}
