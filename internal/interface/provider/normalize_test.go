package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"flightwatch-service/internal/domain/entity"
)

func TestPreferredCode(t *testing.T) {
	testCases := []struct {
		name     string
		airport  *rawAirport
		expected string
	}{
		{"iata wins", &rawAirport{Code: "KSFO", CodeIata: "SFO", CodeIcao: "KSFO"}, "SFO"},
		{"icao fallback", &rawAirport{Code: "KSFO", CodeIcao: "KSFO"}, "KSFO"},
		{"generic fallback", &rawAirport{Code: "X123"}, "X123"},
		{"nil airport", nil, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, preferredCode(tc.airport))
		})
	}
}

func TestNormalizeFlight(t *testing.T) {
	sched := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	raw := &rawFlight{
		Ident:             "UAL100",
		IdentIata:         "UA100",
		FaFlightID:        "UAL100-1756700000-airline-0500",
		Status:            "Scheduled",
		InboundFaFlightID: "UAL99-1756600000-airline-0400",
		Origin:            &rawAirport{CodeIata: "SFO", City: "San Francisco", Timezone: "America/Los_Angeles"},
		Destination:       &rawAirport{CodeIcao: "KJFK", City: "New York"},
		ScheduledOut:      &sched,
		GateOrigin:        "B22",
	}

	s := normalizeFlight(raw, "UA100", "2026-09-01")

	assert.Equal(t, "UA100:2026-09-01", s.FlightKey)
	assert.Equal(t, "UA100", s.Ident)
	assert.Equal(t, "2026-09-01", s.FlightDate)
	assert.Equal(t, entity.Airport{Code: "SFO", City: "San Francisco", Timezone: "America/Los_Angeles"}, s.Origin)
	assert.Equal(t, "KJFK", s.Destination.Code)
	assert.Equal(t, "UAL99-1756600000-airline-0400", s.InboundFaFlightID)
	assert.Equal(t, "B22", s.GateOrigin)
	assert.False(t, s.FetchedAt.IsZero())
}

func TestNormalizeFlight_IdentFallbacks(t *testing.T) {
	t.Run("provider ident when iata missing", func(t *testing.T) {
		s := normalizeFlight(&rawFlight{Ident: "UAL100"}, "UA100", "2026-09-01")
		assert.Equal(t, "UAL100", s.Ident)
		// The key stays on the requested ident regardless of display ident.
		assert.Equal(t, "UA100:2026-09-01", s.FlightKey)
	})

	t.Run("requested ident when provider sends none", func(t *testing.T) {
		s := normalizeFlight(&rawFlight{}, "UA100", "2026-09-01")
		assert.Equal(t, "UA100", s.Ident)
	})
}

func TestSplitIdent(t *testing.T) {
	testCases := []struct {
		ident  string
		prefix string
		number string
	}{
		{"UA100", "UA", "100"},
		{"UAL100", "UAL", "100"},
		{"100", "", "100"},
		{"UA", "UA", ""},
	}

	for _, tc := range testCases {
		prefix, number := splitIdent(tc.ident)
		assert.Equal(t, tc.prefix, prefix)
		assert.Equal(t, tc.number, number)
	}
}
