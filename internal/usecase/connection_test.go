package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightwatch-service/internal/domain/entity"
)

var connNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func legSnapshot(key, ident, origin, dest string, dep, arr time.Time) *entity.FlightSnapshot {
	return &entity.FlightSnapshot{
		FlightKey:    key,
		Ident:        ident,
		Origin:       entity.Airport{Code: origin},
		Destination:  entity.Airport{Code: dest},
		ScheduledOut: tp(dep),
		ScheduledIn:  tp(arr),
	}
}

func TestAnalyzeConnections_PairsConsecutiveLegs(t *testing.T) {
	first := legSnapshot("UA100:2026-09-01", "UA100", "SFO", "ORD",
		connNow.Add(2*time.Hour), connNow.Add(6*time.Hour))
	second := legSnapshot("UA200:2026-09-01", "UA200", "ORD", "JFK",
		connNow.Add(6*time.Hour+45*time.Minute), connNow.Add(9*time.Hour))

	// Order in must not matter; sorting is by planned departure.
	conns := AnalyzeConnections([]*entity.FlightSnapshot{second, first})

	require.Len(t, conns, 1)
	c := conns[0]
	assert.Equal(t, "UA100:2026-09-01", c.FromKey)
	assert.Equal(t, "UA200:2026-09-01", c.ToKey)
	assert.Equal(t, "ORD", c.Airport)
	assert.Equal(t, 45, c.Minutes)
	assert.Equal(t, "SFO", c.FromOrigin)
	assert.Equal(t, "JFK", c.ToDestination)
}

func TestAnalyzeConnections_Filters(t *testing.T) {
	t.Run("airport mismatch", func(t *testing.T) {
		first := legSnapshot("a", "UA100", "SFO", "ORD", connNow, connNow.Add(4*time.Hour))
		second := legSnapshot("b", "UA200", "DEN", "JFK", connNow.Add(5*time.Hour), connNow.Add(8*time.Hour))
		assert.Empty(t, AnalyzeConnections([]*entity.FlightSnapshot{first, second}))
	})

	t.Run("layover exceeds a day", func(t *testing.T) {
		first := legSnapshot("a", "UA100", "SFO", "ORD", connNow, connNow.Add(4*time.Hour))
		second := legSnapshot("b", "UA200", "ORD", "JFK", connNow.Add(30*time.Hour), connNow.Add(33*time.Hour))
		assert.Empty(t, AnalyzeConnections([]*entity.FlightSnapshot{first, second}))
	})

	t.Run("second leg departs before first lands", func(t *testing.T) {
		first := legSnapshot("a", "UA100", "SFO", "ORD", connNow, connNow.Add(4*time.Hour))
		second := legSnapshot("b", "UA200", "ORD", "JFK", connNow.Add(3*time.Hour), connNow.Add(6*time.Hour))
		assert.Empty(t, AnalyzeConnections([]*entity.FlightSnapshot{first, second}))
	})

	t.Run("no departure time drops the leg", func(t *testing.T) {
		first := legSnapshot("a", "UA100", "SFO", "ORD", connNow, connNow.Add(4*time.Hour))
		second := &entity.FlightSnapshot{
			FlightKey:   "b",
			Ident:       "UA200",
			Origin:      entity.Airport{Code: "ORD"},
			Destination: entity.Airport{Code: "JFK"},
		}
		assert.Empty(t, AnalyzeConnections([]*entity.FlightSnapshot{first, second}))
	})
}

func TestAnalyzeConnections_UsesEstimatesOverSchedule(t *testing.T) {
	first := legSnapshot("a", "UA100", "SFO", "ORD", connNow, connNow.Add(4*time.Hour))
	// Estimated arrival slipped an hour past schedule; layover shrinks with it.
	first.EstimatedIn = tp(connNow.Add(5 * time.Hour))
	second := legSnapshot("b", "UA200", "ORD", "JFK", connNow.Add(5*time.Hour+40*time.Minute), connNow.Add(9*time.Hour))

	conns := AnalyzeConnections([]*entity.FlightSnapshot{first, second})

	require.Len(t, conns, 1)
	assert.Equal(t, 40, conns[0].Minutes)
	assert.Equal(t, entity.RiskModerate, conns[0].Risk)
}

func TestAnalyzeConnections_TerminalChange(t *testing.T) {
	first := legSnapshot("a", "UA100", "SFO", "ORD", connNow, connNow.Add(4*time.Hour))
	first.TerminalDestination = "1"
	second := legSnapshot("b", "UA200", "ORD", "JFK", connNow.Add(4*time.Hour+50*time.Minute), connNow.Add(8*time.Hour))
	second.TerminalOrigin = "5"

	conns := AnalyzeConnections([]*entity.FlightSnapshot{first, second})

	require.Len(t, conns, 1)
	assert.True(t, conns[0].TerminalChange)
	assert.Equal(t, entity.RiskTight, conns[0].Risk)
}

func TestRiskTier(t *testing.T) {
	testCases := []struct {
		name           string
		minutes        int
		terminalChange bool
		expected       entity.RiskTier
	}{
		{"critical regardless of terminal", 25, false, entity.RiskCritical},
		{"under an hour with terminal change", 45, true, entity.RiskTight},
		{"under an hour same terminal", 45, false, entity.RiskModerate},
		{"advisory band with terminal change", 75, true, entity.RiskModerate},
		{"advisory band same terminal", 75, false, entity.RiskSafe},
		{"long layover", 120, true, entity.RiskSafe},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, riskTier(tc.minutes, tc.terminalChange))
		})
	}
}

func TestRelevantConnection(t *testing.T) {
	conns := []entity.Connection{
		{FromKey: "a", ToKey: "b"},
		{FromKey: "b", ToKey: "c"},
	}

	t.Run("arriving leg preferred", func(t *testing.T) {
		// Flight b sits on both sides; the connection it lands into wins.
		c := RelevantConnection(conns, "b")
		require.NotNil(t, c)
		assert.Equal(t, "b", c.FromKey)
		assert.Equal(t, "c", c.ToKey)
	})

	t.Run("departing leg as fallback", func(t *testing.T) {
		c := RelevantConnection(conns, "c")
		require.NotNil(t, c)
		assert.Equal(t, "b", c.FromKey)
	})

	t.Run("uninvolved flight", func(t *testing.T) {
		assert.Nil(t, RelevantConnection(conns, "z"))
	})
}
