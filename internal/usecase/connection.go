package usecase

import (
	"sort"
	"time"

	"flightwatch-service/internal/domain/entity"
)

// maxLayover bounds what still counts as a same-trip connection.
const maxLayover = 24 * time.Hour

// Risk tier boundaries in connection minutes.
const (
	criticalBelowMin = 30
	tightBelowMin    = 60
	advisoryBelowMin = 90
)

// AnalyzeConnections derives the traveler's connections from their current
// flight set. Flights sort by planned departure (estimated falling back to
// scheduled); consecutive pairs connect when the earlier leg lands where the
// later leg departs within a day's layover.
func AnalyzeConnections(flights []*entity.FlightSnapshot) []entity.Connection {
	sorted := make([]*entity.FlightSnapshot, 0, len(flights))
	for _, f := range flights {
		if f != nil && f.PlannedDeparture() != nil {
			sorted = append(sorted, f)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PlannedDeparture().Before(*sorted[j].PlannedDeparture())
	})

	var connections []entity.Connection
	for i := 0; i+1 < len(sorted); i++ {
		from, to := sorted[i], sorted[i+1]

		if from.Destination.Code == "" || from.Destination.Code != to.Origin.Code {
			continue
		}
		arrival := from.BestArrival()
		if arrival == nil {
			continue
		}
		layover := to.PlannedDeparture().Sub(*arrival)
		if layover <= 0 || layover > maxLayover {
			continue
		}

		minutes := int(layover.Minutes())
		terminalChange := from.TerminalDestination != "" && to.TerminalOrigin != "" &&
			from.TerminalDestination != to.TerminalOrigin

		connections = append(connections, entity.Connection{
			FromKey:        from.FlightKey,
			ToKey:          to.FlightKey,
			FromIdent:      from.Ident,
			ToIdent:        to.Ident,
			Airport:        to.Origin.Code,
			Minutes:        minutes,
			TerminalChange: terminalChange,
			Risk:           riskTier(minutes, terminalChange),
			FromOrigin:     from.Origin.Code,
			ToDestination:  to.Destination.Code,
			FromGate:       from.GateDestination,
			FromTerminal:   from.TerminalDestination,
			ToGate:         to.GateOrigin,
			ToTerminal:     to.TerminalOrigin,
		})
	}

	return connections
}

// riskTier classifies connection tightness from minutes and whether the
// traveler must change terminals.
func riskTier(minutes int, terminalChange bool) entity.RiskTier {
	switch {
	case minutes < criticalBelowMin:
		return entity.RiskCritical
	case minutes < tightBelowMin && terminalChange:
		return entity.RiskTight
	case minutes < tightBelowMin:
		return entity.RiskModerate
	case minutes < advisoryBelowMin && terminalChange:
		return entity.RiskModerate
	default:
		return entity.RiskSafe
	}
}

// RelevantConnection picks the connection involving the given flight, if
// any. When the flight is on both sides of a layover chain, the one where
// it is the arriving leg wins: that is the connection the traveler is about
// to make.
func RelevantConnection(connections []entity.Connection, flightKey string) *entity.Connection {
	var fallback *entity.Connection
	for i := range connections {
		c := &connections[i]
		if !c.Involves(flightKey) {
			continue
		}
		if c.ArrivingLegIs(flightKey) {
			return c
		}
		if fallback == nil {
			fallback = c
		}
	}
	return fallback
}
