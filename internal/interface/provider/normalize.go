package provider

import (
	"time"

	"flightwatch-service/internal/domain/entity"
)

// Raw provider payload shapes. The provider nests flights in an array and
// describes airports with several code systems; normalization reduces all of
// that to the canonical snapshot field set.

type flightsResponse struct {
	Flights []rawFlight `json:"flights"`
}

type rawAirport struct {
	Code     string `json:"code"`
	CodeIata string `json:"code_iata"`
	CodeIcao string `json:"code_icao"`
	City     string `json:"city"`
	Timezone string `json:"timezone"`
}

type rawFlight struct {
	Ident             string `json:"ident"`
	IdentIata         string `json:"ident_iata"`
	FaFlightID        string `json:"fa_flight_id"`
	Status            string `json:"status"`
	Cancelled         bool   `json:"cancelled"`
	InboundFaFlightID string `json:"inbound_fa_flight_id"`

	Origin      *rawAirport `json:"origin"`
	Destination *rawAirport `json:"destination"`

	ScheduledOut *time.Time `json:"scheduled_out"`
	EstimatedOut *time.Time `json:"estimated_out"`
	ActualOut    *time.Time `json:"actual_out"`
	ScheduledIn  *time.Time `json:"scheduled_in"`
	EstimatedIn  *time.Time `json:"estimated_in"`
	ActualIn     *time.Time `json:"actual_in"`

	GateOrigin          string `json:"gate_origin"`
	TerminalOrigin      string `json:"terminal_origin"`
	GateDestination     string `json:"gate_destination"`
	TerminalDestination string `json:"terminal_destination"`
	BaggageClaim        string `json:"baggage_claim"`
}

// preferredCode reduces an airport object to one code: IATA first, then
// ICAO, then whatever generic code the provider sent.
func preferredCode(a *rawAirport) string {
	if a == nil {
		return ""
	}
	switch {
	case a.CodeIata != "":
		return a.CodeIata
	case a.CodeIcao != "":
		return a.CodeIcao
	default:
		return a.Code
	}
}

func normalizeAirport(a *rawAirport) entity.Airport {
	if a == nil {
		return entity.Airport{}
	}
	return entity.Airport{
		Code:     preferredCode(a),
		City:     a.City,
		Timezone: a.Timezone,
	}
}

// normalizeFlight maps one raw provider record onto the canonical snapshot.
// The requested ident and date key the history partition; the provider's
// IATA ident, when present, is what travelers see.
func normalizeFlight(raw *rawFlight, ident, date string) *entity.FlightSnapshot {
	displayIdent := raw.IdentIata
	if displayIdent == "" {
		displayIdent = raw.Ident
	}
	if displayIdent == "" {
		displayIdent = ident
	}

	return &entity.FlightSnapshot{
		FlightKey:  entity.FlightKeyFor(ident, date),
		Ident:      displayIdent,
		FlightDate: date,
		FaFlightID: raw.FaFlightID,

		Origin:      normalizeAirport(raw.Origin),
		Destination: normalizeAirport(raw.Destination),

		ScheduledOut: raw.ScheduledOut,
		EstimatedOut: raw.EstimatedOut,
		ActualOut:    raw.ActualOut,
		ScheduledIn:  raw.ScheduledIn,
		EstimatedIn:  raw.EstimatedIn,
		ActualIn:     raw.ActualIn,

		Status:              raw.Status,
		GateOrigin:          raw.GateOrigin,
		TerminalOrigin:      raw.TerminalOrigin,
		GateDestination:     raw.GateDestination,
		TerminalDestination: raw.TerminalDestination,
		BaggageClaim:        raw.BaggageClaim,
		Cancelled:           raw.Cancelled,
		InboundFaFlightID:   raw.InboundFaFlightID,

		FetchedAt: time.Now().UTC(),
	}
}
