// internal/domain/entity/flight_snapshot.go
package entity

import (
	"fmt"
	"time"
)

// Airport is the normalized airport reference carried on a snapshot.
type Airport struct {
	Code     string `bson:"code" json:"code"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	Timezone string `bson:"timezone,omitempty" json:"timezone,omitempty"`
}

// FlightSnapshot is one fetched, timestamped copy of a flight's status.
// Snapshots are immutable once appended; history is ordered by FetchedAt
// within a FlightKey partition.
type FlightSnapshot struct {
	ID         string `bson:"_id,omitempty" json:"id,omitempty"`
	FlightKey  string `bson:"flightKey" json:"flightKey"` // {ident}:{date} - partition key
	Ident      string `bson:"ident" json:"ident"`
	FlightDate string `bson:"flightDate" json:"flightDate"` // YYYY-MM-DD
	FaFlightID string `bson:"faFlightId,omitempty" json:"faFlightId,omitempty"`

	Origin      Airport `bson:"origin" json:"origin"`
	Destination Airport `bson:"destination" json:"destination"`

	ScheduledOut *time.Time `bson:"scheduledOut,omitempty" json:"scheduledOut,omitempty"`
	EstimatedOut *time.Time `bson:"estimatedOut,omitempty" json:"estimatedOut,omitempty"`
	ActualOut    *time.Time `bson:"actualOut,omitempty" json:"actualOut,omitempty"`
	ScheduledIn  *time.Time `bson:"scheduledIn,omitempty" json:"scheduledIn,omitempty"`
	EstimatedIn  *time.Time `bson:"estimatedIn,omitempty" json:"estimatedIn,omitempty"`
	ActualIn     *time.Time `bson:"actualIn,omitempty" json:"actualIn,omitempty"`

	Status              string `bson:"status,omitempty" json:"status,omitempty"`
	GateOrigin          string `bson:"gateOrigin,omitempty" json:"gateOrigin,omitempty"`
	TerminalOrigin      string `bson:"terminalOrigin,omitempty" json:"terminalOrigin,omitempty"`
	GateDestination     string `bson:"gateDestination,omitempty" json:"gateDestination,omitempty"`
	TerminalDestination string `bson:"terminalDestination,omitempty" json:"terminalDestination,omitempty"`
	BaggageClaim        string `bson:"baggageClaim,omitempty" json:"baggageClaim,omitempty"`
	Cancelled           bool   `bson:"cancelled" json:"cancelled"`

	// Previous leg of the same tail, when the provider knows it.
	InboundFaFlightID string `bson:"inboundFaFlightId,omitempty" json:"inboundFaFlightId,omitempty"`

	// Inbound alert dedup state, carried forward tick to tick on the latest
	// snapshot so successive activations can compare against it.
	InboundDelayAlertedMin *int   `bson:"inboundDelayAlertedMin,omitempty" json:"inboundDelayAlertedMin,omitempty"`
	InboundLastStatus      string `bson:"inboundLastStatus,omitempty" json:"inboundLastStatus,omitempty"`

	FetchedAt time.Time `bson:"fetchedAt" json:"fetchedAt"`
}

// FlightKeyFor builds the history partition key for an ident and date.
func FlightKeyFor(ident, date string) string {
	return fmt.Sprintf("%s:%s", ident, date)
}

// BestDeparture returns the departure time derived calculations must use:
// actual over estimated over scheduled.
func (s *FlightSnapshot) BestDeparture() *time.Time {
	switch {
	case s.ActualOut != nil:
		return s.ActualOut
	case s.EstimatedOut != nil:
		return s.EstimatedOut
	default:
		return s.ScheduledOut
	}
}

// BestArrival returns the arrival time with the same precedence as BestDeparture.
func (s *FlightSnapshot) BestArrival() *time.Time {
	switch {
	case s.ActualIn != nil:
		return s.ActualIn
	case s.EstimatedIn != nil:
		return s.EstimatedIn
	default:
		return s.ScheduledIn
	}
}

// PlannedDeparture is the estimated-else-scheduled departure, ignoring actual.
// Used for ordering flights and for measuring schedule shifts.
func (s *FlightSnapshot) PlannedDeparture() *time.Time {
	if s.EstimatedOut != nil {
		return s.EstimatedOut
	}
	return s.ScheduledOut
}
