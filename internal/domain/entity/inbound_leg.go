package entity

import "time"

// InboundStatus is the normalized lifecycle status of the aircraft's
// previous leg.
type InboundStatus string

const (
	InboundScheduled InboundStatus = "Scheduled"
	InboundInFlight  InboundStatus = "In Flight"
	InboundLanded    InboundStatus = "Landed"
	InboundUnknown   InboundStatus = "Unknown"
)

// InboundLegInfo is a derived view of the aircraft's prior flight, used to
// predict cascading delay on the leg the traveler is actually on.
type InboundLegInfo struct {
	Ident       string        `json:"ident"`
	Origin      string        `json:"origin"`
	OriginCity  string        `json:"originCity,omitempty"`
	Status      InboundStatus `json:"status"`
	ScheduledIn *time.Time    `json:"scheduledIn,omitempty"`
	EstimatedIn *time.Time    `json:"estimatedIn,omitempty"`
	ActualIn    *time.Time    `json:"actualIn,omitempty"`

	// Minutes behind schedule at the traveler's departure airport.
	// Early arrivals clamp to zero.
	DelayMinutes int `json:"delayMinutes"`
}
