package entity

import "time"

// UpdateClass discriminates the five kinds of update the composer handles.
type UpdateClass string

const (
	UpdateMilestone     UpdateClass = "milestone"
	UpdateChange        UpdateClass = "change"
	UpdateCombined      UpdateClass = "combined"
	UpdateInboundDelay  UpdateClass = "inbound-delay"
	UpdateInboundLanded UpdateClass = "inbound-landed"
)

// UpdateEvent is the unit handed to the notification composer and published
// on the event bus. Each classification carries exactly the fields its
// composer branch needs: Milestone for milestone/combined, Changes for
// change/combined, Inbound for the two inbound classes. Snapshot is always
// present.
type UpdateEvent struct {
	FlightKey      string          `json:"flightKey"`
	Classification UpdateClass     `json:"classification"`
	Milestone      *DueMilestone   `json:"milestone,omitempty"`
	Changes        ChangeSet       `json:"changes,omitempty"`
	Snapshot       *FlightSnapshot `json:"snapshot"`
	Inbound        *InboundLegInfo `json:"inbound,omitempty"`
	OccurredAt     time.Time       `json:"occurredAt"`
}
