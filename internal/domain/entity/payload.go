// internal/domain/entity/payload.go
package entity

import (
	"time"
)

// PayloadType defines the type of the payload
type PayloadType string

const (
	FlightUpdate      PayloadType = "flight_update"
	ConnectionWarning PayloadType = "connection_warning"
)

// Payload represents one traveler-facing message handed to the delivery
// channel. Text uses light markup only: bold via surrounding asterisks,
// blank lines between paragraphs.
type Payload struct {
	ID         string                 `json:"id,omitempty" bson:"_id,omitempty"`
	Type       PayloadType            `json:"type" bson:"type"`
	Phone      string                 `json:"phone" bson:"phone"`
	Text       string                 `json:"text" bson:"text"`
	ScheduleAt time.Time              `json:"scheduleAt" bson:"scheduleAt"`
	CreatedAt  time.Time              `json:"createdAt" bson:"createdAt"`
	SentAt     time.Time              `json:"sentAt,omitempty" bson:"sentAt,omitempty"`
	Status     string                 `json:"status" bson:"status"`
	Metadata   map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
}
