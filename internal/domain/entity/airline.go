package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline represents an airline reference entity. IataCode is the two-letter
// carrier prefix travelers see; IcaoCode is the three-letter alternate used
// when a provider lookup by the primary identifier comes back empty.
type Airline struct {
	ID        uint
	IataCode  string
	IcaoCode  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
