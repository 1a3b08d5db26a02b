package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// SnapshotRepository defines the interface to the durable snapshot store.
// History is append-only per flight key; milestone state is merged, never
// replaced, so the fired set only grows.
type SnapshotRepository interface {
	// GetLatest returns the newest snapshot and the milestones already
	// fired for the flight. A missing history yields (nil, nil, nil).
	GetLatest(ctx context.Context, flightKey string) (*entity.FlightSnapshot, entity.MilestoneState, error)

	// Append stores a new snapshot and merges the given milestone state
	// into the persisted fired set.
	Append(ctx context.Context, flightKey string, snapshot *entity.FlightSnapshot, fired entity.MilestoneState) error
}
