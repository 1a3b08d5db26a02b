package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
)

// ScheduleRepository defines the interface to the polling-schedule store.
type ScheduleRepository interface {
	// CreatePhases inserts one poll task per phase for the watch.
	CreatePhases(ctx context.Context, watch *entity.FlightWatch, phases []entity.SchedulePhase) error

	// DeletePhases removes every task for the flight, used when a plan is
	// replaced wholesale.
	DeletePhases(ctx context.Context, flightKey string) error

	// DueTasks returns active tasks whose next poll time has elapsed.
	DueTasks(ctx context.Context, now time.Time, limit int) ([]*entity.PollTask, error)

	// Advance moves a task's next poll time forward by its interval,
	// marking it done once the phase window is exhausted.
	Advance(ctx context.Context, task *entity.PollTask, now time.Time) error

	// ActiveFlightsByPhone lists the distinct flights a traveler is
	// watching, used for connection analysis.
	ActiveFlightsByPhone(ctx context.Context, phone string) ([]string, error)
}
