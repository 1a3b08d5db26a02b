package usecase

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

// DepartureShiftThreshold is the smallest departure-time shift that makes
// the existing polling plan stale enough to replace.
const DepartureShiftThreshold = 30 * time.Minute

// ScheduleReconciler replaces a flight's polling plan when its departure
// moves materially. Replacement is wholesale: the old phases are deleted and
// a fresh plan takes their place, never merged.
type ScheduleReconciler struct {
	schedules repository.ScheduleRepository
	logger    logger.Logger
}

// NewScheduleReconciler creates a new schedule reconciler
func NewScheduleReconciler(schedules repository.ScheduleRepository, logger logger.Logger) *ScheduleReconciler {
	return &ScheduleReconciler{
		schedules: schedules,
		logger:    logger,
	}
}

// DepartureShift measures how far the planned (estimated-else-scheduled)
// departure moved between two snapshots. Unknown departures measure as zero.
func DepartureShift(prev, next *entity.FlightSnapshot) time.Duration {
	if prev == nil || next == nil {
		return 0
	}
	p, n := prev.PlannedDeparture(), next.PlannedDeparture()
	if p == nil || n == nil {
		return 0
	}
	shift := n.Sub(*p)
	if shift < 0 {
		shift = -shift
	}
	return shift
}

// ReconcileIfShifted rebuilds the watch's plan when the departure shift
// crosses the threshold. Returns whether a rebuild happened.
func (r *ScheduleReconciler) ReconcileIfShifted(ctx context.Context, watch *entity.FlightWatch, prev, next *entity.FlightSnapshot, now time.Time) (bool, error) {
	shift := DepartureShift(prev, next)
	if shift < DepartureShiftThreshold {
		return false, nil
	}

	departure := next.PlannedDeparture()
	phases := PlanPhases(*departure, next.BestArrival(), now)

	flightKey := watch.FlightKey()
	if err := r.schedules.DeletePhases(ctx, flightKey); err != nil {
		return false, err
	}
	if err := r.schedules.CreatePhases(ctx, watch, phases); err != nil {
		return false, err
	}

	r.logger.Info("Polling plan replaced after departure shift",
		"flightKey", flightKey,
		"shiftMinutes", int(shift.Minutes()),
		"phases", len(phases))

	return true, nil
}
