package usecase

import (
	"time"

	"flightwatch-service/internal/domain/entity"
)

// Phase window labels.
const (
	PhaseFar         = ">24h"
	PhaseApproach    = "12-24h"
	PhaseNear        = "4-12h"
	PhaseImminent    = "0-4h"
	PhaseInFlight    = "in-flight"
	PhasePreArrival  = "pre-arrival"
	PhasePostArrival = "post-arrival"
)

// minimumLeadTime below which a flight with no known arrival gets no plan:
// there is nothing useful left to schedule.
const minimumLeadTime = time.Minute

// PlanPhases maps departure, optional arrival, and now to an ordered,
// non-overlapping polling plan. Each phase's start clamps to now when its
// nominal start has already elapsed; a phase whose clamped start reaches its
// end is omitted entirely, so an already-landed flight plans to nothing.
func PlanPhases(departure time.Time, arrival *time.Time, now time.Time) []entity.SchedulePhase {
	if departure.Sub(now) < minimumLeadTime && arrival == nil {
		return nil
	}

	var phases []entity.SchedulePhase
	add := func(label string, start, end time.Time, interval time.Duration) {
		if start.Before(now) {
			start = now
		}
		if !start.Before(end) {
			return
		}
		phases = append(phases, entity.SchedulePhase{
			Label:    label,
			Start:    start,
			End:      end,
			Interval: interval,
		})
	}

	add(PhaseFar, now, departure.Add(-24*time.Hour), 12*time.Hour)
	add(PhaseApproach, departure.Add(-24*time.Hour), departure.Add(-12*time.Hour), 2*time.Hour)
	add(PhaseNear, departure.Add(-12*time.Hour), departure.Add(-4*time.Hour), time.Hour)
	add(PhaseImminent, departure.Add(-4*time.Hour), departure, 15*time.Minute)

	// With a known arrival, coverage extends through landing so pre-landing
	// detection and final-status confirmation have polls to run on.
	if arrival != nil {
		arr := *arrival
		add(PhaseInFlight, departure, arr.Add(-time.Hour), 30*time.Minute)
		add(PhasePreArrival, arr.Add(-time.Hour), arr, 15*time.Minute)
		add(PhasePostArrival, arr, arr.Add(30*time.Minute), 15*time.Minute)
	}

	return phases
}
