package usecase

import (
	"sort"
	"time"

	"flightwatch-service/internal/domain/entity"
)

// Milestone windows in hours before departure (or before arrival for
// pre-landing). Windows are wide enough that the coarsening poll cadence
// cannot silently skip one between two consecutive polls; checkin is a
// narrow symmetric band because check-in opens at a fixed offset.
const (
	checkinLowerHours = 23.5
	checkinUpperHours = 24.5
	preLandingHours   = 1.1
)

// DetectMilestones returns the milestones newly due at now, excluding any
// already in fired. Thresholds are evaluated independently: after a long
// polling gap a flight may satisfy several at once. No milestone fires
// without a known departure time.
func DetectMilestones(departure, arrival *time.Time, fired entity.MilestoneState, now time.Time) []entity.DueMilestone {
	if departure == nil {
		return nil
	}

	hoursToDep := departure.Sub(now).Hours()

	var due []entity.DueMilestone
	add := func(tag entity.MilestoneTag, hoursRemaining float64) {
		if !fired.Has(tag) {
			due = append(due, entity.DueMilestone{Tag: tag, HoursRemaining: hoursRemaining})
		}
	}

	if hoursToDep >= checkinLowerHours && hoursToDep <= checkinUpperHours {
		add(entity.MilestoneCheckin, hoursToDep)
	}
	if hoursToDep > 12 && hoursToDep <= 24 {
		add(entity.Milestone24h, hoursToDep)
	}
	if hoursToDep > 4 && hoursToDep <= 12 {
		add(entity.Milestone12h, hoursToDep)
	}
	if hoursToDep > 0.6 && hoursToDep <= 4 {
		add(entity.Milestone4h, hoursToDep)
	}
	if hoursToDep > 0 && hoursToDep <= 0.6 {
		add(entity.MilestoneBoarding, hoursToDep)
	}

	// Pre-landing is only considered once the flight is airborne.
	if hoursToDep < 0 && arrival != nil {
		hoursToArr := arrival.Sub(now).Hours()
		if hoursToArr > 0 && hoursToArr <= preLandingHours {
			add(entity.MilestonePreLanding, hoursToArr)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return entity.MilestoneRank(due[i].Tag) < entity.MilestoneRank(due[j].Tag)
	})

	return due
}

// DueTags lists just the tags of the given due milestones.
func DueTags(due []entity.DueMilestone) []entity.MilestoneTag {
	tags := make([]entity.MilestoneTag, 0, len(due))
	for _, d := range due {
		tags = append(tags, d.Tag)
	}
	return tags
}
