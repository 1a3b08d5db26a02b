package entity

import "sort"

// MilestoneTag identifies a one-time lifecycle notification.
type MilestoneTag string

const (
	MilestoneCheckin    MilestoneTag = "checkin"
	Milestone24h        MilestoneTag = "24h"
	Milestone12h        MilestoneTag = "12h"
	Milestone4h         MilestoneTag = "4h"
	MilestoneBoarding   MilestoneTag = "boarding"
	MilestonePreLanding MilestoneTag = "pre-landing"
)

// milestoneRanks orders the closed tag set by lifecycle position.
var milestoneRanks = map[MilestoneTag]int{
	MilestoneCheckin:    0,
	Milestone24h:        1,
	Milestone12h:        2,
	Milestone4h:         3,
	MilestoneBoarding:   4,
	MilestonePreLanding: 5,
}

// MilestoneRank returns the ordinal position of a tag within the lifecycle.
// Unknown tags sort last.
func MilestoneRank(tag MilestoneTag) int {
	if r, ok := milestoneRanks[tag]; ok {
		return r
	}
	return len(milestoneRanks)
}

// DueMilestone is a newly due milestone with the hours remaining until the
// event it announces (departure, or arrival for pre-landing).
type DueMilestone struct {
	Tag            MilestoneTag `bson:"tag" json:"tag"`
	HoursRemaining float64      `bson:"hoursRemaining" json:"hoursRemaining"`
}

// MilestoneState is the set of milestones already fired for a flight+date.
// It only ever grows.
type MilestoneState []MilestoneTag

// Has reports whether the tag has already fired.
func (m MilestoneState) Has(tag MilestoneTag) bool {
	for _, t := range m {
		if t == tag {
			return true
		}
	}
	return false
}

// With returns a copy extended by the given tags, deduplicated and kept in
// lifecycle order.
func (m MilestoneState) With(tags ...MilestoneTag) MilestoneState {
	out := make(MilestoneState, len(m), len(m)+len(tags))
	copy(out, m)
	for _, t := range tags {
		if !out.Has(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return MilestoneRank(out[i]) < MilestoneRank(out[j])
	})
	return out
}
