package usecase

import (
	"time"

	"flightwatch-service/internal/domain/entity"
)

// BuildUpdateEvents classifies one tick's findings into update events. A
// milestone coinciding with field changes becomes a single combined event;
// further milestones due in the same tick (possible after a long polling
// gap) follow as plain milestone events. Inbound alerts are always their
// own events.
func BuildUpdateEvents(
	snapshot *entity.FlightSnapshot,
	changes entity.ChangeSet,
	due []entity.DueMilestone,
	inbound *entity.InboundLegInfo,
	delayAlert, landedAlert bool,
	now time.Time,
) []*entity.UpdateEvent {
	var events []*entity.UpdateEvent

	base := func(class entity.UpdateClass) *entity.UpdateEvent {
		return &entity.UpdateEvent{
			FlightKey:      snapshot.FlightKey,
			Classification: class,
			Snapshot:       snapshot,
			OccurredAt:     now,
		}
	}

	switch {
	case len(due) > 0 && len(changes) > 0:
		first := due[0]
		combined := base(entity.UpdateCombined)
		combined.Milestone = &first
		combined.Changes = changes
		events = append(events, combined)
		for i := 1; i < len(due); i++ {
			m := due[i]
			ev := base(entity.UpdateMilestone)
			ev.Milestone = &m
			events = append(events, ev)
		}
	case len(due) > 0:
		for i := range due {
			m := due[i]
			ev := base(entity.UpdateMilestone)
			ev.Milestone = &m
			events = append(events, ev)
		}
	case len(changes) > 0:
		ev := base(entity.UpdateChange)
		ev.Changes = changes
		events = append(events, ev)
	}

	if delayAlert && inbound != nil {
		ev := base(entity.UpdateInboundDelay)
		ev.Inbound = inbound
		events = append(events, ev)
	}
	if landedAlert && inbound != nil {
		ev := base(entity.UpdateInboundLanded)
		ev.Inbound = inbound
		events = append(events, ev)
	}

	return events
}
