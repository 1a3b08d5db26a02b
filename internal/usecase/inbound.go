package usecase

import (
	"math"
	"strings"
	"time"

	"flightwatch-service/internal/domain/entity"
)

// Inbound alerting thresholds, in minutes. A first alert needs a material
// delay; re-alerts need material worsening so minor fluctuation stays quiet.
const (
	inboundDelayFloorMin   = 30
	inboundReAlertDeltaMin = 15
)

// inboundPollWindowHours bounds how early the inbound leg is worth polling.
const inboundPollWindowHours = 5.0

// ShouldPollInbound reports whether the inbound aircraft leg should be
// fetched on this tick: only inside the final hours before departure.
func ShouldPollInbound(departure *time.Time, now time.Time) bool {
	if departure == nil {
		return false
	}
	h := departure.Sub(now).Hours()
	return h > 0 && h <= inboundPollWindowHours
}

// ShouldAlertInboundDelay decides whether the current inbound delay warrants
// a (re-)alert given what was last alerted.
func ShouldAlertInboundDelay(delayMinutes int, lastAlertedMinutes *int) bool {
	if delayMinutes < inboundDelayFloorMin {
		return false
	}
	if lastAlertedMinutes == nil {
		return true
	}
	return delayMinutes-*lastAlertedMinutes >= inboundReAlertDeltaMin
}

// ShouldAlertInboundLanded fires exactly once, on the edge into Landed.
func ShouldAlertInboundLanded(current, previous entity.InboundStatus) bool {
	return current == entity.InboundLanded && previous != entity.InboundLanded
}

// NormalizeInboundStatus maps free-form provider status text, plus whatever
// actual times exist, onto the closed inbound status set. Landed wins over
// In Flight: a landed aircraft also has an actual departure.
func NormalizeInboundStatus(status string, actualOut, actualIn *time.Time) entity.InboundStatus {
	s := strings.ToLower(status)
	switch {
	case actualIn != nil, strings.Contains(s, "landed"), strings.Contains(s, "arrived"):
		return entity.InboundLanded
	case actualOut != nil, strings.Contains(s, "en route"), strings.Contains(s, "in air"):
		return entity.InboundInFlight
	case strings.Contains(s, "scheduled"):
		return entity.InboundScheduled
	default:
		return entity.InboundUnknown
	}
}

// InboundDelayMinutes measures how far behind schedule the inbound aircraft
// is, using the actual-or-estimated arrival. Early arrivals clamp to zero;
// missing times compare as no delay.
func InboundDelayMinutes(scheduledIn, actualOrEstimatedIn *time.Time) int {
	if scheduledIn == nil || actualOrEstimatedIn == nil {
		return 0
	}
	m := int(math.Round(actualOrEstimatedIn.Sub(*scheduledIn).Minutes()))
	if m < 0 {
		return 0
	}
	return m
}

// BuildInboundLegInfo derives the traveler-relevant view of the aircraft's
// prior leg from its latest snapshot.
func BuildInboundLegInfo(leg *entity.FlightSnapshot) *entity.InboundLegInfo {
	if leg == nil {
		return nil
	}

	bestIn := leg.ActualIn
	if bestIn == nil {
		bestIn = leg.EstimatedIn
	}

	return &entity.InboundLegInfo{
		Ident:        leg.Ident,
		Origin:       leg.Origin.Code,
		OriginCity:   leg.Origin.City,
		Status:       NormalizeInboundStatus(leg.Status, leg.ActualOut, leg.ActualIn),
		ScheduledIn:  leg.ScheduledIn,
		EstimatedIn:  leg.EstimatedIn,
		ActualIn:     leg.ActualIn,
		DelayMinutes: InboundDelayMinutes(leg.ScheduledIn, bestIn),
	}
}
