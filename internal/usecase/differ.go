package usecase

import (
	"time"

	"flightwatch-service/internal/domain/entity"
)

// Monitored field names reported by the differ.
const (
	FieldStatus          = "status"
	FieldScheduledOut    = "scheduled_out"
	FieldEstimatedOut    = "estimated_out"
	FieldActualOut       = "actual_out"
	FieldScheduledIn     = "scheduled_in"
	FieldEstimatedIn     = "estimated_in"
	FieldActualIn        = "actual_in"
	FieldOrigin          = "origin"
	FieldDestination     = "destination"
	FieldGateOrigin      = "gate_origin"
	FieldGateDestination = "gate_destination"
	FieldBaggageClaim    = "baggage_claim"
)

// monitoredFields is the closed, ordered list the differ walks.
var monitoredFields = []string{
	FieldStatus,
	FieldScheduledOut,
	FieldEstimatedOut,
	FieldActualOut,
	FieldScheduledIn,
	FieldEstimatedIn,
	FieldActualIn,
	FieldOrigin,
	FieldDestination,
	FieldGateOrigin,
	FieldGateDestination,
	FieldBaggageClaim,
}

// headlineFields are the changes worth a line of their own; a change set
// without any of them falls back to a full status summary.
var headlineFields = []string{
	FieldStatus,
	FieldEstimatedOut,
	FieldEstimatedIn,
	FieldGateOrigin,
	FieldGateDestination,
	FieldBaggageClaim,
}

// monitoredValue extracts one monitored field from a normalized snapshot.
// The second return is false when the field is absent.
func monitoredValue(s *entity.FlightSnapshot, field string) (string, bool) {
	timeValue := func(t *time.Time) (string, bool) {
		if t == nil {
			return "", false
		}
		return t.UTC().Format(time.RFC3339), true
	}
	stringValue := func(v string) (string, bool) {
		return v, v != ""
	}

	switch field {
	case FieldStatus:
		return stringValue(s.Status)
	case FieldScheduledOut:
		return timeValue(s.ScheduledOut)
	case FieldEstimatedOut:
		return timeValue(s.EstimatedOut)
	case FieldActualOut:
		return timeValue(s.ActualOut)
	case FieldScheduledIn:
		return timeValue(s.ScheduledIn)
	case FieldEstimatedIn:
		return timeValue(s.EstimatedIn)
	case FieldActualIn:
		return timeValue(s.ActualIn)
	case FieldOrigin:
		return stringValue(s.Origin.Code)
	case FieldDestination:
		return stringValue(s.Destination.Code)
	case FieldGateOrigin:
		return stringValue(s.GateOrigin)
	case FieldGateDestination:
		return stringValue(s.GateDestination)
	case FieldBaggageClaim:
		return stringValue(s.BaggageClaim)
	}
	return "", false
}

// DiffSnapshots compares the newest persisted snapshot against a freshly
// fetched one, returning a field-level change set. Equality is exact value
// comparison with no tolerance window. A nil previous snapshot yields an
// empty set: there is nothing to report a change against.
func DiffSnapshots(prev, next *entity.FlightSnapshot) entity.ChangeSet {
	changes := entity.ChangeSet{}
	if prev == nil || next == nil {
		return changes
	}

	for _, field := range monitoredFields {
		oldVal, oldOK := monitoredValue(prev, field)
		newVal, newOK := monitoredValue(next, field)

		if !oldOK && !newOK {
			continue
		}
		if oldOK && newOK && oldVal == newVal {
			continue
		}

		fc := entity.FieldChange{}
		if oldOK {
			v := oldVal
			fc.Old = &v
		}
		if newOK {
			v := newVal
			fc.New = &v
		}
		changes[field] = fc
	}

	return changes
}
