package entity

import "time"

// FlightWatch is a traveler's subscription to one flight on one date.
type FlightWatch struct {
	Ident         string
	FlightDate    string // YYYY-MM-DD
	Phone         string
	PassengerName string
}

// FlightKey returns the snapshot-history partition key for the watch.
func (w *FlightWatch) FlightKey() string {
	return FlightKeyFor(w.Ident, w.FlightDate)
}

// PollTask is one schedule-store row: a polling phase for a watched flight,
// with the traveler riding along so a due task is self-contained.
type PollTask struct {
	ID            uint
	FlightKey     string
	Ident         string
	FlightDate    string
	Phone         string
	PassengerName string

	PhaseLabel string
	Interval   time.Duration
	StartsAt   time.Time
	EndsAt     time.Time
	NextPollAt time.Time
	Status     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Watch rebuilds the subscription view of the task.
func (t *PollTask) Watch() *FlightWatch {
	return &FlightWatch{
		Ident:         t.Ident,
		FlightDate:    t.FlightDate,
		Phone:         t.Phone,
		PassengerName: t.PassengerName,
	}
}
