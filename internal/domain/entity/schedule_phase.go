package entity

import "time"

// SchedulePhase is a contiguous polling window with a fixed re-poll interval.
// A flight's plan is an ordered, non-overlapping sequence of phases.
type SchedulePhase struct {
	Label    string        `json:"label"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Interval time.Duration `json:"interval"`
}
