package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormScheduleRepository implements the ScheduleRepository interface
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewGormScheduleRepository creates a new GORM schedule repository
func NewGormScheduleRepository(db *gorm.DB) repository.ScheduleRepository {
	return &GormScheduleRepository{
		db: db,
	}
}

// MonitorSchedules GORM model for database mapping. The traveler rides on
// every phase row so a due task is self-contained.
type MonitorSchedules struct {
	gorm.Model
	FlightKey   string    `gorm:"column:flight_key;index"`
	Ident       string    `gorm:"column:ident"`
	FlightDate  string    `gorm:"column:flight_date"`
	PsgPhone    string    `gorm:"column:psg_phone"`
	PsgName     string    `gorm:"column:psg_name"`
	PhaseLabel  string    `gorm:"column:phase_label"`
	IntervalSec int       `gorm:"column:interval_sec"`
	StartsAt    time.Time `gorm:"column:starts_at"`
	EndsAt      time.Time `gorm:"column:ends_at"`
	NextPollAt  time.Time `gorm:"column:next_poll_at;index"`
	Status      string    `gorm:"column:status"`
}

// TableName overrides the default table name
func (MonitorSchedules) TableName() string {
	return "monitor_schedules"
}

const (
	statusActive = "active"
	statusDone   = "done"
)

func toEntity(row *MonitorSchedules) *entity.PollTask {
	return &entity.PollTask{
		ID:            row.ID,
		FlightKey:     row.FlightKey,
		Ident:         row.Ident,
		FlightDate:    row.FlightDate,
		Phone:         row.PsgPhone,
		PassengerName: row.PsgName,
		PhaseLabel:    row.PhaseLabel,
		Interval:      time.Duration(row.IntervalSec) * time.Second,
		StartsAt:      row.StartsAt,
		EndsAt:        row.EndsAt,
		NextPollAt:    row.NextPollAt,
		Status:        row.Status,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

// CreatePhases inserts one schedule row per phase, first poll at phase start.
func (r *GormScheduleRepository) CreatePhases(ctx context.Context, watch *entity.FlightWatch, phases []entity.SchedulePhase) error {
	if len(phases) == 0 {
		return nil
	}

	rows := make([]MonitorSchedules, 0, len(phases))
	for _, phase := range phases {
		rows = append(rows, MonitorSchedules{
			FlightKey:   watch.FlightKey(),
			Ident:       watch.Ident,
			FlightDate:  watch.FlightDate,
			PsgPhone:    watch.Phone,
			PsgName:     watch.PassengerName,
			PhaseLabel:  phase.Label,
			IntervalSec: int(phase.Interval.Seconds()),
			StartsAt:    phase.Start,
			EndsAt:      phase.End,
			NextPollAt:  phase.Start,
			Status:      statusActive,
		})
	}

	return r.db.WithContext(ctx).Create(&rows).Error
}

// DeletePhases removes every schedule row for the flight.
func (r *GormScheduleRepository) DeletePhases(ctx context.Context, flightKey string) error {
	return r.db.WithContext(ctx).
		Where("flight_key = ?", flightKey).
		Delete(&MonitorSchedules{}).Error
}

// DueTasks returns active tasks whose next poll time has elapsed, oldest first.
func (r *GormScheduleRepository) DueTasks(ctx context.Context, now time.Time, limit int) ([]*entity.PollTask, error) {
	var rows []MonitorSchedules
	result := r.db.WithContext(ctx).
		Where("status = ?", statusActive).
		Where("next_poll_at <= ?", now).
		Order("next_poll_at").
		Limit(limit).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	tasks := make([]*entity.PollTask, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, toEntity(&rows[i]))
	}
	return tasks, nil
}

// Advance moves the task's next poll forward by its interval, marking the
// row done once the next poll would fall past the phase window.
func (r *GormScheduleRepository) Advance(ctx context.Context, task *entity.PollTask, now time.Time) error {
	next := now.Add(task.Interval)
	updates := map[string]interface{}{"next_poll_at": next}
	if next.After(task.EndsAt) {
		updates["status"] = statusDone
	}

	return r.db.WithContext(ctx).
		Model(&MonitorSchedules{}).
		Where("id = ?", task.ID).
		Updates(updates).Error
}

// ActiveFlightsByPhone lists the distinct flights the traveler still has
// active polling for.
func (r *GormScheduleRepository) ActiveFlightsByPhone(ctx context.Context, phone string) ([]string, error) {
	var keys []string
	result := r.db.WithContext(ctx).
		Model(&MonitorSchedules{}).
		Where("psg_phone = ?", phone).
		Where("status = ?", statusActive).
		Distinct("flight_key").
		Pluck("flight_key", &keys)
	if result.Error != nil {
		return nil, result.Error
	}
	return keys, nil
}
