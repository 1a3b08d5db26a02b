package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/pkg/logger"
)

// fakeScheduleRepo records plan mutations for assertions.
type fakeScheduleRepo struct {
	deletedKeys   []string
	createdPhases []entity.SchedulePhase
}

func (f *fakeScheduleRepo) CreatePhases(ctx context.Context, watch *entity.FlightWatch, phases []entity.SchedulePhase) error {
	f.createdPhases = append(f.createdPhases, phases...)
	return nil
}

func (f *fakeScheduleRepo) DeletePhases(ctx context.Context, flightKey string) error {
	f.deletedKeys = append(f.deletedKeys, flightKey)
	return nil
}

func (f *fakeScheduleRepo) DueTasks(ctx context.Context, now time.Time, limit int) ([]*entity.PollTask, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) Advance(ctx context.Context, task *entity.PollTask, now time.Time) error {
	return nil
}

func (f *fakeScheduleRepo) ActiveFlightsByPhone(ctx context.Context, phone string) ([]string, error) {
	return nil, nil
}

func TestDepartureShift(t *testing.T) {
	prev := baseSnapshot()
	next := baseSnapshot()

	t.Run("no shift", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), DepartureShift(prev, next))
	})

	t.Run("forward shift", func(t *testing.T) {
		shifted := baseSnapshot()
		shifted.EstimatedOut = tp(prev.ScheduledOut.Add(40 * time.Minute))
		assert.Equal(t, 40*time.Minute, DepartureShift(prev, shifted))
	})

	t.Run("earlier departure measures the same", func(t *testing.T) {
		shifted := baseSnapshot()
		shifted.EstimatedOut = tp(prev.ScheduledOut.Add(-40 * time.Minute))
		assert.Equal(t, 40*time.Minute, DepartureShift(prev, shifted))
	})

	t.Run("actual departure does not count as a shift", func(t *testing.T) {
		departed := baseSnapshot()
		departed.ActualOut = tp(prev.ScheduledOut.Add(2 * time.Hour))
		assert.Equal(t, time.Duration(0), DepartureShift(prev, departed))
	})

	t.Run("missing snapshots", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), DepartureShift(nil, next))
		assert.Equal(t, time.Duration(0), DepartureShift(prev, nil))
	})
}

func TestReconcileIfShifted(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	watch := &entity.FlightWatch{Ident: "UA100", FlightDate: "2026-09-01", Phone: "15551234567"}

	t.Run("below threshold leaves the plan alone", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		r := NewScheduleReconciler(repo, logger.NewLogger())

		prev := baseSnapshot()
		next := baseSnapshot()
		next.EstimatedOut = tp(prev.ScheduledOut.Add(20 * time.Minute))

		rebuilt, err := r.ReconcileIfShifted(context.Background(), watch, prev, next, now)

		require.NoError(t, err)
		assert.False(t, rebuilt)
		assert.Empty(t, repo.deletedKeys)
		assert.Empty(t, repo.createdPhases)
	})

	t.Run("threshold shift replaces the plan", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		r := NewScheduleReconciler(repo, logger.NewLogger())

		prev := baseSnapshot()
		next := baseSnapshot()
		next.EstimatedOut = tp(prev.ScheduledOut.Add(45 * time.Minute))
		next.EstimatedIn = tp(prev.ScheduledIn.Add(45 * time.Minute))

		rebuilt, err := r.ReconcileIfShifted(context.Background(), watch, prev, next, now)

		require.NoError(t, err)
		assert.True(t, rebuilt)
		assert.Equal(t, []string{"UA100:2026-09-01"}, repo.deletedKeys)
		assert.NotEmpty(t, repo.createdPhases)

		// The fresh plan anchors on the shifted departure.
		last := repo.createdPhases[len(repo.createdPhases)-1]
		assert.Equal(t, next.EstimatedIn.Add(30*time.Minute), last.End)
	})
}
