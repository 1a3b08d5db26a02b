package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
)

// mockProvider answers fetches from canned snapshots.
type mockProvider struct {
	byIdent map[string]*entity.FlightSnapshot
	byID    map[string]*entity.FlightSnapshot
}

func (m *mockProvider) FetchByIdent(ctx context.Context, ident, date string) (*entity.FlightSnapshot, error) {
	if s, ok := m.byIdent[entity.FlightKeyFor(ident, date)]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, repository.ErrFlightNotFound
}

func (m *mockProvider) FetchByFaFlightID(ctx context.Context, faFlightID string) (*entity.FlightSnapshot, error) {
	if s, ok := m.byID[faFlightID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, repository.ErrFlightNotFound
}

// mockSnapshotRepo keeps the latest snapshot and fired set in memory.
type mockSnapshotRepo struct {
	latest   map[string]*entity.FlightSnapshot
	fired    map[string]entity.MilestoneState
	appended []*entity.FlightSnapshot
}

func newMockSnapshotRepo() *mockSnapshotRepo {
	return &mockSnapshotRepo{
		latest: map[string]*entity.FlightSnapshot{},
		fired:  map[string]entity.MilestoneState{},
	}
}

func (m *mockSnapshotRepo) GetLatest(ctx context.Context, flightKey string) (*entity.FlightSnapshot, entity.MilestoneState, error) {
	return m.latest[flightKey], m.fired[flightKey], nil
}

func (m *mockSnapshotRepo) Append(ctx context.Context, flightKey string, snapshot *entity.FlightSnapshot, fired entity.MilestoneState) error {
	m.latest[flightKey] = snapshot
	m.fired[flightKey] = m.fired[flightKey].With(fired...)
	m.appended = append(m.appended, snapshot)
	return nil
}

type mockMessenger struct {
	sent []*entity.Payload
}

func (m *mockMessenger) SendPayload(ctx context.Context, payload *entity.Payload) (string, error) {
	m.sent = append(m.sent, payload)
	return "task-1", nil
}

type mockPublisher struct {
	published []*entity.UpdateEvent
}

func (m *mockPublisher) Publish(ctx context.Context, event *entity.UpdateEvent) error {
	m.published = append(m.published, event)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

type monitorFixture struct {
	monitor   *FlightMonitor
	provider  *mockProvider
	snapshots *mockSnapshotRepo
	schedules *fakeScheduleRepo
	messenger *mockMessenger
	publisher *mockPublisher
}

func newMonitorFixture() *monitorFixture {
	log := logger.NewLogger()
	f := &monitorFixture{
		provider:  &mockProvider{byIdent: map[string]*entity.FlightSnapshot{}, byID: map[string]*entity.FlightSnapshot{}},
		snapshots: newMockSnapshotRepo(),
		schedules: &fakeScheduleRepo{},
		messenger: &mockMessenger{},
		publisher: &mockPublisher{},
	}
	f.monitor = NewFlightMonitor(
		f.provider,
		f.snapshots,
		f.schedules,
		f.messenger,
		f.publisher,
		NewScheduleReconciler(f.schedules, log),
		metrics.NewMetricsWith("flightwatch", prometheus.NewRegistry()),
		log,
	)
	return f
}

func monitorTask(s *entity.FlightSnapshot) *entity.PollTask {
	return &entity.PollTask{
		ID:            1,
		FlightKey:     s.FlightKey,
		Ident:         s.Ident,
		FlightDate:    s.FlightDate,
		Phone:         "15551234567",
		PassengerName: "Alex",
	}
}

func TestMonitor_Watch(t *testing.T) {
	f := newMonitorFixture()
	s := baseSnapshot()
	s.ScheduledOut = tp(time.Now().UTC().Add(48 * time.Hour))
	s.ScheduledIn = tp(time.Now().UTC().Add(58 * time.Hour))
	f.provider.byIdent[s.FlightKey] = s

	watch := &entity.FlightWatch{Ident: "UA100", FlightDate: "2026-09-01", Phone: "15551234567"}
	err := f.monitor.Watch(context.Background(), watch)

	require.NoError(t, err)
	assert.Len(t, f.schedules.createdPhases, 7)
	require.Len(t, f.snapshots.appended, 1)
	assert.Equal(t, "UA100:2026-09-01", f.snapshots.appended[0].FlightKey)
}

func TestMonitor_WatchUntrackableFlight(t *testing.T) {
	f := newMonitorFixture()
	watch := &entity.FlightWatch{Ident: "XX123", FlightDate: "2026-09-01"}

	err := f.monitor.Watch(context.Background(), watch)

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrFlightNotFound)
	assert.Empty(t, f.schedules.createdPhases)
}

func TestMonitor_TickQuiet(t *testing.T) {
	f := newMonitorFixture()
	s := baseSnapshot()
	s.ScheduledOut = tp(time.Now().UTC().Add(72 * time.Hour))
	s.ScheduledIn = tp(time.Now().UTC().Add(78 * time.Hour))
	f.provider.byIdent[s.FlightKey] = s
	f.snapshots.latest[s.FlightKey] = s

	err := f.monitor.Tick(context.Background(), monitorTask(s))

	require.NoError(t, err)
	assert.Empty(t, f.publisher.published)
	assert.Empty(t, f.messenger.sent)
	// The fetched snapshot is still appended to history.
	assert.Len(t, f.snapshots.appended, 1)
}

func TestMonitor_TickChangeNotifies(t *testing.T) {
	f := newMonitorFixture()
	prev := baseSnapshot()
	prev.ScheduledOut = tp(time.Now().UTC().Add(72 * time.Hour))
	prev.ScheduledIn = tp(time.Now().UTC().Add(78 * time.Hour))
	f.snapshots.latest[prev.FlightKey] = prev

	next := *prev
	next.Status = "Delayed"
	next.GateOrigin = "D8"
	f.provider.byIdent[prev.FlightKey] = &next

	err := f.monitor.Tick(context.Background(), monitorTask(prev))

	require.NoError(t, err)
	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, entity.UpdateChange, f.publisher.published[0].Classification)
	require.Len(t, f.messenger.sent, 1)
	assert.Contains(t, f.messenger.sent[0].Text, "Status: Scheduled → Delayed")
	assert.Equal(t, "15551234567", f.messenger.sent[0].Phone)
}

func TestMonitor_TickMilestoneRecordedOnce(t *testing.T) {
	f := newMonitorFixture()
	s := baseSnapshot()
	s.ScheduledOut = tp(time.Now().UTC().Add(8 * time.Hour))
	s.ScheduledIn = tp(time.Now().UTC().Add(14 * time.Hour))
	f.provider.byIdent[s.FlightKey] = s
	f.snapshots.latest[s.FlightKey] = s

	task := monitorTask(s)
	require.NoError(t, f.monitor.Tick(context.Background(), task))

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, entity.UpdateMilestone, f.publisher.published[0].Classification)
	assert.Equal(t, entity.Milestone12h, f.publisher.published[0].Milestone.Tag)
	assert.True(t, f.snapshots.fired[s.FlightKey].Has(entity.Milestone12h))

	// The next tick finds the milestone already fired.
	require.NoError(t, f.monitor.Tick(context.Background(), task))
	assert.Len(t, f.publisher.published, 1)
	assert.Len(t, f.messenger.sent, 1)
}

func TestMonitor_TickFlightNotFoundTolerated(t *testing.T) {
	f := newMonitorFixture()
	s := baseSnapshot()

	err := f.monitor.Tick(context.Background(), monitorTask(s))

	require.NoError(t, err)
	assert.Empty(t, f.snapshots.appended)
}

func TestMonitor_TickInboundDelay(t *testing.T) {
	f := newMonitorFixture()
	now := time.Now().UTC()

	s := baseSnapshot()
	s.ScheduledOut = tp(now.Add(3 * time.Hour))
	s.ScheduledIn = tp(now.Add(9 * time.Hour))
	s.InboundFaFlightID = "UAL99-123"
	f.provider.byIdent[s.FlightKey] = s
	f.snapshots.latest[s.FlightKey] = s
	f.snapshots.fired[s.FlightKey] = entity.MilestoneState{entity.Milestone4h}

	inboundSched := now.Add(time.Hour)
	inboundEst := inboundSched.Add(50 * time.Minute)
	f.provider.byID["UAL99-123"] = &entity.FlightSnapshot{
		Ident:       "UA99",
		Origin:      entity.Airport{Code: "ORD", City: "Chicago"},
		Status:      "En Route",
		ScheduledIn: &inboundSched,
		EstimatedIn: &inboundEst,
		ActualOut:   tp(now.Add(-2 * time.Hour)),
	}

	task := monitorTask(s)
	require.NoError(t, f.monitor.Tick(context.Background(), task))

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, entity.UpdateInboundDelay, f.publisher.published[0].Classification)
	require.Len(t, f.messenger.sent, 1)
	assert.Contains(t, f.messenger.sent[0].Text, "running late")

	// Dedup state persisted: the same delay does not re-alert.
	require.NotNil(t, f.snapshots.latest[s.FlightKey].InboundDelayAlertedMin)
	assert.Equal(t, 50, *f.snapshots.latest[s.FlightKey].InboundDelayAlertedMin)

	require.NoError(t, f.monitor.Tick(context.Background(), task))
	assert.Len(t, f.publisher.published, 1)
}

func TestMonitor_TickDepartureShiftRebuildsPlan(t *testing.T) {
	f := newMonitorFixture()
	now := time.Now().UTC()

	prev := baseSnapshot()
	prev.ScheduledOut = tp(now.Add(48 * time.Hour))
	prev.ScheduledIn = tp(now.Add(58 * time.Hour))
	f.snapshots.latest[prev.FlightKey] = prev

	next := *prev
	next.EstimatedOut = tp(prev.ScheduledOut.Add(45 * time.Minute))
	f.provider.byIdent[prev.FlightKey] = &next

	require.NoError(t, f.monitor.Tick(context.Background(), monitorTask(prev)))

	assert.Equal(t, []string{prev.FlightKey}, f.schedules.deletedKeys)
	assert.NotEmpty(t, f.schedules.createdPhases)
}
