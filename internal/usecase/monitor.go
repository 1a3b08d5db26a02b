package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
)

// FlightMonitor runs one evaluation tick per due poll task: fetch snapshot,
// diff, detect milestones, check the inbound leg, publish and deliver what
// came out, persist. Every tick is a fresh activation; the only state shared
// between ticks lives in the snapshot and schedule stores.
type FlightMonitor struct {
	provider   repository.FlightProvider
	snapshots  repository.SnapshotRepository
	schedules  repository.ScheduleRepository
	messenger  repository.MessengerRepository
	publisher  repository.EventPublisher
	reconciler *ScheduleReconciler
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewFlightMonitor creates a new flight monitor
func NewFlightMonitor(
	provider repository.FlightProvider,
	snapshots repository.SnapshotRepository,
	schedules repository.ScheduleRepository,
	messenger repository.MessengerRepository,
	publisher repository.EventPublisher,
	reconciler *ScheduleReconciler,
	m *metrics.Metrics,
	logger logger.Logger,
) *FlightMonitor {
	return &FlightMonitor{
		provider:   provider,
		snapshots:  snapshots,
		schedules:  schedules,
		messenger:  messenger,
		publisher:  publisher,
		reconciler: reconciler,
		metrics:    m,
		logger:     logger,
	}
}

// Watch plans polling phases for a new subscription and stores them.
func (m *FlightMonitor) Watch(ctx context.Context, watch *entity.FlightWatch) error {
	now := time.Now().UTC()

	snapshot, err := m.provider.FetchByIdent(ctx, watch.Ident, watch.FlightDate)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return fmt.Errorf("flight %s is not trackable: %w", watch.FlightKey(), err)
		}
		return fmt.Errorf("fetch %s: %w", watch.FlightKey(), err)
	}

	departure := snapshot.BestDeparture()
	if departure == nil {
		return fmt.Errorf("flight %s has no known departure time", watch.FlightKey())
	}

	phases := PlanPhases(*departure, snapshot.BestArrival(), now)
	if err := m.schedules.CreatePhases(ctx, watch, phases); err != nil {
		return fmt.Errorf("create phases for %s: %w", watch.FlightKey(), err)
	}
	if err := m.snapshots.Append(ctx, watch.FlightKey(), snapshot, nil); err != nil {
		return fmt.Errorf("store first snapshot for %s: %w", watch.FlightKey(), err)
	}

	m.logger.Info("Flight watch created", "flightKey", watch.FlightKey(), "phases", len(phases))
	return nil
}

// Tick evaluates one flight once. Expected edge cases (flight not found, no
// previous snapshot, no arrival time) never fail the tick.
func (m *FlightMonitor) Tick(ctx context.Context, task *entity.PollTask) error {
	start := time.Now()
	defer func() {
		m.metrics.TickDuration.Observe(time.Since(start).Seconds())
	}()
	m.metrics.TicksProcessed.Inc()

	now := time.Now().UTC()

	next, err := m.provider.FetchByIdent(ctx, task.Ident, task.FlightDate)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			m.logger.Warn("Flight not trackable", "flightKey", task.FlightKey)
			return nil
		}
		m.metrics.ErrorsCount.WithLabelValues("provider_fetch").Inc()
		return fmt.Errorf("fetch %s: %w", task.FlightKey, err)
	}
	next.FlightKey = task.FlightKey
	next.FetchedAt = now

	// Dedup state is read here and conditionally written at the end of this
	// same activation; the store's conditional write is the race boundary.
	prev, fired, err := m.snapshots.GetLatest(ctx, task.FlightKey)
	if err != nil {
		m.metrics.ErrorsCount.WithLabelValues("snapshot_get").Inc()
		return fmt.Errorf("load history %s: %w", task.FlightKey, err)
	}

	changes := DiffSnapshots(prev, next)
	due := DetectMilestones(next.BestDeparture(), next.BestArrival(), fired, now)
	inbound, delayAlert, landedAlert := m.checkInbound(ctx, prev, next, now)

	if rebuilt, err := m.reconciler.ReconcileIfShifted(ctx, task.Watch(), prev, next, now); err != nil {
		m.metrics.ErrorsCount.WithLabelValues("reconcile").Inc()
		m.logger.Error("Failed to replace polling plan", "flightKey", task.FlightKey, "error", err)
	} else if rebuilt {
		m.metrics.PlansRebuilt.Inc()
	}

	events := BuildUpdateEvents(next, changes, due, inbound, delayAlert, landedAlert, now)

	var conn *entity.Connection
	if len(events) > 0 {
		conn = m.connectionContext(ctx, task, next)
	}

	for _, event := range events {
		m.dispatch(ctx, task, event, conn)
	}

	if err := m.snapshots.Append(ctx, task.FlightKey, next, fired.With(DueTags(due)...)); err != nil {
		m.metrics.ErrorsCount.WithLabelValues("snapshot_append").Inc()
		return fmt.Errorf("append snapshot %s: %w", task.FlightKey, err)
	}

	return nil
}

// checkInbound polls the aircraft's prior leg inside the pre-departure
// window and decides which inbound alerts are newly due, carrying the alert
// dedup values forward onto the snapshot about to be persisted.
func (m *FlightMonitor) checkInbound(ctx context.Context, prev, next *entity.FlightSnapshot, now time.Time) (*entity.InboundLegInfo, bool, bool) {
	// Carry dedup state forward regardless of whether we poll this tick.
	if prev != nil {
		next.InboundDelayAlertedMin = prev.InboundDelayAlertedMin
		next.InboundLastStatus = prev.InboundLastStatus
	}

	if next.InboundFaFlightID == "" || !ShouldPollInbound(next.BestDeparture(), now) {
		return nil, false, false
	}

	leg, err := m.provider.FetchByFaFlightID(ctx, next.InboundFaFlightID)
	if err != nil {
		m.logger.Warn("Failed to fetch inbound leg",
			"flightKey", next.FlightKey,
			"inboundFaFlightId", next.InboundFaFlightID,
			"error", err)
		return nil, false, false
	}

	inbound := BuildInboundLegInfo(leg)

	lastStatus := entity.InboundUnknown
	if next.InboundLastStatus != "" {
		lastStatus = entity.InboundStatus(next.InboundLastStatus)
	}

	delayAlert := ShouldAlertInboundDelay(inbound.DelayMinutes, next.InboundDelayAlertedMin)
	landedAlert := ShouldAlertInboundLanded(inbound.Status, lastStatus)

	if delayAlert {
		alerted := inbound.DelayMinutes
		next.InboundDelayAlertedMin = &alerted
	}
	next.InboundLastStatus = string(inbound.Status)

	return inbound, delayAlert, landedAlert
}

// connectionContext derives the connection relevant to this flight from the
// traveler's current flight set. Connection analysis failing never fails the
// tick; the message just goes out without a connection block.
func (m *FlightMonitor) connectionContext(ctx context.Context, task *entity.PollTask, next *entity.FlightSnapshot) *entity.Connection {
	keys, err := m.schedules.ActiveFlightsByPhone(ctx, task.Phone)
	if err != nil {
		m.logger.Warn("Failed to list traveler flights", "phone", task.Phone, "error", err)
		return nil
	}

	flights := []*entity.FlightSnapshot{next}
	for _, key := range keys {
		if key == task.FlightKey {
			continue
		}
		snap, _, err := m.snapshots.GetLatest(ctx, key)
		if err != nil || snap == nil {
			continue
		}
		flights = append(flights, snap)
	}

	return RelevantConnection(AnalyzeConnections(flights), task.FlightKey)
}

// dispatch publishes one event and hands the composed text to the delivery
// channel. Both legs are at-least-once; neither failing fails the tick.
func (m *FlightMonitor) dispatch(ctx context.Context, task *entity.PollTask, event *entity.UpdateEvent, conn *entity.Connection) {
	if err := m.publisher.Publish(ctx, event); err != nil {
		m.metrics.ErrorsCount.WithLabelValues("publish").Inc()
		m.logger.Error("Failed to publish update event",
			"flightKey", event.FlightKey,
			"classification", event.Classification,
			"error", err)
	} else {
		m.metrics.EventsPublished.Inc()
	}

	if event.Milestone != nil {
		m.metrics.MilestonesFired.WithLabelValues(string(event.Milestone.Tag)).Inc()
	}

	text := ComposeMessage(event, conn)
	if text == "" {
		m.metrics.ErrorsCount.WithLabelValues("compose").Inc()
		m.logger.Error("Composer produced no text",
			"flightKey", event.FlightKey,
			"classification", event.Classification)
		return
	}

	payload := &entity.Payload{
		Type:       entity.FlightUpdate,
		Phone:      task.Phone,
		Text:       text,
		ScheduleAt: time.Now().UTC(),
		CreatedAt:  time.Now().UTC(),
		Status:     "pending",
	}
	if _, err := m.messenger.SendPayload(ctx, payload); err != nil {
		m.metrics.ErrorsCount.WithLabelValues("send").Inc()
		m.logger.Error("Failed to send notification",
			"flightKey", event.FlightKey,
			"phone", task.Phone,
			"error", err)
		return
	}
	m.metrics.NotificationsSent.Inc()
}
