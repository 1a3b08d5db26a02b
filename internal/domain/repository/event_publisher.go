package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// EventPublisher defines the interface to the pub/sub event bus. Publishing
// is at-least-once; consumers dedup on flight key and occurrence time.
type EventPublisher interface {
	Publish(ctx context.Context, event *entity.UpdateEvent) error
	Close() error
}
