package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// MessengerRepository defines the interface for the outbound chat channel.
// Delivery is at-least-once; the returned task id identifies the message in
// the delivery service.
type MessengerRepository interface {
	SendPayload(ctx context.Context, payload *entity.Payload) (string, error)
}
