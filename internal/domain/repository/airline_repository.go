package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// AirlineRepository defines the interface for airline reference lookups
type AirlineRepository interface {
	GetByIataCode(ctx context.Context, code string) (*entity.Airline, error)
}
