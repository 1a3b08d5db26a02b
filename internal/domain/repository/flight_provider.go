package repository

import (
	"context"
	"errors"

	"flightwatch-service/internal/domain/entity"
)

// ErrFlightNotFound is returned when the provider has no record for the
// requested flight, including after the alternate-identifier retry.
var ErrFlightNotFound = errors.New("flight not found")

// FlightProvider defines the interface to the external flight-data provider.
// Implementations return snapshots already normalized to the canonical
// field set.
type FlightProvider interface {
	// FetchByIdent looks a flight up by its public identifier and date,
	// retrying with the carrier-code-normalized alternate identifier
	// before giving up.
	FetchByIdent(ctx context.Context, ident, date string) (*entity.FlightSnapshot, error)

	// FetchByFaFlightID looks a flight up by the provider's unique
	// tracking id, used for inbound legs.
	FetchByFaFlightID(ctx context.Context, faFlightID string) (*entity.FlightSnapshot, error)
}
