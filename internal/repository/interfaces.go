package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/soundmax/pkg/models"
	"github.com/google/uuid"
)

// ErrLookupNotFound is returned when no lookup has the requested ID
var ErrLookupNotFound = errors.New("lookup not found")

// LookupRepository defines the interface for the lookup log.
// Entries are written by the correction service and only read back by
// the API; they are never used to answer a correction request.
type LookupRepository interface {
	Create(ctx context.Context, lookup *models.Lookup) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lookup, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Lookup, error)
}
