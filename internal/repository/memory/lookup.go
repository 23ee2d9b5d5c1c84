package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/RMahshie/soundmax/internal/repository"
	"github.com/RMahshie/soundmax/pkg/models"
	"github.com/google/uuid"
)

// LookupRepository keeps the lookup log in process memory
type LookupRepository struct {
	mu      sync.RWMutex
	lookups map[string]models.Lookup
}

// NewLookupRepository creates an empty in-memory lookup log
func NewLookupRepository() *LookupRepository {
	return &LookupRepository{lookups: make(map[string]models.Lookup)}
}

// Create stores a copy of lookup
func (r *LookupRepository) Create(ctx context.Context, lookup *models.Lookup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lookups[lookup.ID] = cloneLookup(*lookup)
	return nil
}

// GetByID retrieves a lookup by ID
func (r *LookupRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Lookup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lookup, ok := r.lookups[id.String()]
	if !ok {
		return nil, repository.ErrLookupNotFound
	}
	out := cloneLookup(lookup)
	return &out, nil
}

// ListRecent returns up to limit lookups, newest first
func (r *LookupRepository) ListRecent(ctx context.Context, limit int) ([]*models.Lookup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*models.Lookup, 0, len(r.lookups))
	for _, lookup := range r.lookups {
		l := cloneLookup(lookup)
		all = append(all, &l)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// cloneLookup copies the pointer fields so stored entries never alias
// caller memory
func cloneLookup(l models.Lookup) models.Lookup {
	if l.ErrorKind != nil {
		kind := *l.ErrorKind
		l.ErrorKind = &kind
	}
	if l.ErrorMessage != nil {
		msg := *l.ErrorMessage
		l.ErrorMessage = &msg
	}
	if l.Bands != nil {
		bands := *l.Bands
		l.Bands = &bands
	}
	return l
}
