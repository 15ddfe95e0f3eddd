package repository

import (
	"context"
	"time"

	"proposal_gateway/internal/domain/entities"
	"proposal_gateway/internal/usecase/interfaces"

	"github.com/patrickmn/go-cache"
)

const (
	// memoryDraftFallbackTTL bounds drafts saved without an ExpiresAt.
	memoryDraftFallbackTTL = 24 * time.Hour
	memoryDraftCleanup     = time.Minute
)

// DraftMemoryRepository keeps drafts in process memory. Drafts are lost on
// restart and are not shared between instances. Expired drafts are evicted
// by the cache janitor whether or not they are read again.
type DraftMemoryRepository struct {
	drafts *cache.Cache
	now    func() time.Time
}

var _ interfaces.IDraftRepository = (*DraftMemoryRepository)(nil)

func NewDraftMemoryRepository() *DraftMemoryRepository {
	return NewDraftMemoryRepositoryWithCleanup(memoryDraftCleanup)
}

// NewDraftMemoryRepositoryWithCleanup sets how often expired drafts are swept.
func NewDraftMemoryRepositoryWithCleanup(interval time.Duration) *DraftMemoryRepository {
	return &DraftMemoryRepository{
		drafts: cache.New(memoryDraftFallbackTTL, interval),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *DraftMemoryRepository) Save(_ context.Context, d entities.Draft) error {
	ttl := memoryDraftFallbackTTL
	if !d.ExpiresAt.IsZero() {
		ttl = d.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			r.drafts.Delete(d.ID)
			return nil
		}
	}
	r.drafts.Set(d.ID, cloneDraft(d), ttl)
	return nil
}

func (r *DraftMemoryRepository) GetByID(_ context.Context, id string) (entities.Draft, error) {
	v, ok := r.drafts.Get(id)
	if !ok {
		return entities.Draft{}, nil
	}
	d := v.(entities.Draft)
	if d.Expired(r.now()) {
		return entities.Draft{}, nil
	}
	return cloneDraft(d), nil
}

func (r *DraftMemoryRepository) Delete(_ context.Context, id string) error {
	r.drafts.Delete(id)
	return nil
}

// Len reports the drafts currently held, expired or not yet swept included.
func (r *DraftMemoryRepository) Len() int {
	return r.drafts.ItemCount()
}

// cloneDraft copies the slice and map so callers never share state with the store.
func cloneDraft(d entities.Draft) entities.Draft {
	out := d
	if d.Form.RequestedServices != nil {
		out.Form.RequestedServices = append([]string{}, d.Form.RequestedServices...)
	}
	if d.Errors != nil {
		out.Errors = make(entities.FieldErrors, len(d.Errors))
		for k, v := range d.Errors {
			out.Errors[k] = v
		}
	}
	return out
}
