package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"proposal_gateway/internal/domain/entities"
	"proposal_gateway/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const draftKeyPrefix = "proposal:draft:"

// DraftRedisRepository stores each draft as a JSON string with a TTL that
// follows the draft's ExpiresAt.
type DraftRedisRepository struct {
	client *redis.Client
	now    func() time.Time
}

var _ interfaces.IDraftRepository = (*DraftRedisRepository)(nil)

func NewDraftRedisRepository(client *redis.Client) *DraftRedisRepository {
	return &DraftRedisRepository{
		client: client,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func draftKey(id string) string {
	return draftKeyPrefix + id
}

func (r *DraftRedisRepository) Save(ctx context.Context, d entities.Draft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	var ttl time.Duration
	if !d.ExpiresAt.IsZero() {
		ttl = d.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return r.Delete(ctx, d.ID)
		}
	}
	return r.client.Set(ctx, draftKey(d.ID), b, ttl).Err()
}

func (r *DraftRedisRepository) GetByID(ctx context.Context, id string) (entities.Draft, error) {
	b, err := r.client.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.Draft{}, nil
	}
	if err != nil {
		return entities.Draft{}, err
	}
	var d entities.Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return entities.Draft{}, err
	}
	return d, nil
}

func (r *DraftRedisRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, draftKey(id)).Err()
}
