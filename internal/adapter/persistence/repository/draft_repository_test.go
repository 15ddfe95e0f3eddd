package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"proposal_gateway/internal/domain/entities"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDraft(now time.Time) entities.Draft {
	return entities.Draft{
		ID:   "draft-1",
		Step: entities.StepServicesSelection,
		Form: entities.ProposalFormData{
			ClientName:        "Jane",
			ClientPhone:       "555-555-5555",
			ClientEmail:       "jane@example.com",
			PropertyType:      entities.PropertyTypeResidential,
			PropertySize:      1200,
			Region:            entities.RegionSouth,
			Budget:            5000,
			RequestedServices: []string{"Interior Painting"},
			SiteAnalysis:      "Flat lot",
		},
		Errors:    entities.FieldErrors{entities.FieldRequestedServices: "At least one service is required"},
		Reviewed:  true,
		LastError: "Failed to create proposal",
		CreatedAt: now.Add(-time.Minute),
		UpdatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestDraftMemoryRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := NewDraftMemoryRepository()
	repo.now = func() time.Time { return now }

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)

	d := sampleDraft(now)
	require.NoError(t, repo.Save(ctx, d))

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d, got)

	// returned copies are isolated from the store
	got.Form.RequestedServices[0] = "Carpentry Work"
	got.Errors["x"] = "y"
	again, _ := repo.GetByID(ctx, d.ID)
	assert.Equal(t, []string{"Interior Painting"}, again.Form.RequestedServices)
	assert.NotContains(t, again.Errors, "x")

	now = now.Add(2 * time.Hour)
	expired, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, expired.ID)

	require.NoError(t, repo.Save(ctx, sampleDraft(now)))
	require.NoError(t, repo.Delete(ctx, d.ID))
	deleted, _ := repo.GetByID(ctx, d.ID)
	assert.Empty(t, deleted.ID)
}

func TestDraftMemoryRepository_ExpiredDraftsAreNotHeld(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := NewDraftMemoryRepository()
	repo.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		d := sampleDraft(now)
		d.ID = fmt.Sprintf("stale-%d", i)
		d.ExpiresAt = now.Add(-time.Hour)
		require.NoError(t, repo.Save(ctx, d))
	}
	assert.Equal(t, 0, repo.Len())
}

func TestDraftMemoryRepository_JanitorEvictsUnreadDrafts(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftMemoryRepositoryWithCleanup(10 * time.Millisecond)

	for i := 0; i < 100; i++ {
		d := sampleDraft(time.Now().UTC())
		d.ID = fmt.Sprintf("abandoned-%d", i)
		d.ExpiresAt = time.Now().UTC().Add(30 * time.Millisecond)
		require.NoError(t, repo.Save(ctx, d))
	}
	require.Equal(t, 100, repo.Len())

	assert.Eventually(t, func() bool { return repo.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestDraftMemoryRepository_RefreshWhileReading(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftMemoryRepository()
	d := sampleDraft(time.Now().UTC())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				refreshed := d
				refreshed.ExpiresAt = time.Now().UTC().Add(time.Hour)
				_ = repo.Save(ctx, refreshed)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_, _ = repo.GetByID(ctx, d.ID)
			}
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
}

func TestDraftRedisRepository(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	repo := NewDraftRedisRepository(client)
	repo.now = func() time.Time { return now }

	d := sampleDraft(now)
	require.NoError(t, repo.Save(ctx, d))
	assert.True(t, mr.Exists("proposal:draft:draft-1"))
	assert.Equal(t, time.Hour, mr.TTL("proposal:draft:draft-1"))

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.Form, got.Form)
	assert.Equal(t, d.Errors, got.Errors)
	assert.Equal(t, d.Step, got.Step)
	assert.True(t, d.ExpiresAt.Equal(got.ExpiresAt))

	mr.FastForward(2 * time.Hour)
	gone, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, gone.ID)

	require.NoError(t, repo.Save(ctx, d))
	require.NoError(t, repo.Delete(ctx, d.ID))
	assert.False(t, mr.Exists("proposal:draft:draft-1"))

	past := sampleDraft(now)
	past.ExpiresAt = now.Add(-time.Second)
	require.NoError(t, repo.Save(ctx, past))
	assert.False(t, mr.Exists("proposal:draft:draft-1"))
}

func TestDraftRedisRepository_CorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	require.NoError(t, mr.Set("proposal:draft:bad", "{"))

	_, err := NewDraftRedisRepository(client).GetByID(context.Background(), "bad")
	assert.Error(t, err)
}

// fakeDynamo keeps items keyed by the "id" string attribute.
type fakeDynamo struct {
	items   map[string]map[string]types.AttributeValue
	lastPut *dynamodb.PutItemInput
	failGet error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func keyOf(key map[string]types.AttributeValue) string {
	if s, ok := key["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPut = in
	f.items[keyOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	delete(f.items, keyOf(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDraftDynamoRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	ddb := newFakeDynamo()
	repo := NewDraftDynamoRepository(ddb, "")
	repo.now = func() time.Time { return now }

	d := sampleDraft(now)
	require.NoError(t, repo.Save(ctx, d))
	require.NotNil(t, ddb.lastPut)
	assert.Equal(t, DefaultDraftsTableName, *ddb.lastPut.TableName)
	ttl, ok := ddb.lastPut.Item["expires_at"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "1778054889", ttl.Value)

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d, got)

	now = now.Add(3 * time.Hour)
	expired, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, expired.ID)

	require.NoError(t, repo.Delete(ctx, d.ID))
	assert.Empty(t, ddb.items)

	ddb.failGet = errors.New("throttled")
	_, err = repo.GetByID(ctx, d.ID)
	assert.EqualError(t, err, "throttled")
}

func TestDraftItemRoundTrip_EmptyDraft(t *testing.T) {
	it, err := toDraftItem(entities.Draft{ID: "x"})
	require.NoError(t, err)
	assert.Zero(t, it.ExpiresAt)
	assert.Empty(t, it.CreatedAt)

	d, err := fromDraftItem(it)
	require.NoError(t, err)
	assert.Equal(t, "x", d.ID)
	assert.True(t, d.ExpiresAt.IsZero())
	assert.Nil(t, d.Errors)
}
