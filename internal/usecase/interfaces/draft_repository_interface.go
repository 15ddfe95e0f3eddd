package interfaces

import (
	"context"

	"proposal_gateway/internal/domain/entities"
)

// IDraftRepository persists wizard drafts between requests.
//
// GetByID returns a zero Draft (empty ID) and no error when the draft does
// not exist or has expired.
type IDraftRepository interface {
	Save(ctx context.Context, d entities.Draft) error
	GetByID(ctx context.Context, id string) (entities.Draft, error)
	Delete(ctx context.Context, id string) error
}
