package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/shared"
)

// EntryRepository is the append-only store behind the audit trail.
type EntryRepository interface {
	Save(ctx context.Context, entry *Entry) error
	FindByResource(ctx context.Context, resourceType string, resourceID uuid.UUID, filter shared.Filter) ([]*Entry, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Entry, error)
	Count(ctx context.Context) (int64, error)
}
