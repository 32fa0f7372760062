package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/audit"
	"github.com/phf/backend/internal/domain/shared"
)

// EntryResponse represents an audit entry in API responses
type EntryResponse struct {
	ID           uuid.UUID `json:"id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   uuid.UUID `json:"resource_id"`
	Detail       string    `json:"detail,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// AuditService exposes read access to the audit trail
type AuditService struct {
	entryRepo audit.EntryRepository
}

// NewAuditService creates a new AuditService
func NewAuditService(entryRepo audit.EntryRepository) *AuditService {
	return &AuditService{entryRepo: entryRepo}
}

// ListByResource fetches the trail for one resource, newest first
func (s *AuditService) ListByResource(ctx context.Context, resourceType string, resourceID uuid.UUID, filter shared.Filter) ([]*EntryResponse, error) {
	entries, err := s.entryRepo.FindByResource(ctx, resourceType, resourceID, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(entries), nil
}

// List fetches a page of the full trail
func (s *AuditService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*EntryResponse], error) {
	entries, err := s.entryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.entryRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(toResponses(entries), total, filter.Page, filter.PageSize)
	return &page, nil
}

func toResponses(entries []*audit.Entry) []*EntryResponse {
	responses := make([]*EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, &EntryResponse{
			ID:           entry.ID,
			Action:       entry.Action.String(),
			ResourceType: entry.ResourceType,
			ResourceID:   entry.ResourceID,
			Detail:       entry.Detail,
			OccurredAt:   entry.OccurredAt,
		})
	}
	return responses
}
