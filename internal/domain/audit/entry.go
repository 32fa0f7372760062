package audit

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/shared"
)

// Action identifies the lifecycle operation an entry records.
type Action string

const (
	ActionCreate  Action = "CREATE"
	ActionUpdate  Action = "UPDATE"
	ActionSend    Action = "SEND"
	ActionReceive Action = "RECEIVE"
	ActionCancel  Action = "CANCEL"
	ActionSale    Action = "SALE"
	ActionAdjust  Action = "ADJUST"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionSend, ActionReceive,
		ActionCancel, ActionSale, ActionAdjust:
		return true
	}
	return false
}

func (a Action) String() string {
	return string(a)
}

// Entry is one immutable line in the audit trail. Entries are only ever
// appended; there is no update or delete path.
type Entry struct {
	shared.BaseEntity
	Action       Action    `gorm:"size:20;not null;index" json:"action"`
	ResourceType string    `gorm:"size:100;not null;index" json:"resource_type"`
	ResourceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"resource_id"`
	Detail       string    `gorm:"size:500" json:"detail"`
	OccurredAt   time.Time `gorm:"not null;index" json:"occurred_at"`
}

func (Entry) TableName() string {
	return "audit_entries"
}

// NewEntry records one lifecycle operation against a resource.
func NewEntry(action Action, resourceType string, resourceID uuid.UUID, detail string, occurredAt time.Time) (*Entry, error) {
	if !action.IsValid() {
		return nil, shared.NewValidationError("action", "Invalid audit action: "+action.String())
	}
	resourceType = strings.TrimSpace(resourceType)
	if resourceType == "" {
		return nil, shared.NewValidationError("resource_type", "Resource type cannot be empty")
	}
	if resourceID == uuid.Nil {
		return nil, shared.NewValidationError("resource_id", "Resource ID cannot be empty")
	}
	return &Entry{
		BaseEntity:   shared.NewBaseEntity(),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       strings.TrimSpace(detail),
		OccurredAt:   occurredAt,
	}, nil
}
