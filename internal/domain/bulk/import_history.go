package bulk

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
)

// ImportStatus represents the status of a price-list import run
type ImportStatus string

const (
	ImportStatusPending    ImportStatus = "pending"
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// IsValid checks if the status is valid
func (s ImportStatus) IsValid() bool {
	switch s {
	case ImportStatusPending, ImportStatusProcessing, ImportStatusCompleted, ImportStatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true if this is a terminal state
func (s ImportStatus) IsTerminal() bool {
	return s == ImportStatusCompleted || s == ImportStatusFailed
}

// ImportHistory tracks one asynchronous price-list import.
// Since imports are fire-and-forget, this record is the only place a
// supplier can observe the outcome of a run.
type ImportHistory struct {
	shared.BaseAggregateRoot
	UserID            uuid.UUID    `gorm:"type:uuid;not null;index"`
	SourceURL         string       `gorm:"size:255;not null"`
	Status            ImportStatus `gorm:"size:20;not null;default:pending"`
	CategoriesCreated int          `gorm:"not null;default:0"`
	ProductsCreated   int          `gorm:"not null;default:0"`
	ListingsCreated   int          `gorm:"not null;default:0"`
	Error             string       `gorm:"size:500"`
	StartedAt         *time.Time
	CompletedAt       *time.Time
}

// TableName returns the database table name
func (ImportHistory) TableName() string {
	return "import_histories"
}

// NewImportHistory creates a pending import record
func NewImportHistory(userID uuid.UUID, sourceURL string) (*ImportHistory, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Import owner cannot be empty")
	}
	if sourceURL == "" {
		return nil, shared.NewDomainError("INVALID_URL", "Source URL cannot be empty")
	}

	return &ImportHistory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		SourceURL:         sourceURL,
		Status:            ImportStatusPending,
	}, nil
}

// Start marks the import as running
func (h *ImportHistory) Start() error {
	if h.Status != ImportStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start import from state: %s", h.Status))
	}
	now := time.Now()
	h.Status = ImportStatusProcessing
	h.StartedAt = &now
	h.UpdatedAt = now
	h.IncrementVersion()
	return nil
}

// Complete records the counts of a successful run
func (h *ImportHistory) Complete(categories, products, listings int) error {
	if h.Status != ImportStatusProcessing {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete import from state: %s", h.Status))
	}
	now := time.Now()
	h.Status = ImportStatusCompleted
	h.CategoriesCreated = categories
	h.ProductsCreated = products
	h.ListingsCreated = listings
	h.CompletedAt = &now
	h.UpdatedAt = now
	h.IncrementVersion()
	return nil
}

// Fail records the failure reason
func (h *ImportHistory) Fail(reason string) error {
	if h.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fail import from state: %s", h.Status))
	}
	if len(reason) > 500 {
		reason = reason[:500]
	}
	now := time.Now()
	h.Status = ImportStatusFailed
	h.Error = reason
	h.CompletedAt = &now
	h.UpdatedAt = now
	h.IncrementVersion()
	return nil
}
