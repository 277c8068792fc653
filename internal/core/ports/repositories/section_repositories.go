package repositories

import (
	"context"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
)

// SectionRepository defines persistence operations for the section directory
type SectionRepository interface {
	ListSections(ctx context.Context) ([]domain.Section, error)

	// FindSectionsByIDs returns the sections found, keyed by ID. Missing IDs are simply absent.
	FindSectionsByIDs(ctx context.Context, sectionIDs []string) (map[string]domain.Section, error)

	// SaveSection returns apperrors.ErrDuplicate when the name is taken.
	SaveSection(ctx context.Context, section domain.Section) error

	// DeleteSection returns apperrors.ErrNotFound when absent and apperrors.ErrValidation
	// while allocations still reference the section.
	DeleteSection(ctx context.Context, sectionID string) (*domain.Section, error)
}
