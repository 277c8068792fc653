package repositories

import (
	"context"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
)

// ReportingRepository defines read-only aggregate queries over the ledger.
// Results are plain reads and may lag concurrent writers.
type ReportingRepository interface {
	// ListAllocationUsages returns every allocation matching the classification fields of the filter,
	// with debited sums recomputed from source rows. Status is derived by the caller.
	ListAllocationUsages(ctx context.Context, filter domain.BalanceFilter) ([]domain.AllocationUsage, error)

	// ListFilterOptions returns distinct programs, and expense natures narrowed by program when given.
	ListFilterOptions(ctx context.Context, program string) (*domain.FilterOptions, error)
}

// AuditRepository defines persistence for the append-only audit trail
type AuditRepository interface {
	SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error

	// ListRecentAuditEntries returns up to limit entries ordered by recorded_at then audit_id, newest first.
	// A non-nil after skips every entry at or before the cursor position.
	ListRecentAuditEntries(ctx context.Context, limit int, after *domain.AuditCursor) ([]domain.AuditEntry, error)
}
