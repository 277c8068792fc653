package services

import (
	"context"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
)

// BalanceSvcFacade answers balance and status queries. Nothing it returns is cached;
// every call recomputes from source transactions.
type BalanceSvcFacade interface {
	QueryBalances(ctx context.Context, filter domain.BalanceFilter) ([]domain.BalanceRow, error)
	QueryNoteStatement(ctx context.Context, noteID string) (*domain.NoteStatement, error)
	ListNotes(ctx context.Context, filter domain.NoteFilter) ([]domain.NoteSummary, error)
	DashboardSummary(ctx context.Context, filter domain.BalanceFilter) (*domain.DashboardSummary, error)
	SectionBalances(ctx context.Context, filter domain.BalanceFilter) ([]domain.SectionBalance, error)

	// ListEligibleAllocations returns active allocations with a positive balance.
	ListEligibleAllocations(ctx context.Context) ([]domain.BalanceRow, error)

	FilterOptions(ctx context.Context, program string) (*domain.FilterOptions, error)
}

// AuditSvc records and lists audit facts
type AuditSvc interface {
	// Record persists an audit fact. Failures are logged and never returned.
	Record(ctx context.Context, entry domain.AuditEntry)

	// ListRecent returns a page of the trail. cursor is the NextCursor of the previous page, or empty.
	ListRecent(ctx context.Context, limit int, cursor string) (*domain.AuditPage, error)
}
