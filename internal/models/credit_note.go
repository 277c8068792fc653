package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields mirrors the audit columns shared by ledger tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// CreditNote is the credit_notes row.
type CreditNote struct {
	NoteID        string          `db:"note_id"`
	Number        string          `db:"number"`
	ReceivedOn    time.Time       `db:"received_on"`
	ExpiresOn     time.Time       `db:"expires_on"`
	TotalValue    decimal.Decimal `db:"total_value"`
	PTRES         string          `db:"ptres"`
	ExpenseNature string          `db:"expense_nature"`
	Source        string          `db:"source"`
	Program       string          `db:"program"`
	ManagingUnit  string          `db:"managing_unit"`
	Remarks       string          `db:"remarks"`
	Cancelled     bool            `db:"cancelled"`
	AuditFields
}

// Allocation is the allocations row.
type Allocation struct {
	AllocationID string          `db:"allocation_id"`
	NoteID       string          `db:"note_id"`
	SectionID    string          `db:"section_id"`
	Value        decimal.Decimal `db:"value"`
}

// AllocationUsage is a row of the allocation_usage view.
type AllocationUsage struct {
	Allocation
	NoteNumber    string          `db:"note_number"`
	NoteExpiresOn time.Time       `db:"note_expires_on"`
	NoteCancelled bool            `db:"note_cancelled"`
	Program       string          `db:"program"`
	ExpenseNature string          `db:"expense_nature"`
	SectionName   string          `db:"section_name"`
	Committed     decimal.Decimal `db:"committed"`
	Returned      decimal.Decimal `db:"returned"`
}
