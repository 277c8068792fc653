package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commitment is the commitments row.
type Commitment struct {
	CommitmentID   string          `db:"commitment_id"`
	AllocationID   string          `db:"allocation_id"`
	Number         string          `db:"number"`
	CommitmentDate time.Time       `db:"commitment_date"`
	Value          decimal.Decimal `db:"value"`
	Description    string          `db:"description"`
	AuditFields
}

// CommitmentDetail is a commitments row joined with its allocation, note and section.
type CommitmentDetail struct {
	Commitment
	NoteID        string `db:"note_id"`
	NoteNumber    string `db:"note_number"`
	SectionID     string `db:"section_id"`
	SectionName   string `db:"section_name"`
	Program       string `db:"program"`
	ExpenseNature string `db:"expense_nature"`
}

// Return is the returns row.
type Return struct {
	ReturnID     string          `db:"return_id"`
	NoteID       string          `db:"note_id"`
	AllocationID string          `db:"allocation_id"`
	ReturnDate   time.Time       `db:"return_date"`
	Value        decimal.Decimal `db:"value"`
	Description  string          `db:"description"`
	AuditFields
}

// Section is the sections row.
type Section struct {
	SectionID string    `db:"section_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// AuditEntry is the audit_log row.
type AuditEntry struct {
	AuditID     string    `db:"audit_id"`
	ActorID     string    `db:"actor_id"`
	Action      string    `db:"action"`
	TargetTable string    `db:"target_table"`
	TargetID    string    `db:"target_id"`
	Detail      string    `db:"detail"`
	RecordedAt  time.Time `db:"recorded_at"`
}
