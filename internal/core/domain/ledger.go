package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commitment earmarks part of an allocation's value for a specific expenditure.
type Commitment struct {
	CommitmentID string          `json:"commitmentID"`
	AllocationID string          `json:"allocationID"`
	Number       string          `json:"number"`
	Date         time.Time       `json:"date"`
	Value        decimal.Decimal `json:"value"`
	Description  string          `json:"description"`
	AuditFields
}

// Return hands unused funds of an allocation back to the issuing authority.
type Return struct {
	ReturnID     string          `json:"returnID"`
	NoteID       string          `json:"noteID"`
	AllocationID string          `json:"allocationID"`
	Date         time.Time       `json:"date"`
	Value        decimal.Decimal `json:"value"`
	Description  string          `json:"description"`
	AuditFields
}

// Section is an organizational unit that receives allocations.
type Section struct {
	SectionID string    `json:"sectionID"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommitmentDetail is a commitment joined with the note and section it draws from.
type CommitmentDetail struct {
	Commitment
	NoteID        string `json:"noteID"`
	NoteNumber    string `json:"noteNumber"`
	SectionID     string `json:"sectionID"`
	SectionName   string `json:"sectionName"`
	Program       string `json:"program"`
	ExpenseNature string `json:"expenseNature"`
}
