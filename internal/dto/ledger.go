package dto

import (
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveCommitmentRequest defines the data needed to create or edit a commitment.
type SaveCommitmentRequest struct {
	AllocationID string          `json:"allocationID" binding:"required"`
	Number       string          `json:"number" binding:"required,commitmentnumber"`
	Date         string          `json:"date" binding:"required,datetime=2006-01-02"`
	Value        decimal.Decimal `json:"value"`
	Description  string          `json:"description" binding:"max=500"`
}

// ListCommitmentsParams defines query parameters for listing commitments.
type ListCommitmentsParams struct {
	Search        string `form:"q"`
	NoteID        string `form:"noteID"`
	SectionID     string `form:"sectionID"`
	AllocationID  string `form:"allocationID"`
	Program       string `form:"program"`
	ExpenseNature string `form:"expenseNature"`
}

// ToFilter converts the parameters into a domain filter.
func (p ListCommitmentsParams) ToFilter() domain.CommitmentFilter {
	return domain.CommitmentFilter{
		NumberSearch:  p.Search,
		NoteID:        p.NoteID,
		SectionID:     p.SectionID,
		AllocationID:  p.AllocationID,
		Program:       p.Program,
		ExpenseNature: p.ExpenseNature,
	}
}

// CreateReturnRequest defines the data needed to hand funds of an allocation back.
type CreateReturnRequest struct {
	NoteID       string          `json:"noteID" binding:"required"`
	AllocationID string          `json:"allocationID" binding:"required"`
	Date         string          `json:"date" binding:"required,datetime=2006-01-02"`
	Value        decimal.Decimal `json:"value"`
	Description  string          `json:"description" binding:"max=500"`
}

// CreateSectionRequest defines the data needed to register a section.
type CreateSectionRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// BalanceQueryParams defines query parameters shared by balance reports.
type BalanceQueryParams struct {
	NoteID        string `form:"noteID"`
	SectionID     string `form:"sectionID"`
	Program       string `form:"program"`
	ExpenseNature string `form:"expenseNature"`
	Status        string `form:"status" binding:"omitempty,oneof=ACTIVE DEPLETED EXPIRED CANCELLED"`

	ExpiringWithinDays int `form:"expiringWithinDays" binding:"min=0,max=365"`
}

// ToFilter converts the parameters into a domain filter.
func (p BalanceQueryParams) ToFilter() domain.BalanceFilter {
	return domain.BalanceFilter{
		NoteID:             p.NoteID,
		SectionID:          p.SectionID,
		Program:            p.Program,
		ExpenseNature:      p.ExpenseNature,
		Status:             domain.NoteStatus(p.Status),
		ExpiringWithinDays: p.ExpiringWithinDays,
	}
}

// ListAuditParams defines query parameters for the audit trail.
type ListAuditParams struct {
	Limit  int    `form:"limit,default=50" binding:"min=1,max=500"`
	Cursor string `form:"cursor"`
}

// InsufficientBalanceResponse is returned when a debit exceeds the allocation balance.
type InsufficientBalanceResponse struct {
	Error        string          `json:"error"`
	AllocationID string          `json:"allocationID"`
	Requested    decimal.Decimal `json:"requested"`
	Available    decimal.Decimal `json:"available"`
}
