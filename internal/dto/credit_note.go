package dto

import (
	"time"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveCreditNoteRequest carries a note header and its full allocation set.
// The same body is used to create and to edit a note.
type SaveCreditNoteRequest struct {
	Number        string                 `json:"number" binding:"required,notenumber"`
	ReceivedOn    string                 `json:"receivedOn" binding:"required,datetime=2006-01-02"`
	ExpiresOn     string                 `json:"expiresOn" binding:"required,datetime=2006-01-02"`
	TotalValue    decimal.Decimal        `json:"totalValue"`
	PTRES         string                 `json:"ptres" binding:"max=20"`
	ExpenseNature string                 `json:"expenseNature" binding:"max=20"`
	Source        string                 `json:"source" binding:"max=20"`
	Program       string                 `json:"program" binding:"max=30"`
	ManagingUnit  string                 `json:"managingUnit" binding:"max=20"`
	Remarks       string                 `json:"remarks"`
	Allocations   []AllocationRowRequest `json:"allocations"`
}

// AllocationRowRequest is one section row of a note save. Blank or non-positive rows are ignored.
type AllocationRowRequest struct {
	SectionID string          `json:"sectionID"`
	Value     decimal.Decimal `json:"value"`
}

// Drafts converts the submitted rows into domain drafts.
func (r SaveCreditNoteRequest) Drafts() []domain.AllocationDraft {
	drafts := make([]domain.AllocationDraft, len(r.Allocations))
	for i, row := range r.Allocations {
		drafts[i] = domain.AllocationDraft{SectionID: row.SectionID, Value: row.Value}
	}
	return drafts
}

// ListNotesParams defines query parameters for listing notes.
type ListNotesParams struct {
	Search        string `form:"q"`
	Program       string `form:"program"`
	ExpenseNature string `form:"expenseNature"`
	Status        string `form:"status" binding:"omitempty,oneof=ACTIVE DEPLETED EXPIRED CANCELLED"`
	ReceivedFrom  string `form:"receivedFrom" binding:"omitempty,datetime=2006-01-02"`
	ReceivedTo    string `form:"receivedTo" binding:"omitempty,datetime=2006-01-02"`
}

// ToFilter converts the parameters into a domain filter. Receipt bounds are validated at binding.
func (p ListNotesParams) ToFilter() domain.NoteFilter {
	filter := domain.NoteFilter{
		NumberSearch:  p.Search,
		Program:       p.Program,
		ExpenseNature: p.ExpenseNature,
		Status:        domain.NoteStatus(p.Status),
	}
	if d, err := domain.ParseDate(p.ReceivedFrom); err == nil {
		filter.ReceivedFrom = d
	}
	if d, err := domain.ParseDate(p.ReceivedTo); err == nil {
		filter.ReceivedTo = d
	}
	return filter
}

// CreditNoteResponse is the wire form of a note header.
type CreditNoteResponse struct {
	NoteID        string          `json:"noteID"`
	Number        string          `json:"number"`
	ReceivedOn    string          `json:"receivedOn"`
	ExpiresOn     string          `json:"expiresOn"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	PTRES         string          `json:"ptres"`
	ExpenseNature string          `json:"expenseNature"`
	Source        string          `json:"source"`
	Program       string          `json:"program"`
	ManagingUnit  string          `json:"managingUnit"`
	Remarks       string          `json:"remarks"`
	Cancelled     bool            `json:"cancelled"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// CreditNoteDetailResponse is a note header with its allocations.
type CreditNoteDetailResponse struct {
	CreditNoteResponse
	Allocations []domain.Allocation `json:"allocations"`
}

// NoteSummaryResponse is a note header with derived balance and status.
type NoteSummaryResponse struct {
	CreditNoteResponse
	Allocated decimal.Decimal   `json:"allocated"`
	Balance   decimal.Decimal   `json:"balance"`
	Status    domain.NoteStatus `json:"status"`
}

// ToCreditNoteResponse converts a domain.CreditNote to its response DTO.
func ToCreditNoteResponse(n *domain.CreditNote) CreditNoteResponse {
	return CreditNoteResponse{
		NoteID:        n.NoteID,
		Number:        n.Number,
		ReceivedOn:    n.ReceivedOn.Format(domain.DateLayout),
		ExpiresOn:     n.ExpiresOn.Format(domain.DateLayout),
		TotalValue:    n.TotalValue,
		PTRES:         n.PTRES,
		ExpenseNature: n.ExpenseNature,
		Source:        n.Source,
		Program:       n.Program,
		ManagingUnit:  n.ManagingUnit,
		Remarks:       n.Remarks,
		Cancelled:     n.Cancelled,
		CreatedAt:     n.CreatedAt,
		CreatedBy:     n.CreatedBy,
		LastUpdatedAt: n.LastUpdatedAt,
		LastUpdatedBy: n.LastUpdatedBy,
	}
}

// ToCreditNoteDetailResponse converts a note and its allocations.
func ToCreditNoteDetailResponse(n *domain.CreditNote, allocations []domain.Allocation) CreditNoteDetailResponse {
	if allocations == nil {
		allocations = []domain.Allocation{}
	}
	return CreditNoteDetailResponse{CreditNoteResponse: ToCreditNoteResponse(n), Allocations: allocations}
}

// ToNoteSummaryResponses converts a list of note summaries.
func ToNoteSummaryResponses(summaries []domain.NoteSummary) []NoteSummaryResponse {
	out := make([]NoteSummaryResponse, len(summaries))
	for i := range summaries {
		out[i] = NoteSummaryResponse{
			CreditNoteResponse: ToCreditNoteResponse(&summaries[i].CreditNote),
			Allocated:          summaries[i].Allocated,
			Balance:            summaries[i].Balance,
			Status:             summaries[i].Status,
		}
	}
	return out
}
