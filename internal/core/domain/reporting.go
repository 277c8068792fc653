package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceFilter narrows balance queries. Empty fields match everything.
type BalanceFilter struct {
	NoteID        string
	SectionID     string
	Program       string
	ExpenseNature string
	Status        NoteStatus

	// ExpiringWithinDays keeps only active allocations whose note expires within that many days.
	// Zero disables the window.
	ExpiringWithinDays int
}

// MaxExpiringWithinDays bounds the expiry window of a balance query.
const MaxExpiringWithinDays = 365

// ExpiresWithin reports whether an active row's note expires on or before today plus days.
func (r BalanceRow) ExpiresWithin(today time.Time, days int) bool {
	if r.Status != StatusActive {
		return false
	}
	return !DateOnly(r.NoteExpiresOn).After(DateOnly(today).AddDate(0, 0, days))
}

// BalanceRow is one allocation with its derived balance and status.
type BalanceRow struct {
	AllocationUsage
	Balance decimal.Decimal `json:"balance"`
	Status  NoteStatus      `json:"status"`
}

// NoteFilter narrows note listings. Zero receipt bounds are open.
type NoteFilter struct {
	NumberSearch  string
	Program       string
	ExpenseNature string
	Status        NoteStatus
	ReceivedFrom  time.Time
	ReceivedTo    time.Time
}

// ReceivedInRange reports whether a receipt date falls inside the filter's inclusive bounds.
func (f NoteFilter) ReceivedInRange(receivedOn time.Time) bool {
	d := DateOnly(receivedOn)
	if !f.ReceivedFrom.IsZero() && d.Before(DateOnly(f.ReceivedFrom)) {
		return false
	}
	if !f.ReceivedTo.IsZero() && d.After(DateOnly(f.ReceivedTo)) {
		return false
	}
	return true
}

// NoteSummary is a note with its derived balance and status.
type NoteSummary struct {
	CreditNote
	Allocated decimal.Decimal `json:"allocated"`
	Balance   decimal.Decimal `json:"balance"`
	Status    NoteStatus      `json:"status"`
}

// NoteStatement is the full ledger of a single note.
type NoteStatement struct {
	Note        CreditNote         `json:"note"`
	Balance     decimal.Decimal    `json:"balance"`
	Status      NoteStatus         `json:"status"`
	Allocations []BalanceRow       `json:"allocations"`
	Commitments []CommitmentDetail `json:"commitments"`
	Returns     []Return           `json:"returns"`
}

// CommitmentFilter narrows commitment listings.
type CommitmentFilter struct {
	NumberSearch  string
	NoteID        string
	SectionID     string
	AllocationID  string
	Program       string
	ExpenseNature string
}

// DashboardSummary aggregates balances over a filtered set of allocations.
type DashboardSummary struct {
	TotalAllocated  decimal.Decimal    `json:"totalAllocated"`
	TotalBalance    decimal.Decimal    `json:"totalBalance"`
	TotalUsed       decimal.Decimal    `json:"totalUsed"`
	AllocationCount int                `json:"allocationCount"`
	StatusCounts    map[NoteStatus]int `json:"statusCounts"`
}

// SectionBalance aggregates the allocations of one section.
type SectionBalance struct {
	SectionID       string          `json:"sectionId"`
	SectionName     string          `json:"sectionName"`
	Allocated       decimal.Decimal `json:"allocated"`
	Used            decimal.Decimal `json:"used"`
	Balance         decimal.Decimal `json:"balance"`
	AllocationCount int             `json:"allocationCount"`
}

// FilterOptions lists the distinct classification values present in stored notes.
type FilterOptions struct {
	Programs       []string `json:"programs"`
	ExpenseNatures []string `json:"expenseNatures"`
}
