package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoteStatus is the derived lifecycle state of a note or allocation. It is never stored.
type NoteStatus string

const (
	StatusActive    NoteStatus = "ACTIVE"
	StatusDepleted  NoteStatus = "DEPLETED"
	StatusExpired   NoteStatus = "EXPIRED"
	StatusCancelled NoteStatus = "CANCELLED"
)

// IsValid reports whether s is one of the known states.
func (s NoteStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusDepleted, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// ClassifyStatus derives the lifecycle state.
// Precedence: Cancelled, then Depleted (balance <= 0), then Expired (expiry before today), then Active.
// Dates are compared by calendar day only.
func ClassifyStatus(balance decimal.Decimal, expiresOn, today time.Time, cancelled bool) NoteStatus {
	if cancelled {
		return StatusCancelled
	}
	if !RoundMoney(balance).IsPositive() {
		return StatusDepleted
	}
	if DateOnly(expiresOn).Before(DateOnly(today)) {
		return StatusExpired
	}
	return StatusActive
}
