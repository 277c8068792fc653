package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the precision at which balances are compared.
const MoneyPlaces = 2

// RoundMoney rounds d to two decimal places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// AllocationBalance is allocated - committed - returned.
func AllocationBalance(allocated, committed, returned decimal.Decimal) decimal.Decimal {
	return allocated.Sub(committed).Sub(returned)
}

// ExceedsBalance reports whether a debit of value cannot be covered by available.
// Both sides are compared at two-decimal precision.
func ExceedsBalance(value, available decimal.Decimal) bool {
	return RoundMoney(value).GreaterThan(RoundMoney(available))
}

// AllocationUsage is an allocation together with the sums debited against it
// and the note attributes needed to classify it.
type AllocationUsage struct {
	Allocation
	NoteNumber    string          `json:"noteNumber"`
	NoteExpiresOn time.Time       `json:"noteExpiresOn"`
	NoteCancelled bool            `json:"noteCancelled"`
	Program       string          `json:"program"`
	ExpenseNature string          `json:"expenseNature"`
	SectionName   string          `json:"sectionName"`
	Committed     decimal.Decimal `json:"committed"`
	Returned      decimal.Decimal `json:"returned"`
}

// Debited is the part of the allocation already consumed by commitments and returns.
func (u AllocationUsage) Debited() decimal.Decimal {
	return u.Committed.Add(u.Returned)
}

// Balance is the remaining amount available for new debits.
func (u AllocationUsage) Balance() decimal.Decimal {
	return AllocationBalance(u.Value, u.Committed, u.Returned)
}

// Status classifies the allocation against today's date.
func (u AllocationUsage) Status(today time.Time) NoteStatus {
	return ClassifyStatus(u.Balance(), u.NoteExpiresOn, today, u.NoteCancelled)
}

// NoteBalance is the sum of the balances of the note's allocations.
func NoteBalance(usages []AllocationUsage) decimal.Decimal {
	total := decimal.Zero
	for _, u := range usages {
		total = total.Add(u.Balance())
	}
	return total
}

// HasCentPrecision reports whether d carries no more than two decimal places.
func HasCentPrecision(d decimal.Decimal) bool {
	return d.Equal(RoundMoney(d))
}

// MaxMoney is the exclusive upper bound of a stored amount (NUMERIC(15,2)).
var MaxMoney = decimal.New(1, 13)

// InMoneyRange reports whether d fits a stored amount.
func InMoneyRange(d decimal.Decimal) bool {
	return d.Abs().LessThan(MaxMoney)
}

// ValidateAmount checks that a submitted amount is positive, in range and has cent precision.
func ValidateAmount(field string, d decimal.Decimal) error {
	switch {
	case !d.IsPositive():
		return fmt.Errorf("%s must be greater than zero", field)
	case !InMoneyRange(d):
		return fmt.Errorf("%s must be less than %s", field, MaxMoney.StringFixed(MoneyPlaces))
	case !HasCentPrecision(d):
		return fmt.Errorf("%s cannot have more than two decimal places", field)
	}
	return nil
}
