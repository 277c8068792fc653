package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyStatus(t *testing.T) {
	today := date(2026, time.March, 10)

	tests := []struct {
		name      string
		balance   decimal.Decimal
		expiresOn time.Time
		cancelled bool
		want      domain.NoteStatus
	}{
		{"positive balance before expiry", decimal.NewFromInt(600), date(2026, time.December, 31), false, domain.StatusActive},
		{"expires today is still active", decimal.NewFromInt(1), today, false, domain.StatusActive},
		{"expired with balance", decimal.NewFromInt(600), date(2026, time.March, 9), false, domain.StatusExpired},
		{"zero balance", decimal.Zero, date(2026, time.December, 31), false, domain.StatusDepleted},
		{"negative balance", decimal.NewFromInt(-5), date(2026, time.December, 31), false, domain.StatusDepleted},
		{"depleted wins over expired", decimal.Zero, date(2025, time.January, 1), false, domain.StatusDepleted},
		{"sub-cent residue counts as depleted", decimal.RequireFromString("0.004"), date(2026, time.December, 31), false, domain.StatusDepleted},
		{"cancelled wins over everything", decimal.NewFromInt(600), date(2025, time.January, 1), true, domain.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyStatus(tt.balance, tt.expiresOn, today, tt.cancelled))
		})
	}
}

func TestClassifyStatus_IgnoresTimeOfDay(t *testing.T) {
	expiresOn := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	lateToday := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, domain.StatusActive, domain.ClassifyStatus(decimal.NewFromInt(10), expiresOn, lateToday, false))
}

func TestClassifyStatus_AdvancingDateNeverReactivates(t *testing.T) {
	expiresOn := date(2026, time.June, 30)
	balances := []decimal.Decimal{decimal.Zero, decimal.NewFromInt(100)}

	for _, balance := range balances {
		prev := domain.ClassifyStatus(balance, expiresOn, date(2026, time.January, 1), false)
		for day := date(2026, time.January, 2); day.Before(date(2027, time.January, 1)); day = day.AddDate(0, 0, 7) {
			next := domain.ClassifyStatus(balance, expiresOn, day, false)
			if prev != domain.StatusActive {
				assert.NotEqual(t, domain.StatusActive, next, "status must not return to active on %s", day.Format(domain.DateLayout))
			}
			if prev != next {
				assert.Equal(t, domain.StatusActive, prev)
				assert.Equal(t, domain.StatusExpired, next)
			}
			prev = next
		}
	}
}

func TestNoteStatus_IsValid(t *testing.T) {
	assert.True(t, domain.StatusExpired.IsValid())
	assert.False(t, domain.NoteStatus("VENCIDA").IsValid())
	assert.False(t, domain.NoteStatus("").IsValid())
}
