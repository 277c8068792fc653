package ncctl

import (
	"testing"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRow() domain.BalanceRow {
	usage := domain.AllocationUsage{
		Allocation: domain.Allocation{
			AllocationID: "a1",
			NoteID:       "n1",
			SectionID:    "s1",
			Value:        decimal.RequireFromString("1000"),
		},
		NoteNumber:    "2024NC000123",
		NoteExpiresOn: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Program:       "P1",
		SectionName:   "Engineering",
		Committed:     decimal.RequireFromString("250.5"),
		Returned:      decimal.RequireFromString("49.5"),
	}
	return domain.BalanceRow{AllocationUsage: usage, Balance: usage.Balance(), Status: domain.StatusActive}
}

func TestRenderBalances(t *testing.T) {
	out := RenderBalances([]domain.BalanceRow{sampleRow()})

	for _, want := range []string{"2024NC000123", "Engineering", "1000.00", "250.50", "49.50", "700.00", "2024-12-31", "ACTIVE"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderBalances_Empty(t *testing.T) {
	assert.Contains(t, RenderBalances(nil), "No allocations")
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(&domain.DashboardSummary{
		TotalAllocated:  decimal.RequireFromString("1000"),
		TotalUsed:       decimal.RequireFromString("300"),
		TotalBalance:    decimal.RequireFromString("700"),
		AllocationCount: 1,
		StatusCounts:    map[domain.NoteStatus]int{domain.StatusActive: 1},
	})

	assert.Contains(t, out, "Total balance")
	assert.Contains(t, out, "700.00")
	assert.Contains(t, out, "CANCELLED")
}

func TestRenderStatement(t *testing.T) {
	row := sampleRow()
	st := &domain.NoteStatement{
		Note: domain.CreditNote{
			NoteID:     "n1",
			Number:     "2024NC000123",
			ReceivedOn: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			ExpiresOn:  row.NoteExpiresOn,
			TotalValue: decimal.RequireFromString("1000"),
		},
		Balance:     row.Balance,
		Status:      domain.StatusActive,
		Allocations: []domain.BalanceRow{row},
		Commitments: []domain.CommitmentDetail{{
			Commitment: domain.Commitment{
				CommitmentID: "c1",
				AllocationID: "a1",
				Number:       "2024NE42",
				Date:         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				Value:        decimal.RequireFromString("250.5"),
			},
			SectionName: "Engineering",
		}},
	}

	out := RenderStatement(st)

	require.Contains(t, out, "2024NC000123")
	assert.Contains(t, out, "Commitments")
	assert.Contains(t, out, "2024NE42")
	assert.NotContains(t, out, "Returns")
}

func TestBalanceFilterFromFlags(t *testing.T) {
	t.Cleanup(func() { flagStatus, flagProgram = "", "" })

	flagStatus, flagProgram = "expired", "P1"
	filter, err := balanceFilterFromFlags()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, filter.Status)
	assert.Equal(t, "P1", filter.Program)

	flagStatus = "bogus"
	_, err = balanceFilterFromFlags()
	assert.Error(t, err)
}

func TestBalanceFilterFromFlags_ExpiringWithin(t *testing.T) {
	t.Cleanup(func() { flagExpiring = 0 })

	flagExpiring = 30
	filter, err := balanceFilterFromFlags()
	require.NoError(t, err)
	assert.Equal(t, 30, filter.ExpiringWithinDays)

	flagExpiring = -1
	_, err = balanceFilterFromFlags()
	assert.Error(t, err)
}

func TestRenderSectionBalances(t *testing.T) {
	out := RenderSectionBalances([]domain.SectionBalance{
		{SectionID: "s1", SectionName: "Engineering", AllocationCount: 2,
			Allocated: decimal.RequireFromString("1500"), Used: decimal.RequireFromString("400"), Balance: decimal.RequireFromString("1100")},
		{SectionID: "s2", SectionName: "Research", AllocationCount: 1,
			Allocated: decimal.RequireFromString("500"), Used: decimal.Zero, Balance: decimal.RequireFromString("500")},
	})

	for _, want := range []string{"Engineering", "Research", "1500.00", "400.00", "1100.00", "Total", "2000.00", "1600.00"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderSectionBalances_Empty(t *testing.T) {
	assert.Contains(t, RenderSectionBalances(nil), "No allocations")
}
