package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	noteNumberPattern       = regexp.MustCompile(`^\d{4}NC\d{6}$`)
	commitmentNumberPattern = regexp.MustCompile(`^\d{4}NE\d+$`)
)

// Column widths of the stored text fields.
const (
	MaxCommitmentNumberLength = 30
	MaxProgramLength          = 30
	MaxClassificationLength   = 20
	MaxSectionNameLength      = 100
)

// CreditNote is a budgetary funding instrument with a fixed total value and a commitment deadline.
type CreditNote struct {
	NoteID     string          `json:"noteID"`
	Number     string          `json:"number"`
	ReceivedOn time.Time       `json:"receivedOn"`
	ExpiresOn  time.Time       `json:"expiresOn"`
	TotalValue decimal.Decimal `json:"totalValue"`

	// Budget classification
	PTRES         string `json:"ptres"`
	ExpenseNature string `json:"expenseNature"`
	Source        string `json:"source"`
	Program       string `json:"program"`
	ManagingUnit  string `json:"managingUnit"`

	Remarks   string `json:"remarks"`
	Cancelled bool   `json:"cancelled"`
	AuditFields
}

// Allocation is the portion of a note's total value assigned to one section.
type Allocation struct {
	AllocationID string          `json:"allocationID"`
	NoteID       string          `json:"noteID"`
	SectionID    string          `json:"sectionID"`
	Value        decimal.Decimal `json:"value"`
}

// AllocationDraft is an allocation row as submitted with a note save.
type AllocationDraft struct {
	SectionID string
	Value     decimal.Decimal
}

// NormalizeNoteNumber trims and upper-cases a note number and checks its format (e.g. 2026NC000001).
func NormalizeNoteNumber(number string) (string, error) {
	n := strings.ToUpper(strings.TrimSpace(number))
	if !noteNumberPattern.MatchString(n) {
		return "", fmt.Errorf("note number %q must match YYYYNCnnnnnn", number)
	}
	return n, nil
}

// NormalizeCommitmentNumber trims and upper-cases a commitment number and checks its format (e.g. 2026NE000123).
func NormalizeCommitmentNumber(number string) (string, error) {
	n := strings.ToUpper(strings.TrimSpace(number))
	if !commitmentNumberPattern.MatchString(n) {
		return "", fmt.Errorf("commitment number %q must match YYYYNE followed by digits", number)
	}
	if len(n) > MaxCommitmentNumberLength {
		return "", fmt.Errorf("commitment number cannot exceed %d characters", MaxCommitmentNumberLength)
	}
	return n, nil
}

// CheckClassificationLengths rejects budget classification fields wider than their columns.
func (n CreditNote) CheckClassificationLengths() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"ptres", n.PTRES, MaxClassificationLength},
		{"expenseNature", n.ExpenseNature, MaxClassificationLength},
		{"source", n.Source, MaxClassificationLength},
		{"program", n.Program, MaxProgramLength},
		{"managingUnit", n.ManagingUnit, MaxClassificationLength},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > f.max {
			return fmt.Errorf("%s cannot exceed %d characters", f.name, f.max)
		}
	}
	return nil
}

// IsNoteNumber reports whether number is a well-formed note number after normalization.
func IsNoteNumber(number string) bool {
	_, err := NormalizeNoteNumber(number)
	return err == nil
}

// IsCommitmentNumber reports whether number is a well-formed commitment number after normalization.
func IsCommitmentNumber(number string) bool {
	_, err := NormalizeCommitmentNumber(number)
	return err == nil
}

// NormalizeAllocationDrafts drops rows without a section or with a non-positive value,
// and merges rows that repeat a section. First-seen order is preserved.
func NormalizeAllocationDrafts(rows []AllocationDraft) []AllocationDraft {
	out := make([]AllocationDraft, 0, len(rows))
	index := make(map[string]int, len(rows))
	for _, row := range rows {
		sectionID := strings.TrimSpace(row.SectionID)
		if sectionID == "" || !row.Value.IsPositive() {
			continue
		}
		if i, ok := index[sectionID]; ok {
			out[i].Value = out[i].Value.Add(row.Value)
			continue
		}
		index[sectionID] = len(out)
		out = append(out, AllocationDraft{SectionID: sectionID, Value: row.Value})
	}
	return out
}

// SumDrafts returns the total value of the given rows.
func SumDrafts(rows []AllocationDraft) decimal.Decimal {
	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.Value)
	}
	return sum
}
