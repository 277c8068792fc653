package mapping

import (
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/SscSPs/credit_notes_app/internal/models"
)

func ToModelCreditNote(d domain.CreditNote) models.CreditNote {
	return models.CreditNote{
		NoteID:        d.NoteID,
		Number:        d.Number,
		ReceivedOn:    d.ReceivedOn,
		ExpiresOn:     d.ExpiresOn,
		TotalValue:    d.TotalValue,
		PTRES:         d.PTRES,
		ExpenseNature: d.ExpenseNature,
		Source:        d.Source,
		Program:       d.Program,
		ManagingUnit:  d.ManagingUnit,
		Remarks:       d.Remarks,
		Cancelled:     d.Cancelled,
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

func ToDomainCreditNote(m models.CreditNote) domain.CreditNote {
	return domain.CreditNote{
		NoteID:        m.NoteID,
		Number:        m.Number,
		ReceivedOn:    domain.DateOnly(m.ReceivedOn),
		ExpiresOn:     domain.DateOnly(m.ExpiresOn),
		TotalValue:    m.TotalValue,
		PTRES:         m.PTRES,
		ExpenseNature: m.ExpenseNature,
		Source:        m.Source,
		Program:       m.Program,
		ManagingUnit:  m.ManagingUnit,
		Remarks:       m.Remarks,
		Cancelled:     m.Cancelled,
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

func ToDomainCreditNoteSlice(ms []models.CreditNote) []domain.CreditNote {
	out := make([]domain.CreditNote, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCreditNote(m)
	}
	return out
}

func ToDomainAllocation(m models.Allocation) domain.Allocation {
	return domain.Allocation{
		AllocationID: m.AllocationID,
		NoteID:       m.NoteID,
		SectionID:    m.SectionID,
		Value:        m.Value,
	}
}

func ToDomainAllocationSlice(ms []models.Allocation) []domain.Allocation {
	out := make([]domain.Allocation, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAllocation(m)
	}
	return out
}

func ToDomainAllocationUsage(m models.AllocationUsage) domain.AllocationUsage {
	return domain.AllocationUsage{
		Allocation:    ToDomainAllocation(m.Allocation),
		NoteNumber:    m.NoteNumber,
		NoteExpiresOn: domain.DateOnly(m.NoteExpiresOn),
		NoteCancelled: m.NoteCancelled,
		Program:       m.Program,
		ExpenseNature: m.ExpenseNature,
		SectionName:   m.SectionName,
		Committed:     m.Committed,
		Returned:      m.Returned,
	}
}

func ToDomainAllocationUsageSlice(ms []models.AllocationUsage) []domain.AllocationUsage {
	out := make([]domain.AllocationUsage, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAllocationUsage(m)
	}
	return out
}

// Audit columns are shared by notes, allocations, commitments and returns.
func toModelAudit(d domain.AuditFields) models.AuditFields {
	return models.AuditFields(d)
}

func toDomainAudit(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields(m)
}
