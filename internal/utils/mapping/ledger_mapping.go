package mapping

import (
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/SscSPs/credit_notes_app/internal/models"
)

func ToModelCommitment(d domain.Commitment) models.Commitment {
	return models.Commitment{
		CommitmentID:   d.CommitmentID,
		AllocationID:   d.AllocationID,
		Number:         d.Number,
		CommitmentDate: d.Date,
		Value:          d.Value,
		Description:    d.Description,
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

func ToDomainCommitment(m models.Commitment) domain.Commitment {
	return domain.Commitment{
		CommitmentID: m.CommitmentID,
		AllocationID: m.AllocationID,
		Number:       m.Number,
		Date:         domain.DateOnly(m.CommitmentDate),
		Value:        m.Value,
		Description:  m.Description,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

func ToDomainCommitmentDetailSlice(ms []models.CommitmentDetail) []domain.CommitmentDetail {
	out := make([]domain.CommitmentDetail, len(ms))
	for i, m := range ms {
		out[i] = domain.CommitmentDetail{
			Commitment:    ToDomainCommitment(m.Commitment),
			NoteID:        m.NoteID,
			NoteNumber:    m.NoteNumber,
			SectionID:     m.SectionID,
			SectionName:   m.SectionName,
			Program:       m.Program,
			ExpenseNature: m.ExpenseNature,
		}
	}
	return out
}

func ToModelReturn(d domain.Return) models.Return {
	return models.Return{
		ReturnID:     d.ReturnID,
		NoteID:       d.NoteID,
		AllocationID: d.AllocationID,
		ReturnDate:   d.Date,
		Value:        d.Value,
		Description:  d.Description,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

func ToDomainReturn(m models.Return) domain.Return {
	return domain.Return{
		ReturnID:     m.ReturnID,
		NoteID:       m.NoteID,
		AllocationID: m.AllocationID,
		Date:         domain.DateOnly(m.ReturnDate),
		Value:        m.Value,
		Description:  m.Description,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

func ToDomainReturnSlice(ms []models.Return) []domain.Return {
	out := make([]domain.Return, len(ms))
	for i, m := range ms {
		out[i] = ToDomainReturn(m)
	}
	return out
}

func ToDomainSection(m models.Section) domain.Section {
	return domain.Section{SectionID: m.SectionID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:     m.AuditID,
		ActorID:     m.ActorID,
		Action:      domain.AuditAction(m.Action),
		TargetTable: m.TargetTable,
		TargetID:    m.TargetID,
		Detail:      m.Detail,
		RecordedAt:  m.RecordedAt,
	}
}
