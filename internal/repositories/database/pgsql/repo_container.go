package pgsql

import (
	portsrepo "github.com/SscSPs/credit_notes_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CreditNoteRepo: newPgxCreditNoteRepository(dbPool),
		CommitmentRepo: newPgxCommitmentRepository(dbPool),
		ReturnRepo:     newPgxReturnRepository(dbPool),
		SectionRepo:    newPgxSectionRepository(dbPool),
		ReportingRepo:  newReportingRepository(dbPool),
		AuditRepo:      newAuditRepository(dbPool),
	}
}
