package services

import (
	portsrepo "github.com/SscSPs/credit_notes_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The notifier may be nil, in which case no change events are published.
func NewServiceContainer(repos portsrepo.RepositoryProvider, clock portssvc.Clock, notifier portssvc.ChangeNotifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The audit recorder is shared by every mutating service.
	container.Audit = NewAuditService(repos.AuditRepo)

	opts := []BaseServiceOption{
		WithAudit(container.Audit),
		WithNotifier(notifier),
		WithClock(clock),
	}

	container.Section = NewSectionService(repos.SectionRepo, opts...)
	container.CreditNote = NewCreditNoteService(repos.CreditNoteRepo, repos.SectionRepo, opts...)
	container.Commitment = NewCommitmentService(repos.CommitmentRepo, opts...)
	container.Return = NewReturnService(repos.ReturnRepo, opts...)
	container.Balance = NewBalanceService(
		repos.CreditNoteRepo,
		repos.CommitmentRepo,
		repos.ReturnRepo,
		repos.ReportingRepo,
		opts...,
	)

	return container
}
