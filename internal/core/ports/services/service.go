package services

import (
	"context"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	CreditNote CreditNoteSvcFacade
	Commitment CommitmentSvcFacade
	Return     ReturnSvcFacade
	Section    SectionSvcFacade
	Balance    BalanceSvcFacade
	Audit      AuditSvc
}

// Clock supplies the current calendar date used for status classification.
type Clock interface {
	Today() time.Time
}

// ChangeNotifier publishes ledger changes to dependents after commit.
type ChangeNotifier interface {
	PublishLedgerEvent(ctx context.Context, event domain.LedgerEvent) error
}
