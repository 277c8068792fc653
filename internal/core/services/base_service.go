package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/apperrors"
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_notes_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Audit    portssvc.AuditSvc
	Notifier portssvc.ChangeNotifier
	Clock    portssvc.Clock
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logWriteError logs client errors at warn level and everything else at error level.
func (s *BaseService) logWriteError(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrInsufficientBalance) {
		args := append([]any{slog.String("error", err.Error())}, keyvals...)
		s.GetLogger(ctx).Warn(msg, args...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

// Today returns the current calendar date from the configured clock.
func (s *BaseService) Today() time.Time {
	if s.Clock == nil {
		return domain.DateOnly(time.Now())
	}
	return domain.DateOnly(s.Clock.Today())
}

// afterCommit emits the audit fact and the change event of a committed mutation.
// Neither can fail the operation, and both outlive a cancelled request.
func (s *BaseService) afterCommit(ctx context.Context, entry domain.AuditEntry, event domain.LedgerEvent) {
	ctx = context.WithoutCancel(ctx)
	now := time.Now().UTC()
	if s.Audit != nil {
		entry.RecordedAt = now
		s.Audit.Record(ctx, entry)
	}
	if s.Notifier != nil {
		event.ActorID = entry.ActorID
		event.OccurredAt = now
		if err := s.Notifier.PublishLedgerEvent(ctx, event); err != nil {
			s.LogError(ctx, err, "Failed to publish ledger event",
				slog.String("event_type", string(event.Type)),
				slog.String("entity_id", event.EntityID))
		}
	}
}

// withTx runs fn inside a transaction from tm, committing on success and rolling back otherwise.
func withTx(ctx context.Context, tm portsrepo.TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := tm.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tm.Rollback(ctx, tx)
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tm.Commit(ctx, tx)
}

// BaseServiceOption configures the shared dependencies of a service.
type BaseServiceOption func(*BaseService)

// WithAudit sets the audit recorder.
func WithAudit(audit portssvc.AuditSvc) BaseServiceOption {
	return func(s *BaseService) { s.Audit = audit }
}

// WithNotifier sets the change notifier. A nil notifier disables publication.
func WithNotifier(notifier portssvc.ChangeNotifier) BaseServiceOption {
	return func(s *BaseService) { s.Notifier = notifier }
}

// WithClock sets the clock used for status classification.
func WithClock(clock portssvc.Clock) BaseServiceOption {
	return func(s *BaseService) { s.Clock = clock }
}

func newBaseService(opts ...BaseServiceOption) BaseService {
	var b BaseService
	for _, opt := range opts {
		opt(&b)
	}
	return b
}
