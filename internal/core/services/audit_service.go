package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/apperrors"
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_notes_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	DefaultAuditListLimit = 50
	MaxAuditListLimit     = 500
)

// auditService is the audit recorder. Writes happen outside any ledger transaction.
type auditService struct {
	BaseService
	repo portsrepo.AuditRepository
}

// NewAuditService creates the audit recorder.
func NewAuditService(repo portsrepo.AuditRepository) portssvc.AuditSvc {
	return &auditService{repo: repo}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

func (s *auditService) Record(ctx context.Context, entry domain.AuditEntry) {
	if entry.AuditID == "" {
		entry.AuditID = uuid.NewString()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	if err := s.repo.SaveAuditEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry",
			slog.String("action", string(entry.Action)),
			slog.String("target_table", entry.TargetTable),
			slog.String("target_id", entry.TargetID))
	}
}

func (s *auditService) ListRecent(ctx context.Context, limit int, cursor string) (*domain.AuditPage, error) {
	if limit <= 0 {
		limit = DefaultAuditListLimit
	}
	if limit > MaxAuditListLimit {
		return nil, fmt.Errorf("%w: limit cannot exceed %d", apperrors.ErrValidation, MaxAuditListLimit)
	}

	var after *domain.AuditCursor
	if cursor != "" {
		at, id, err := pagination.DecodeToken(cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		after = &domain.AuditCursor{RecordedAt: at, AuditID: id}
	}

	// One extra row tells whether another page exists.
	entries, err := s.repo.ListRecentAuditEntries(ctx, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit entries", slog.Int("limit", limit))
		return nil, err
	}

	page := &domain.AuditPage{Entries: entries}
	if len(entries) > limit {
		page.Entries = entries[:limit]
		last := page.Entries[limit-1]
		page.NextCursor = pagination.EncodeToken(last.RecordedAt, last.AuditID)
	}
	if page.Entries == nil {
		page.Entries = []domain.AuditEntry{}
	}
	return page, nil
}
