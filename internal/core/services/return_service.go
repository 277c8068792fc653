package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/apperrors"
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_notes_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type returnService struct {
	BaseService
	repo portsrepo.ReturnRepositoryWithTx
}

// NewReturnService creates the return validator/writer.
// Returns draw from the same capacity as commitments and are accepted on cancelled notes.
func NewReturnService(repo portsrepo.ReturnRepositoryWithTx, opts ...BaseServiceOption) portssvc.ReturnSvcFacade {
	return &returnService{
		BaseService: newBaseService(opts...),
		repo:        repo,
	}
}

var _ portssvc.ReturnSvcFacade = (*returnService)(nil)

func (s *returnService) CreateReturn(ctx context.Context, req dto.CreateReturnRequest, userID string) (*domain.Return, error) {
	noteID := strings.TrimSpace(req.NoteID)
	allocationID := strings.TrimSpace(req.AllocationID)
	if noteID == "" || allocationID == "" {
		return nil, fmt.Errorf("%w: noteID and allocationID are required", apperrors.ErrValidation)
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be a YYYY-MM-DD date", apperrors.ErrValidation)
	}
	if err := domain.ValidateAmount("value", req.Value); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now().UTC()
	ret := domain.Return{
		ReturnID:     uuid.NewString(),
		NoteID:       noteID,
		AllocationID: allocationID,
		Date:         date,
		Value:        req.Value,
		Description:  strings.TrimSpace(req.Description),
		AuditFields: domain.AuditFields{
			CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
		},
	}

	err = withTx(ctx, s.repo, func(tx pgx.Tx) error {
		usage, err := s.repo.LockAllocationForUpdate(ctx, tx, allocationID)
		if err != nil {
			return err
		}
		if usage.NoteID != noteID {
			return fmt.Errorf("%w: allocation %s does not belong to note %s", apperrors.ErrValidation, allocationID, noteID)
		}
		available := usage.Balance()
		if domain.ExceedsBalance(ret.Value, available) {
			return apperrors.NewInsufficientBalanceError(allocationID, ret.Value, domain.RoundMoney(available))
		}
		return s.repo.InsertReturn(ctx, tx, ret)
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to create return",
			slog.String("note_id", noteID), slog.String("allocation_id", allocationID))
		return nil, err
	}

	s.afterCommit(ctx,
		domain.AuditEntry{
			ActorID:     userID,
			Action:      domain.AuditCreateReturn,
			TargetTable: "returns",
			TargetID:    ret.ReturnID,
			Detail:      fmt.Sprintf("returned %s from allocation %s", ret.Value.StringFixed(2), allocationID),
		},
		domain.LedgerEvent{Type: domain.EventReturnChanged, NoteID: noteID, AllocationID: allocationID, EntityID: ret.ReturnID},
	)
	s.LogInfo(ctx, "Return created", slog.String("return_id", ret.ReturnID), slog.String("user_id", userID))
	return &ret, nil
}

func (s *returnService) DeleteReturn(ctx context.Context, returnID string, userID string) error {
	var deleted *domain.Return
	err := withTx(ctx, s.repo, func(tx pgx.Tx) error {
		var err error
		deleted, err = s.repo.DeleteReturn(ctx, tx, returnID)
		return err
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to delete return", slog.String("return_id", returnID))
		return err
	}

	s.afterCommit(ctx,
		domain.AuditEntry{
			ActorID:     userID,
			Action:      domain.AuditDeleteReturn,
			TargetTable: "returns",
			TargetID:    returnID,
			Detail:      fmt.Sprintf("deleted return of %s from allocation %s", deleted.Value.StringFixed(2), deleted.AllocationID),
		},
		domain.LedgerEvent{Type: domain.EventReturnChanged, NoteID: deleted.NoteID, AllocationID: deleted.AllocationID, EntityID: returnID},
	)
	return nil
}
