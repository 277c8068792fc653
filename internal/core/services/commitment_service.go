package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/apperrors"
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_notes_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type commitmentService struct {
	BaseService
	repo portsrepo.CommitmentRepositoryWithTx
}

// NewCommitmentService creates the commitment validator/writer.
func NewCommitmentService(repo portsrepo.CommitmentRepositoryWithTx, opts ...BaseServiceOption) portssvc.CommitmentSvcFacade {
	return &commitmentService{
		BaseService: newBaseService(opts...),
		repo:        repo,
	}
}

var _ portssvc.CommitmentSvcFacade = (*commitmentService)(nil)

type commitmentInput struct {
	allocationID string
	number       string
	date         time.Time
	value        decimal.Decimal
	description  string
}

func parseCommitmentRequest(req dto.SaveCommitmentRequest) (commitmentInput, error) {
	allocationID := strings.TrimSpace(req.AllocationID)
	if allocationID == "" {
		return commitmentInput{}, fmt.Errorf("%w: allocationID is required", apperrors.ErrValidation)
	}
	number, err := domain.NormalizeCommitmentNumber(req.Number)
	if err != nil {
		return commitmentInput{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return commitmentInput{}, fmt.Errorf("%w: date must be a YYYY-MM-DD date", apperrors.ErrValidation)
	}
	if err := domain.ValidateAmount("value", req.Value); err != nil {
		return commitmentInput{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return commitmentInput{
		allocationID: allocationID,
		number:       number,
		date:         date,
		value:        req.Value,
		description:  strings.TrimSpace(req.Description),
	}, nil
}

func (s *commitmentService) CreateCommitment(ctx context.Context, req dto.SaveCommitmentRequest, userID string) (*domain.Commitment, error) {
	in, err := parseCommitmentRequest(req)
	if err != nil {
		return nil, err
	}
	logger := s.GetLogger(ctx).With(
		slog.String("allocation_id", in.allocationID),
		slog.String("number", in.number),
		slog.String("user_id", userID))

	now := time.Now().UTC()
	commitment := domain.Commitment{
		CommitmentID: uuid.NewString(),
		AllocationID: in.allocationID,
		Number:       in.number,
		Date:         in.date,
		Value:        in.value,
		Description:  in.description,
		AuditFields: domain.AuditFields{
			CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
		},
	}

	var noteID string
	err = withTx(ctx, s.repo, func(tx pgx.Tx) error {
		usage, err := s.repo.LockAllocationForUpdate(ctx, tx, in.allocationID)
		if err != nil {
			return err
		}
		noteID = usage.NoteID
		if usage.NoteCancelled {
			return fmt.Errorf("%w: note %s is cancelled and accepts no new commitments", apperrors.ErrValidation, usage.NoteNumber)
		}
		if err := s.ensureNumberFree(ctx, tx, in.number, ""); err != nil {
			return err
		}
		available := usage.Balance()
		if domain.ExceedsBalance(in.value, available) {
			return apperrors.NewInsufficientBalanceError(in.allocationID, in.value, domain.RoundMoney(available))
		}
		return s.repo.InsertCommitment(ctx, tx, commitment)
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to create commitment",
			slog.String("allocation_id", in.allocationID), slog.String("number", in.number))
		return nil, err
	}

	s.afterCommit(ctx,
		domain.AuditEntry{
			ActorID:     userID,
			Action:      domain.AuditCreateCommitment,
			TargetTable: "commitments",
			TargetID:    commitment.CommitmentID,
			Detail:      fmt.Sprintf("commitment %s of %s on allocation %s", commitment.Number, commitment.Value.StringFixed(2), commitment.AllocationID),
		},
		domain.LedgerEvent{Type: domain.EventCommitmentChanged, NoteID: noteID, AllocationID: commitment.AllocationID, EntityID: commitment.CommitmentID},
	)
	logger.Info("Commitment created", slog.String("commitment_id", commitment.CommitmentID))
	return &commitment, nil
}

func (s *commitmentService) UpdateCommitment(ctx context.Context, commitmentID string, req dto.SaveCommitmentRequest, userID string) (*domain.Commitment, error) {
	in, err := parseCommitmentRequest(req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var updated domain.Commitment
	var noteID string
	err = withTx(ctx, s.repo, func(tx pgx.Tx) error {
		existing, target, err := s.lockCommitment(ctx, tx, commitmentID, in.allocationID)
		if err != nil {
			return err
		}
		noteID = target.NoteID

		moving := existing.AllocationID != in.allocationID
		if target.NoteCancelled && (moving || in.value.GreaterThan(existing.Value)) {
			return fmt.Errorf("%w: note %s is cancelled and accepts no additional commitments", apperrors.ErrValidation, target.NoteNumber)
		}
		if err := s.ensureNumberFree(ctx, tx, in.number, commitmentID); err != nil {
			return err
		}

		available := target.Balance()
		if !moving {
			available = available.Add(existing.Value)
		}
		if domain.ExceedsBalance(in.value, available) {
			return apperrors.NewInsufficientBalanceError(in.allocationID, in.value, domain.RoundMoney(available))
		}

		updated = *existing
		updated.AllocationID = in.allocationID
		updated.Number = in.number
		updated.Date = in.date
		updated.Value = in.value
		updated.Description = in.description
		updated.LastUpdatedAt = now
		updated.LastUpdatedBy = userID
		return s.repo.UpdateCommitment(ctx, tx, updated)
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to update commitment", slog.String("commitment_id", commitmentID))
		return nil, err
	}

	s.afterCommit(ctx,
		domain.AuditEntry{
			ActorID:     userID,
			Action:      domain.AuditUpdateCommitment,
			TargetTable: "commitments",
			TargetID:    commitmentID,
			Detail:      fmt.Sprintf("commitment %s set to %s on allocation %s", updated.Number, updated.Value.StringFixed(2), updated.AllocationID),
		},
		domain.LedgerEvent{Type: domain.EventCommitmentChanged, NoteID: noteID, AllocationID: updated.AllocationID, EntityID: commitmentID},
	)
	s.LogInfo(ctx, "Commitment updated", slog.String("commitment_id", commitmentID), slog.String("user_id", userID))
	return &updated, nil
}

func (s *commitmentService) DeleteCommitment(ctx context.Context, commitmentID string, userID string) error {
	var deleted *domain.Commitment
	var noteID string
	err := withTx(ctx, s.repo, func(tx pgx.Tx) error {
		existing, usage, err := s.lockCommitment(ctx, tx, commitmentID, "")
		if err != nil {
			return err
		}
		deleted = existing
		noteID = usage.NoteID
		return s.repo.DeleteCommitment(ctx, tx, commitmentID)
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to delete commitment", slog.String("commitment_id", commitmentID))
		return err
	}

	s.afterCommit(ctx,
		domain.AuditEntry{
			ActorID:     userID,
			Action:      domain.AuditDeleteCommitment,
			TargetTable: "commitments",
			TargetID:    commitmentID,
			Detail:      fmt.Sprintf("deleted commitment %s of %s", deleted.Number, deleted.Value.StringFixed(2)),
		},
		domain.LedgerEvent{Type: domain.EventCommitmentChanged, NoteID: noteID, AllocationID: deleted.AllocationID, EntityID: commitmentID},
	)
	s.LogInfo(ctx, "Commitment deleted", slog.String("commitment_id", commitmentID), slog.String("user_id", userID))
	return nil
}

func (s *commitmentService) ListCommitments(ctx context.Context, filter domain.CommitmentFilter) ([]domain.CommitmentDetail, error) {
	commitments, err := s.repo.ListCommitments(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list commitments")
		return nil, err
	}
	return commitments, nil
}

func (s *commitmentService) ensureNumberFree(ctx context.Context, tx pgx.Tx, number, excludeID string) error {
	exists, err := s.repo.CommitmentNumberExists(ctx, tx, number, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: commitment number %s is already registered", apperrors.ErrDuplicate, number)
	}
	return nil
}

// lockCommitment locks the commitment's allocation, and targetID when it differs, before the
// commitment row itself. Note deletion takes allocation locks first too. It returns the locked
// commitment and the target allocation, which is the current one when targetID is empty.
func (s *commitmentService) lockCommitment(ctx context.Context, tx pgx.Tx, commitmentID, targetID string) (*domain.Commitment, *domain.AllocationUsage, error) {
	current, err := s.repo.FindCommitmentByID(ctx, commitmentID)
	if err != nil {
		return nil, nil, err
	}
	if targetID == "" {
		targetID = current.AllocationID
	}
	target, err := s.lockAllocations(ctx, tx, current.AllocationID, targetID)
	if err != nil {
		return nil, nil, err
	}
	locked, err := s.repo.FindCommitmentForUpdate(ctx, tx, commitmentID)
	if err != nil {
		return nil, nil, err
	}
	if locked.AllocationID != current.AllocationID {
		return nil, nil, fmt.Errorf("%w: commitment %s was moved to another allocation concurrently", apperrors.ErrValidation, commitmentID)
	}
	return locked, target, nil
}

// lockAllocations locks the source and target allocations in ID order and returns the target.
func (s *commitmentService) lockAllocations(ctx context.Context, tx pgx.Tx, sourceID, targetID string) (*domain.AllocationUsage, error) {
	ids := []string{sourceID}
	if targetID != sourceID {
		ids = append(ids, targetID)
		sort.Strings(ids)
	}
	var target *domain.AllocationUsage
	for _, id := range ids {
		usage, err := s.repo.LockAllocationForUpdate(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if id == targetID {
			target = usage
		}
	}
	return target, nil
}
