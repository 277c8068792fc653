package services

import (
	"context"
	"errors"
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

// creditNoteService is the allocation engine: it owns note headers and their allocation sets.
type creditNoteService struct {
	BaseService
	noteRepo    portsrepo.CreditNoteRepositoryWithTx
	sectionRepo portsrepo.SectionRepository
}

// NewCreditNoteService creates a new credit note service.
func NewCreditNoteService(
	noteRepo portsrepo.CreditNoteRepositoryWithTx,
	sectionRepo portsrepo.SectionRepository,
	opts ...BaseServiceOption,
) portssvc.CreditNoteSvcFacade {
	return &creditNoteService{
		BaseService: newBaseService(opts...),
		noteRepo:    noteRepo,
		sectionRepo: sectionRepo,
	}
}

var _ portssvc.CreditNoteSvcFacade = (*creditNoteService)(nil)

func (s *creditNoteService) CreateOrUpdateNote(ctx context.Context, noteID string, req dto.SaveCreditNoteRequest, userID string) (*domain.CreditNote, []domain.Allocation, error) {
	creating := noteID == ""
	logger := s.GetLogger(ctx).With(slog.String("user_id", userID), slog.Bool("creating", creating))
	if !creating {
		logger = logger.With(slog.String("note_id", noteID))
	}

	header, err := noteHeaderFromRequest(req)
	if err != nil {
		logger.Warn("Rejected credit note header", slog.String("error", err.Error()))
		return nil, nil, err
	}

	drafts := domain.NormalizeAllocationDrafts(req.Drafts())
	for _, d := range drafts {
		if !domain.HasCentPrecision(d.Value) {
			return nil, nil, fmt.Errorf("%w: allocation value %s for section %s has more than two decimal places", apperrors.ErrValidation, d.Value, d.SectionID)
		}
		if !domain.InMoneyRange(d.Value) {
			return nil, nil, fmt.Errorf("%w: allocation value for section %s must be less than %s", apperrors.ErrValidation, d.SectionID, domain.MaxMoney.StringFixed(domain.MoneyPlaces))
		}
	}
	if sum := domain.SumDrafts(drafts); domain.ExceedsBalance(sum, header.TotalValue) {
		logger.Warn("Allocated total exceeds note value",
			slog.String("allocated", sum.StringFixed(2)),
			slog.String("total_value", header.TotalValue.StringFixed(2)))
		return nil, nil, fmt.Errorf("%w: allocated total %s exceeds note value %s",
			apperrors.ErrValidation, sum.StringFixed(2), header.TotalValue.StringFixed(2))
	}

	if err := s.ensureSectionsExist(ctx, drafts); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	var allocations []domain.Allocation
	err = withTx(ctx, s.noteRepo, func(tx pgx.Tx) error {
		if creating {
			header.NoteID = uuid.NewString()
			header.CreatedAt = now
			header.CreatedBy = userID
			header.LastUpdatedAt = now
			header.LastUpdatedBy = userID
			if err := s.noteRepo.InsertNote(ctx, tx, header); err != nil {
				return err
			}
			allocations = buildAllocations(header.NoteID, drafts, nil)
			return s.noteRepo.ReplaceAllocations(ctx, tx, header.NoteID, allocations)
		}

		existing, err := s.noteRepo.LockNoteForUpdate(ctx, tx, noteID)
		if err != nil {
			return err
		}
		prior, err := s.noteRepo.LockAllocationsByNoteID(ctx, tx, noteID)
		if err != nil {
			return err
		}
		if err := checkDebitedSections(prior, drafts); err != nil {
			return err
		}

		header.NoteID = existing.NoteID
		header.Cancelled = existing.Cancelled
		header.CreatedAt = existing.CreatedAt
		header.CreatedBy = existing.CreatedBy
		header.LastUpdatedAt = now
		header.LastUpdatedBy = userID
		if err := s.noteRepo.UpdateNote(ctx, tx, header); err != nil {
			return err
		}
		allocations = buildAllocations(header.NoteID, drafts, prior)
		return s.noteRepo.ReplaceAllocations(ctx, tx, header.NoteID, allocations)
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to save credit note", slog.String("number", header.Number))
		return nil, nil, err
	}

	action := domain.AuditUpdateNote
	if creating {
		action = domain.AuditCreateNote
	}
	s.afterCommit(ctx,
		domain.AuditEntry{
			ActorID:     userID,
			Action:      action,
			TargetTable: "credit_notes",
			TargetID:    header.NoteID,
			Detail: fmt.Sprintf("note %s value %s allocated to %d section(s)",
				header.Number, header.TotalValue.StringFixed(2), len(allocations)),
		},
		domain.LedgerEvent{Type: domain.EventNoteSaved, NoteID: header.NoteID, EntityID: header.NoteID},
	)

	logger.Info("Credit note saved", slog.String("note_id", header.NoteID), slog.Int("allocations", len(allocations)))
	return &header, allocations, nil
}

func (s *creditNoteService) DeleteNote(ctx context.Context, noteID string, userID string) error {
	var number string
	err := withTx(ctx, s.noteRepo, func(tx pgx.Tx) error {
		existing, err := s.noteRepo.LockNoteForUpdate(ctx, tx, noteID)
		if err != nil {
			return err
		}
		number = existing.Number
		// Debits in flight on any allocation must land before the cascade, not after it.
		if _, err := s.noteRepo.LockAllocationsByNoteID(ctx, tx, noteID); err != nil {
			return err
		}
		return s.noteRepo.DeleteNote(ctx, tx, noteID)
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to delete credit note", slog.String("note_id", noteID))
		return err
	}

	s.afterCommit(ctx,
		domain.AuditEntry{
			ActorID:     userID,
			Action:      domain.AuditDeleteNote,
			TargetTable: "credit_notes",
			TargetID:    noteID,
			Detail:      fmt.Sprintf("deleted note %s with its allocations, commitments and returns", number),
		},
		domain.LedgerEvent{Type: domain.EventNoteDeleted, NoteID: noteID, EntityID: noteID},
	)
	s.LogInfo(ctx, "Credit note deleted", slog.String("note_id", noteID), slog.String("user_id", userID))
	return nil
}

func (s *creditNoteService) SetNoteCancelled(ctx context.Context, noteID string, cancelled bool, userID string) (*domain.CreditNote, error) {
	now := time.Now().UTC()
	var note *domain.CreditNote
	err := withTx(ctx, s.noteRepo, func(tx pgx.Tx) error {
		existing, err := s.noteRepo.LockNoteForUpdate(ctx, tx, noteID)
		if err != nil {
			return err
		}
		if err := s.noteRepo.SetNoteCancelled(ctx, tx, noteID, cancelled, userID, now); err != nil {
			return err
		}
		existing.Cancelled = cancelled
		existing.LastUpdatedAt = now
		existing.LastUpdatedBy = userID
		note = existing
		return nil
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to change note cancellation", slog.String("note_id", noteID))
		return nil, err
	}

	action := domain.AuditReinstateNote
	if cancelled {
		action = domain.AuditCancelNote
	}
	s.afterCommit(ctx,
		domain.AuditEntry{
			ActorID:     userID,
			Action:      action,
			TargetTable: "credit_notes",
			TargetID:    noteID,
			Detail:      fmt.Sprintf("note %s cancelled=%t", note.Number, cancelled),
		},
		domain.LedgerEvent{Type: domain.EventNoteStatusChanged, NoteID: noteID, EntityID: noteID},
	)
	return note, nil
}

func (s *creditNoteService) GetNote(ctx context.Context, noteID string) (*domain.CreditNote, []domain.Allocation, error) {
	note, err := s.noteRepo.FindNoteByID(ctx, noteID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find credit note", slog.String("note_id", noteID))
		}
		return nil, nil, err
	}
	allocations, err := s.noteRepo.FindAllocationsByNoteID(ctx, noteID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load allocations", slog.String("note_id", noteID))
		return nil, nil, err
	}
	return note, allocations, nil
}

func (s *creditNoteService) ensureSectionsExist(ctx context.Context, drafts []domain.AllocationDraft) error {
	if len(drafts) == 0 {
		return nil
	}
	ids := make([]string, len(drafts))
	for i, d := range drafts {
		ids[i] = d.SectionID
	}
	found, err := s.sectionRepo.FindSectionsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up sections")
		return err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return fmt.Errorf("%w: section %s", apperrors.ErrNotFound, id)
		}
	}
	return nil
}

func noteHeaderFromRequest(req dto.SaveCreditNoteRequest) (domain.CreditNote, error) {
	number, err := domain.NormalizeNoteNumber(req.Number)
	if err != nil {
		return domain.CreditNote{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	receivedOn, err := domain.ParseDate(req.ReceivedOn)
	if err != nil {
		return domain.CreditNote{}, fmt.Errorf("%w: receivedOn must be a YYYY-MM-DD date", apperrors.ErrValidation)
	}
	expiresOn, err := domain.ParseDate(req.ExpiresOn)
	if err != nil {
		return domain.CreditNote{}, fmt.Errorf("%w: expiresOn must be a YYYY-MM-DD date", apperrors.ErrValidation)
	}
	if expiresOn.Before(receivedOn) {
		return domain.CreditNote{}, fmt.Errorf("%w: expiresOn cannot be before receivedOn", apperrors.ErrValidation)
	}
	if err := domain.ValidateAmount("totalValue", req.TotalValue); err != nil {
		return domain.CreditNote{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	note := domain.CreditNote{
		Number:        number,
		ReceivedOn:    receivedOn,
		ExpiresOn:     expiresOn,
		TotalValue:    req.TotalValue,
		PTRES:         strings.TrimSpace(req.PTRES),
		ExpenseNature: strings.TrimSpace(req.ExpenseNature),
		Source:        strings.TrimSpace(req.Source),
		Program:       strings.ToUpper(strings.TrimSpace(req.Program)),
		ManagingUnit:  strings.TrimSpace(req.ManagingUnit),
		Remarks:       strings.TrimSpace(req.Remarks),
	}
	if err := note.CheckClassificationLengths(); err != nil {
		return domain.CreditNote{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return note, nil
}

// checkDebitedSections rejects a new allocation set that would leave any prior allocation
// with more debited than allocated.
func checkDebitedSections(prior []domain.AllocationUsage, drafts []domain.AllocationDraft) error {
	next := make(map[string]domain.AllocationDraft, len(drafts))
	for _, d := range drafts {
		next[d.SectionID] = d
	}
	for _, p := range prior {
		debited := p.Debited()
		if !domain.RoundMoney(debited).IsPositive() {
			continue
		}
		d, kept := next[p.SectionID]
		if !kept {
			return fmt.Errorf("%w: section %s has %s committed or returned and cannot be removed from the note",
				apperrors.ErrValidation, sectionLabel(p), debited.StringFixed(2))
		}
		if domain.RoundMoney(d.Value).LessThan(domain.RoundMoney(debited)) {
			return fmt.Errorf("%w: section %s cannot be reduced to %s below its debited %s",
				apperrors.ErrValidation, sectionLabel(p), d.Value.StringFixed(2), debited.StringFixed(2))
		}
	}
	return nil
}

func sectionLabel(u domain.AllocationUsage) string {
	if u.SectionName != "" {
		return u.SectionName
	}
	return u.SectionID
}

// buildAllocations keeps the allocation ID of every section that survives the save.
func buildAllocations(noteID string, drafts []domain.AllocationDraft, prior []domain.AllocationUsage) []domain.Allocation {
	priorIDs := make(map[string]string, len(prior))
	for _, p := range prior {
		priorIDs[p.SectionID] = p.AllocationID
	}
	allocations := make([]domain.Allocation, len(drafts))
	for i, d := range drafts {
		id, ok := priorIDs[d.SectionID]
		if !ok {
			id = uuid.NewString()
		}
		allocations[i] = domain.Allocation{AllocationID: id, NoteID: noteID, SectionID: d.SectionID, Value: d.Value}
	}
	return allocations
}
