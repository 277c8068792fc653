package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/credit_notes_app/internal/apperrors"
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_notes_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/dto"
	"github.com/google/uuid"
)

type sectionService struct {
	BaseService
	repo portsrepo.SectionRepository
}

// NewSectionService creates the section directory service.
func NewSectionService(repo portsrepo.SectionRepository, opts ...BaseServiceOption) portssvc.SectionSvcFacade {
	return &sectionService{
		BaseService: newBaseService(opts...),
		repo:        repo,
	}
}

var _ portssvc.SectionSvcFacade = (*sectionService)(nil)

func (s *sectionService) ListSections(ctx context.Context) ([]domain.Section, error) {
	sections, err := s.repo.ListSections(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sections")
		return nil, err
	}
	return sections, nil
}

func (s *sectionService) CreateSection(ctx context.Context, req dto.CreateSectionRequest, userID string) (*domain.Section, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: section name cannot be blank", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(name) > domain.MaxSectionNameLength {
		return nil, fmt.Errorf("%w: section name cannot exceed %d characters", apperrors.ErrValidation, domain.MaxSectionNameLength)
	}

	section := domain.Section{
		SectionID: uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.SaveSection(ctx, section); err != nil {
		s.logWriteError(ctx, err, "Failed to save section", slog.String("name", name))
		return nil, err
	}

	s.afterCommit(ctx,
		domain.AuditEntry{
			ActorID:     userID,
			Action:      domain.AuditCreateSection,
			TargetTable: "sections",
			TargetID:    section.SectionID,
			Detail:      fmt.Sprintf("created section %s", name),
		},
		domain.LedgerEvent{Type: domain.EventSectionChanged, EntityID: section.SectionID},
	)
	return &section, nil
}

func (s *sectionService) DeleteSection(ctx context.Context, sectionID string, userID string) error {
	deleted, err := s.repo.DeleteSection(ctx, sectionID)
	if err != nil {
		s.logWriteError(ctx, err, "Failed to delete section", slog.String("section_id", sectionID))
		return err
	}

	s.afterCommit(ctx,
		domain.AuditEntry{
			ActorID:     userID,
			Action:      domain.AuditDeleteSection,
			TargetTable: "sections",
			TargetID:    sectionID,
			Detail:      fmt.Sprintf("deleted section %s", deleted.Name),
		},
		domain.LedgerEvent{Type: domain.EventSectionChanged, EntityID: sectionID},
	)
	return nil
}
