package services

import (
	"context"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/SscSPs/credit_notes_app/internal/dto"
)

// CommitmentSvcFacade gates and persists commitment debits
type CommitmentSvcFacade interface {
	CreateCommitment(ctx context.Context, req dto.SaveCommitmentRequest, userID string) (*domain.Commitment, error)

	// UpdateCommitment re-validates the new value against the allocation balance with the old value credited back.
	UpdateCommitment(ctx context.Context, commitmentID string, req dto.SaveCommitmentRequest, userID string) (*domain.Commitment, error)

	DeleteCommitment(ctx context.Context, commitmentID string, userID string) error
	ListCommitments(ctx context.Context, filter domain.CommitmentFilter) ([]domain.CommitmentDetail, error)
}

// ReturnSvcFacade gates and persists return debits
type ReturnSvcFacade interface {
	CreateReturn(ctx context.Context, req dto.CreateReturnRequest, userID string) (*domain.Return, error)
	DeleteReturn(ctx context.Context, returnID string, userID string) error
}

// SectionSvcFacade manages the section directory
type SectionSvcFacade interface {
	ListSections(ctx context.Context) ([]domain.Section, error)
	CreateSection(ctx context.Context, req dto.CreateSectionRequest, userID string) (*domain.Section, error)
	DeleteSection(ctx context.Context, sectionID string, userID string) error
}
