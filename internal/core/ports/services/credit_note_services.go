package services

import (
	"context"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/SscSPs/credit_notes_app/internal/dto"
)

// CreditNoteReaderSvc defines read operations for credit notes
type CreditNoteReaderSvc interface {
	// GetNote retrieves a note header and its live allocations.
	GetNote(ctx context.Context, noteID string) (*domain.CreditNote, []domain.Allocation, error)
}

// CreditNoteWriterSvc defines write operations for credit notes
type CreditNoteWriterSvc interface {
	// CreateOrUpdateNote validates the header and allocation rows, then atomically writes the header
	// and replaces the note's allocation set. An empty noteID creates a new note.
	CreateOrUpdateNote(ctx context.Context, noteID string, req dto.SaveCreditNoteRequest, userID string) (*domain.CreditNote, []domain.Allocation, error)

	// DeleteNote removes the note with its allocations, commitments and returns in one transaction.
	DeleteNote(ctx context.Context, noteID string, userID string) error

	// SetNoteCancelled cancels or reinstates a note.
	SetNoteCancelled(ctx context.Context, noteID string, cancelled bool, userID string) (*domain.CreditNote, error)
}

// CreditNoteSvcFacade combines all credit note service interfaces
type CreditNoteSvcFacade interface {
	CreditNoteReaderSvc
	CreditNoteWriterSvc
}
