package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CreditNoteReader defines read operations for credit notes and their allocations
type CreditNoteReader interface {
	// FindNoteByID retrieves a note by its ID. Returns apperrors.ErrNotFound when absent.
	FindNoteByID(ctx context.Context, noteID string) (*domain.CreditNote, error)

	// ListNotes retrieves notes matching the classification filters of the given filter.
	// Status is derived and is not applied at this level.
	ListNotes(ctx context.Context, filter domain.NoteFilter) ([]domain.CreditNote, error)

	// FindAllocationsByNoteID retrieves the live allocations of a note.
	FindAllocationsByNoteID(ctx context.Context, noteID string) ([]domain.Allocation, error)
}

// CreditNoteWriter defines write operations for credit notes. All methods run inside the caller's transaction.
type CreditNoteWriter interface {
	// LockNoteForUpdate locks the note row. Returns apperrors.ErrNotFound when absent.
	LockNoteForUpdate(ctx context.Context, tx pgx.Tx, noteID string) (*domain.CreditNote, error)

	// LockAllocationsByNoteID locks the note's allocation rows and returns them with their debited sums.
	LockAllocationsByNoteID(ctx context.Context, tx pgx.Tx, noteID string) ([]domain.AllocationUsage, error)

	// InsertNote inserts a new note header. Returns apperrors.ErrDuplicate on a taken number.
	InsertNote(ctx context.Context, tx pgx.Tx, note domain.CreditNote) error

	// UpdateNote overwrites a note header. Returns apperrors.ErrDuplicate on a taken number.
	UpdateNote(ctx context.Context, tx pgx.Tx, note domain.CreditNote) error

	// ReplaceAllocations deletes every allocation of the note and inserts the given set.
	ReplaceAllocations(ctx context.Context, tx pgx.Tx, noteID string, allocations []domain.Allocation) error

	// DeleteNote deletes the note, cascading to allocations, commitments and returns.
	DeleteNote(ctx context.Context, tx pgx.Tx, noteID string) error

	// SetNoteCancelled sets the explicit cancellation flag.
	SetNoteCancelled(ctx context.Context, tx pgx.Tx, noteID string, cancelled bool, userID string, now time.Time) error
}

// CreditNoteRepositoryFacade combines all credit note repository interfaces
type CreditNoteRepositoryFacade interface {
	CreditNoteReader
	CreditNoteWriter
}

// CreditNoteRepositoryWithTx extends CreditNoteRepositoryFacade with transaction capabilities
type CreditNoteRepositoryWithTx interface {
	CreditNoteRepositoryFacade
	TransactionManager
}
