package repositories

import (
	"context"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AllocationLocker serializes debits against a single allocation.
type AllocationLocker interface {
	// LockAllocationForUpdate locks the allocation row and, with the lock held, reads its debited sums.
	// Returns apperrors.ErrNotFound when the allocation does not exist.
	LockAllocationForUpdate(ctx context.Context, tx pgx.Tx, allocationID string) (*domain.AllocationUsage, error)
}

// CommitmentReader defines read operations for commitments
type CommitmentReader interface {
	FindCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error)
	ListCommitments(ctx context.Context, filter domain.CommitmentFilter) ([]domain.CommitmentDetail, error)
}

// CommitmentWriter defines write operations for commitments. All methods run inside the caller's transaction.
type CommitmentWriter interface {
	// FindCommitmentForUpdate locks and returns the commitment row.
	FindCommitmentForUpdate(ctx context.Context, tx pgx.Tx, commitmentID string) (*domain.Commitment, error)

	// CommitmentNumberExists reports whether another commitment already uses number.
	CommitmentNumberExists(ctx context.Context, tx pgx.Tx, number string, excludeID string) (bool, error)

	// InsertCommitment returns apperrors.ErrDuplicate on a taken number.
	InsertCommitment(ctx context.Context, tx pgx.Tx, commitment domain.Commitment) error
	UpdateCommitment(ctx context.Context, tx pgx.Tx, commitment domain.Commitment) error
	DeleteCommitment(ctx context.Context, tx pgx.Tx, commitmentID string) error
}

// CommitmentRepositoryWithTx combines commitment persistence with allocation locking and transactions
type CommitmentRepositoryWithTx interface {
	CommitmentReader
	CommitmentWriter
	AllocationLocker
	TransactionManager
}

// ReturnReader defines read operations for returns
type ReturnReader interface {
	FindReturnByID(ctx context.Context, returnID string) (*domain.Return, error)
	ListReturnsByNoteID(ctx context.Context, noteID string) ([]domain.Return, error)
}

// ReturnWriter defines write operations for returns. All methods run inside the caller's transaction.
type ReturnWriter interface {
	InsertReturn(ctx context.Context, tx pgx.Tx, ret domain.Return) error

	// DeleteReturn removes the return and yields the deleted row. Returns apperrors.ErrNotFound when absent.
	DeleteReturn(ctx context.Context, tx pgx.Tx, returnID string) (*domain.Return, error)
}

// ReturnRepositoryWithTx combines return persistence with allocation locking and transactions
type ReturnRepositoryWithTx interface {
	ReturnReader
	ReturnWriter
	AllocationLocker
	TransactionManager
}
