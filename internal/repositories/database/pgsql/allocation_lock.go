package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/credit_notes_app/internal/apperrors"
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/SscSPs/credit_notes_app/internal/models"
	"github.com/SscSPs/credit_notes_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const usageColumns = `allocation_id, note_id, section_id, value, note_number, note_expires_on,
	note_cancelled, program, expense_nature, section_name, committed, returned`

// allocationLocker serializes debits on an allocation row. Under READ COMMITTED the
// usage read that follows the lock sees every debit committed before the lock was granted.
type allocationLocker struct{}

func (allocationLocker) LockAllocationForUpdate(ctx context.Context, tx pgx.Tx, allocationID string) (*domain.AllocationUsage, error) {
	var locked string
	err := tx.QueryRow(ctx, `SELECT allocation_id FROM allocations WHERE allocation_id = $1 FOR UPDATE;`, allocationID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: allocation %s", apperrors.ErrNotFound, allocationID)
		}
		return nil, apperrors.NewDatabaseError("failed to lock allocation "+allocationID, err)
	}

	rows, err := tx.Query(ctx, `SELECT `+usageColumns+` FROM allocation_usage WHERE allocation_id = $1;`, allocationID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to read usage of allocation "+allocationID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AllocationUsage])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: allocation %s", apperrors.ErrNotFound, allocationID)
		}
		return nil, apperrors.NewDatabaseError("failed to scan usage of allocation "+allocationID, err)
	}
	usage := mapping.ToDomainAllocationUsage(m)
	return &usage, nil
}
