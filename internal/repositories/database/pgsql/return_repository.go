package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/credit_notes_app/internal/apperrors"
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_notes_app/internal/core/ports/repositories"
	"github.com/SscSPs/credit_notes_app/internal/models"
	"github.com/SscSPs/credit_notes_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const returnColumns = `return_id, note_id, allocation_id, return_date, value, description,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxReturnRepository persists returns of value to the issuer.
type PgxReturnRepository struct {
	BaseRepository
	allocationLocker
}

func newPgxReturnRepository(pool *pgxpool.Pool) *PgxReturnRepository {
	return &PgxReturnRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReturnRepositoryWithTx = (*PgxReturnRepository)(nil)

func (r *PgxReturnRepository) FindReturnByID(ctx context.Context, returnID string) (*domain.Return, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+returnColumns+` FROM returns WHERE return_id = $1;`, returnID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to query return "+returnID, err)
	}
	return collectReturn(rows, returnID)
}

func (r *PgxReturnRepository) ListReturnsByNoteID(ctx context.Context, noteID string) ([]domain.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE note_id = $1 ORDER BY return_date DESC, created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, noteID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list returns for note "+noteID, err)
	}
	returns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Return])
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to scan returns", err)
	}
	return mapping.ToDomainReturnSlice(returns), nil
}

func (r *PgxReturnRepository) InsertReturn(ctx context.Context, tx pgx.Tx, ret domain.Return) error {
	m := mapping.ToModelReturn(ret)
	query := `
		INSERT INTO returns (` + returnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.ReturnID, m.NoteID, m.AllocationID, m.ReturnDate, m.Value, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: credit note %s", apperrors.ErrNotFound, m.NoteID)
		}
		return wrapWriteError("failed to insert return", err)
	}
	return nil
}

func (r *PgxReturnRepository) DeleteReturn(ctx context.Context, tx pgx.Tx, returnID string) (*domain.Return, error) {
	rows, err := tx.Query(ctx, `DELETE FROM returns WHERE return_id = $1 RETURNING `+returnColumns+`;`, returnID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to delete return "+returnID, err)
	}
	return collectReturn(rows, returnID)
}

func collectReturn(rows pgx.Rows, returnID string) (*domain.Return, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Return])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: return %s", apperrors.ErrNotFound, returnID)
		}
		return nil, apperrors.NewDatabaseError("failed to scan return "+returnID, err)
	}
	ret := mapping.ToDomainReturn(m)
	return &ret, nil
}
