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

const commitmentColumns = `commitment_id, allocation_id, number, commitment_date, value, description,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxCommitmentRepository persists commitments against allocations.
type PgxCommitmentRepository struct {
	BaseRepository
	allocationLocker
}

func newPgxCommitmentRepository(pool *pgxpool.Pool) *PgxCommitmentRepository {
	return &PgxCommitmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CommitmentRepositoryWithTx = (*PgxCommitmentRepository)(nil)

func (r *PgxCommitmentRepository) FindCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	query := `SELECT ` + commitmentColumns + ` FROM commitments WHERE commitment_id = $1;`
	rows, err := r.Pool.Query(ctx, query, commitmentID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to query commitment "+commitmentID, err)
	}
	return collectCommitment(rows, commitmentID)
}

// ListCommitments returns commitments joined with their note and section, newest first.
func (r *PgxCommitmentRepository) ListCommitments(ctx context.Context, filter domain.CommitmentFilter) ([]domain.CommitmentDetail, error) {
	var where whereClause
	where.addContains("c.number", filter.NumberSearch)
	where.addEq("a.note_id", filter.NoteID)
	where.addEq("a.section_id", filter.SectionID)
	where.addEq("c.allocation_id", filter.AllocationID)
	where.addEq("n.program", filter.Program)
	where.addEq("n.expense_nature", filter.ExpenseNature)

	query := `
		SELECT c.commitment_id, c.allocation_id, c.number, c.commitment_date, c.value, c.description,
		       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by,
		       a.note_id, n.number AS note_number, a.section_id, s.name AS section_name,
		       n.program, n.expense_nature
		FROM commitments c
		JOIN allocations a ON a.allocation_id = c.allocation_id
		JOIN credit_notes n ON n.note_id = a.note_id
		JOIN sections s ON s.section_id = a.section_id` + where.String() + `
		ORDER BY c.commitment_date DESC, c.number;`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list commitments", err)
	}
	details, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CommitmentDetail])
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to scan commitments", err)
	}
	return mapping.ToDomainCommitmentDetailSlice(details), nil
}

func (r *PgxCommitmentRepository) FindCommitmentForUpdate(ctx context.Context, tx pgx.Tx, commitmentID string) (*domain.Commitment, error) {
	query := `SELECT ` + commitmentColumns + ` FROM commitments WHERE commitment_id = $1 FOR UPDATE;`
	rows, err := tx.Query(ctx, query, commitmentID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to lock commitment "+commitmentID, err)
	}
	return collectCommitment(rows, commitmentID)
}

func (r *PgxCommitmentRepository) CommitmentNumberExists(ctx context.Context, tx pgx.Tx, number string, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM commitments WHERE number = $1 AND commitment_id <> $2);`
	if err := tx.QueryRow(ctx, query, number, excludeID).Scan(&exists); err != nil {
		return false, apperrors.NewDatabaseError("failed to check commitment number "+number, err)
	}
	return exists, nil
}

func (r *PgxCommitmentRepository) InsertCommitment(ctx context.Context, tx pgx.Tx, commitment domain.Commitment) error {
	m := mapping.ToModelCommitment(commitment)
	query := `
		INSERT INTO commitments (` + commitmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.CommitmentID, m.AllocationID, m.Number, m.CommitmentDate, m.Value, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: commitment number %s", apperrors.ErrDuplicate, m.Number)
		}
		return wrapWriteError("failed to insert commitment "+m.Number, err)
	}
	return nil
}

func (r *PgxCommitmentRepository) UpdateCommitment(ctx context.Context, tx pgx.Tx, commitment domain.Commitment) error {
	m := mapping.ToModelCommitment(commitment)
	query := `
		UPDATE commitments
		SET allocation_id = $2, number = $3, commitment_date = $4, value = $5, description = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE commitment_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.CommitmentID, m.AllocationID, m.Number, m.CommitmentDate, m.Value, m.Description,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: commitment number %s", apperrors.ErrDuplicate, m.Number)
		}
		return wrapWriteError("failed to update commitment "+m.CommitmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, m.CommitmentID)
	}
	return nil
}

func (r *PgxCommitmentRepository) DeleteCommitment(ctx context.Context, tx pgx.Tx, commitmentID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM commitments WHERE commitment_id = $1;`, commitmentID)
	if err != nil {
		return apperrors.NewDatabaseError("failed to delete commitment "+commitmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, commitmentID)
	}
	return nil
}

func collectCommitment(rows pgx.Rows, commitmentID string) (*domain.Commitment, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Commitment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, commitmentID)
		}
		return nil, apperrors.NewDatabaseError("failed to scan commitment "+commitmentID, err)
	}
	c := mapping.ToDomainCommitment(m)
	return &c, nil
}
