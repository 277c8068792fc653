package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/apperrors"
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_notes_app/internal/core/ports/repositories"
	"github.com/SscSPs/credit_notes_app/internal/models"
	"github.com/SscSPs/credit_notes_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const noteColumns = `note_id, number, received_on, expires_on, total_value, ptres, expense_nature,
	source, program, managing_unit, remarks, cancelled,
	created_at, created_by, last_updated_at, last_updated_by`

const allocationColumns = `allocation_id, note_id, section_id, value`

// PgxCreditNoteRepository persists notes and their allocation sets.
type PgxCreditNoteRepository struct {
	BaseRepository
}

func newPgxCreditNoteRepository(pool *pgxpool.Pool) *PgxCreditNoteRepository {
	return &PgxCreditNoteRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CreditNoteRepositoryWithTx = (*PgxCreditNoteRepository)(nil)

func (r *PgxCreditNoteRepository) FindNoteByID(ctx context.Context, noteID string) (*domain.CreditNote, error) {
	query := `SELECT ` + noteColumns + ` FROM credit_notes WHERE note_id = $1;`
	rows, err := r.Pool.Query(ctx, query, noteID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to query credit note "+noteID, err)
	}
	return collectNote(rows, noteID)
}

func (r *PgxCreditNoteRepository) ListNotes(ctx context.Context, filter domain.NoteFilter) ([]domain.CreditNote, error) {
	var where whereClause
	where.addContains("number", filter.NumberSearch)
	where.addEq("program", filter.Program)
	where.addEq("expense_nature", filter.ExpenseNature)
	where.addDateBound("received_on", ">=", filter.ReceivedFrom)
	where.addDateBound("received_on", "<=", filter.ReceivedTo)

	query := `SELECT ` + noteColumns + ` FROM credit_notes` + where.String() + ` ORDER BY received_on DESC, number;`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list credit notes", err)
	}
	notes, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CreditNote])
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to scan credit notes", err)
	}
	return mapping.ToDomainCreditNoteSlice(notes), nil
}

func (r *PgxCreditNoteRepository) FindAllocationsByNoteID(ctx context.Context, noteID string) ([]domain.Allocation, error) {
	query := `
		SELECT a.allocation_id, a.note_id, a.section_id, a.value
		FROM allocations a
		JOIN sections s ON s.section_id = a.section_id
		WHERE a.note_id = $1
		ORDER BY s.name;
	`
	rows, err := r.Pool.Query(ctx, query, noteID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to query allocations for note "+noteID, err)
	}
	allocations, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Allocation])
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to scan allocations", err)
	}
	return mapping.ToDomainAllocationSlice(allocations), nil
}

func (r *PgxCreditNoteRepository) LockNoteForUpdate(ctx context.Context, tx pgx.Tx, noteID string) (*domain.CreditNote, error) {
	query := `SELECT ` + noteColumns + ` FROM credit_notes WHERE note_id = $1 FOR UPDATE;`
	rows, err := tx.Query(ctx, query, noteID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to lock credit note "+noteID, err)
	}
	return collectNote(rows, noteID)
}

func (r *PgxCreditNoteRepository) LockAllocationsByNoteID(ctx context.Context, tx pgx.Tx, noteID string) ([]domain.AllocationUsage, error) {
	lockQuery := `SELECT allocation_id FROM allocations WHERE note_id = $1 ORDER BY allocation_id FOR UPDATE;`
	rows, err := tx.Query(ctx, lockQuery, noteID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to lock allocations for note "+noteID, err)
	}
	if _, err := pgx.CollectRows(rows, pgx.RowTo[string]); err != nil {
		return nil, apperrors.NewDatabaseError("failed to lock allocations for note "+noteID, err)
	}

	usageQuery := `SELECT ` + usageColumns + ` FROM allocation_usage WHERE note_id = $1 ORDER BY allocation_id;`
	rows, err = tx.Query(ctx, usageQuery, noteID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to read allocation usage for note "+noteID, err)
	}
	usages, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AllocationUsage])
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to scan allocation usage", err)
	}
	return mapping.ToDomainAllocationUsageSlice(usages), nil
}

func (r *PgxCreditNoteRepository) InsertNote(ctx context.Context, tx pgx.Tx, note domain.CreditNote) error {
	m := mapping.ToModelCreditNote(note)
	query := `
		INSERT INTO credit_notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.NoteID, m.Number, m.ReceivedOn, m.ExpiresOn, m.TotalValue, m.PTRES, m.ExpenseNature,
		m.Source, m.Program, m.ManagingUnit, m.Remarks, m.Cancelled,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: credit note number %s", apperrors.ErrDuplicate, m.Number)
		}
		return wrapWriteError("failed to insert credit note "+m.Number, err)
	}
	return nil
}

func (r *PgxCreditNoteRepository) UpdateNote(ctx context.Context, tx pgx.Tx, note domain.CreditNote) error {
	m := mapping.ToModelCreditNote(note)
	query := `
		UPDATE credit_notes
		SET number = $2, received_on = $3, expires_on = $4, total_value = $5, ptres = $6,
		    expense_nature = $7, source = $8, program = $9, managing_unit = $10, remarks = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE note_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.NoteID, m.Number, m.ReceivedOn, m.ExpiresOn, m.TotalValue, m.PTRES,
		m.ExpenseNature, m.Source, m.Program, m.ManagingUnit, m.Remarks,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: credit note number %s", apperrors.ErrDuplicate, m.Number)
		}
		return wrapWriteError("failed to update credit note "+m.NoteID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: credit note %s", apperrors.ErrNotFound, m.NoteID)
	}
	return nil
}

func (r *PgxCreditNoteRepository) ReplaceAllocations(ctx context.Context, tx pgx.Tx, noteID string, allocations []domain.Allocation) error {
	if _, err := tx.Exec(ctx, `DELETE FROM allocations WHERE note_id = $1;`, noteID); err != nil {
		return apperrors.NewDatabaseError("failed to clear allocations for note "+noteID, err)
	}
	if len(allocations) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	insert := `INSERT INTO allocations (` + allocationColumns + `) VALUES ($1, $2, $3, $4);`
	for _, a := range allocations {
		batch.Queue(insert, a.AllocationID, noteID, a.SectionID, a.Value)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: section referenced by allocation", apperrors.ErrNotFound)
		}
		return wrapWriteError("failed to insert allocations for note "+noteID, err)
	}
	return nil
}

func (r *PgxCreditNoteRepository) DeleteNote(ctx context.Context, tx pgx.Tx, noteID string) error {
	statements := []string{
		`DELETE FROM commitments WHERE allocation_id IN (SELECT allocation_id FROM allocations WHERE note_id = $1);`,
		`DELETE FROM returns WHERE note_id = $1;`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, noteID); err != nil {
			return apperrors.NewDatabaseError("failed to delete debits of note "+noteID, err)
		}
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM credit_notes WHERE note_id = $1;`, noteID)
	if err != nil {
		return apperrors.NewDatabaseError("failed to delete credit note "+noteID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: credit note %s", apperrors.ErrNotFound, noteID)
	}
	return nil
}

func (r *PgxCreditNoteRepository) SetNoteCancelled(ctx context.Context, tx pgx.Tx, noteID string, cancelled bool, userID string, now time.Time) error {
	query := `UPDATE credit_notes SET cancelled = $2, last_updated_at = $3, last_updated_by = $4 WHERE note_id = $1;`
	cmdTag, err := tx.Exec(ctx, query, noteID, cancelled, now, userID)
	if err != nil {
		return apperrors.NewDatabaseError("failed to update cancellation of note "+noteID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: credit note %s", apperrors.ErrNotFound, noteID)
	}
	return nil
}

func collectNote(rows pgx.Rows, noteID string) (*domain.CreditNote, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CreditNote])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: credit note %s", apperrors.ErrNotFound, noteID)
		}
		return nil, apperrors.NewDatabaseError("failed to scan credit note "+noteID, err)
	}
	note := mapping.ToDomainCreditNote(m)
	return &note, nil
}
