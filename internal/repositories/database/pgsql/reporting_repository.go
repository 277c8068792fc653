package pgsql

import (
	"context"

	"github.com/SscSPs/credit_notes_app/internal/apperrors"
	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portsrepo "github.com/SscSPs/credit_notes_app/internal/core/ports/repositories"
	"github.com/SscSPs/credit_notes_app/internal/models"
	"github.com/SscSPs/credit_notes_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// ListAllocationUsages reads the allocation_usage view, which sums debits from source rows on every read.
func (r *reportingRepository) ListAllocationUsages(ctx context.Context, filter domain.BalanceFilter) ([]domain.AllocationUsage, error) {
	var where whereClause
	where.addEq("note_id", filter.NoteID)
	where.addEq("section_id", filter.SectionID)
	where.addEq("program", filter.Program)
	where.addEq("expense_nature", filter.ExpenseNature)

	query := `SELECT ` + usageColumns + ` FROM allocation_usage` + where.String() + ` ORDER BY note_expires_on, note_number, section_name;`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, apperrors.NewDatabaseError("error querying allocation usage", err)
	}
	usages, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AllocationUsage])
	if err != nil {
		return nil, apperrors.NewDatabaseError("error scanning allocation usage", err)
	}
	return mapping.ToDomainAllocationUsageSlice(usages), nil
}

// ListFilterOptions returns the distinct non-empty programs and expense natures of stored notes.
func (r *reportingRepository) ListFilterOptions(ctx context.Context, program string) (*domain.FilterOptions, error) {
	programs, err := r.distinct(ctx, `SELECT DISTINCT program FROM credit_notes WHERE program <> '' ORDER BY program;`)
	if err != nil {
		return nil, err
	}

	natureQuery := `SELECT DISTINCT expense_nature FROM credit_notes WHERE expense_nature <> '' ORDER BY expense_nature;`
	var args []any
	if program != "" {
		natureQuery = `SELECT DISTINCT expense_nature FROM credit_notes WHERE expense_nature <> '' AND program = $1 ORDER BY expense_nature;`
		args = append(args, program)
	}
	natures, err := r.distinct(ctx, natureQuery, args...)
	if err != nil {
		return nil, err
	}

	return &domain.FilterOptions{Programs: programs, ExpenseNatures: natures}, nil
}

func (r *reportingRepository) distinct(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDatabaseError("error querying filter options", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, apperrors.NewDatabaseError("error scanning filter option", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("error iterating filter options", err)
	}
	return values, nil
}
