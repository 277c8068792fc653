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

// PgxSectionRepository manages the section directory.
type PgxSectionRepository struct {
	BaseRepository
}

func newPgxSectionRepository(pool *pgxpool.Pool) *PgxSectionRepository {
	return &PgxSectionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SectionRepository = (*PgxSectionRepository)(nil)

func (r *PgxSectionRepository) ListSections(ctx context.Context) ([]domain.Section, error) {
	rows, err := r.Pool.Query(ctx, `SELECT section_id, name, created_at FROM sections ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list sections", err)
	}
	sections, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Section])
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to scan sections", err)
	}

	out := make([]domain.Section, len(sections))
	for i, s := range sections {
		out[i] = mapping.ToDomainSection(s)
	}
	return out, nil
}

func (r *PgxSectionRepository) FindSectionsByIDs(ctx context.Context, sectionIDs []string) (map[string]domain.Section, error) {
	result := make(map[string]domain.Section, len(sectionIDs))
	if len(sectionIDs) == 0 {
		return result, nil
	}

	rows, err := r.Pool.Query(ctx, `SELECT section_id, name, created_at FROM sections WHERE section_id = ANY($1);`, sectionIDs)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to query sections", err)
	}
	sections, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Section])
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to scan sections", err)
	}
	for _, s := range sections {
		result[s.SectionID] = mapping.ToDomainSection(s)
	}
	return result, nil
}

func (r *PgxSectionRepository) SaveSection(ctx context.Context, section domain.Section) error {
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO sections (section_id, name, created_at) VALUES ($1, $2, $3);`,
		section.SectionID, section.Name, section.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: section %q", apperrors.ErrDuplicate, section.Name)
		}
		return wrapWriteError("failed to insert section "+section.Name, err)
	}
	return nil
}

func (r *PgxSectionRepository) DeleteSection(ctx context.Context, sectionID string) (*domain.Section, error) {
	rows, err := r.Pool.Query(ctx, `DELETE FROM sections WHERE section_id = $1 RETURNING section_id, name, created_at;`, sectionID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to delete section "+sectionID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Section])
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("%w: section %s", apperrors.ErrNotFound, sectionID)
		case isForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: section %s is still allocated", apperrors.ErrValidation, sectionID)
		}
		return nil, apperrors.NewDatabaseError("failed to delete section "+sectionID, err)
	}
	section := mapping.ToDomainSection(m)
	return &section, nil
}
