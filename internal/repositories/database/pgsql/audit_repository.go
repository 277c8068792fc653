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

type auditRepository struct {
	BaseRepository
}

func newAuditRepository(db *pgxpool.Pool) portsrepo.AuditRepository {
	return &auditRepository{BaseRepository: BaseRepository{Pool: db}}
}

// SaveAuditEntry appends to audit_log outside any ledger transaction.
func (r *auditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	query := `
		INSERT INTO audit_log (audit_id, actor_id, action, target_table, target_id, detail, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.AuditID, entry.ActorID, string(entry.Action), entry.TargetTable, entry.TargetID, entry.Detail, entry.RecordedAt,
	)
	if err != nil {
		return apperrors.NewDatabaseError("failed to insert audit entry", err)
	}
	return nil
}

func (r *auditRepository) ListRecentAuditEntries(ctx context.Context, limit int, after *domain.AuditCursor) ([]domain.AuditEntry, error) {
	args := []any{limit}
	where := ""
	if after != nil {
		where = "WHERE (recorded_at, audit_id) < ($2, $3)"
		args = append(args, after.RecordedAt, after.AuditID)
	}
	query := `
		SELECT audit_id, actor_id, action, target_table, target_id, detail, recorded_at
		FROM audit_log ` + where + `
		ORDER BY recorded_at DESC, audit_id DESC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list audit entries", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AuditEntry])
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to scan audit entries", err)
	}

	out := make([]domain.AuditEntry, len(entries))
	for i, e := range entries {
		out[i] = mapping.ToDomainAuditEntry(e)
	}
	return out, nil
}
