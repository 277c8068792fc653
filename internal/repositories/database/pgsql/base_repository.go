package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/credit_notes_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes the ledger maps to domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNumericOutOfRange   = "22003"
	pgStringTooLong       = "22001"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction. Deferred constraint violations surface here.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: allocation is no longer valid (%s)", apperrors.ErrValidation, violatedConstraint(err))
		}
		return apperrors.NewDatabaseError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewDatabaseError("failed to rollback transaction", err)
	}
	return nil
}

func pgErrorCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func isUniqueViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgForeignKeyViolation
}

func violatedConstraint(err error) string {
	_, constraint := pgErrorCode(err)
	return constraint
}

// wrapWriteError maps values the columns cannot hold to validation errors.
func wrapWriteError(msg string, err error) error {
	switch code, _ := pgErrorCode(err); code {
	case pgNumericOutOfRange:
		return fmt.Errorf("%w: %s: value out of range", apperrors.ErrValidation, msg)
	case pgStringTooLong:
		return fmt.Errorf("%w: %s: text too long", apperrors.ErrValidation, msg)
	}
	return apperrors.NewDatabaseError(msg, err)
}
