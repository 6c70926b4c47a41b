package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
)

// querier - общее подмножество pgxpool.Pool и pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SQLSTATE, при которых транзакцию можно повторить
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
)

// storeError приводит ошибку драйвера к ошибкам сервисного слоя
func storeError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("repository: %s: %w", op, service.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
			return fmt.Errorf("repository: %s: %w: %w", op, service.ErrRaceLost, err)
		}
	}
	return fmt.Errorf("repository: %s: %w: %w", op, service.ErrStoreUnavailable, err)
}

func severityArg(s *models.Severity) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func severityValue(s *string) *models.Severity {
	if s == nil {
		return nil
	}
	if v, ok := models.ParseSeverity(*s); ok {
		return &v
	}
	return nil
}
