package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const connectAttempts = 5

// NewPostgresDB создает новый пул соединений PostgreSQL.
// При старте вместе с базой в docker-compose база может подняться позже сервиса,
// поэтому подключение повторяется с экспоненциальной задержкой.
func NewPostgresDB(ctx context.Context, databaseURL string, log *logrus.Logger) (*pgxpool.Pool, error) {
	cfgPool, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе конфигурации postgres: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		dbpool, err := pgxpool.NewWithConfig(ctx, cfgPool)
		if err != nil {
			lastErr = fmt.Errorf("не удалось создать пул соединений: %w", err)
		} else if err = dbpool.Ping(ctx); err != nil {
			// Проверяем соединение с базой данных
			dbpool.Close()
			lastErr = fmt.Errorf("не удалось выполнить ping к postgres: %w", err)
		} else {
			return dbpool, nil
		}

		if attempt == connectAttempts {
			break
		}
		backoff := calcBackoff(attempt)
		log.WithError(lastErr).WithFields(logrus.Fields{
			"attempt": attempt,
			"backoff": backoff,
		}).Warn("PostgreSQL is not ready, retrying")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, fmt.Errorf("подключение к postgres отменено: %w", ctx.Err())
		}
	}
	return nil, fmt.Errorf("не удалось подключиться к postgres после %d попыток: %w", connectAttempts, lastErr)
}

// calcBackoff возвращает задержку 1s, 2s, 4s... но не больше 16s
func calcBackoff(attempt int) time.Duration {
	backoff := time.Duration(1<<(attempt-1)) * time.Second
	if backoff > 16*time.Second {
		backoff = 16 * time.Second
	}
	return backoff
}
