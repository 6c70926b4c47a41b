package repository

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
)

// DefaultLockTimeout - сколько транзакция ждет блокировку ячейки, прежде чем сдаться с ErrRaceLost
const DefaultLockTimeout = 5 * time.Second

// ClusterStore выполняет шаг "найти или создать" в одной транзакции.
// Ячейки сетки блокируются транзакционными advisory-блокировками в отсортированном порядке,
// поэтому два сообщения об одном месте не создадут два инцидента.
type ClusterStore struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

func NewClusterStore(db *pgxpool.Pool, lockTimeout time.Duration) service.ClusterStore {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &ClusterStore{db: db, lockTimeout: lockTimeout}
}

// WithinClusterLock открывает транзакцию, берет блокировки lockKeys и выполняет fn.
// Ошибка fn откатывает все изменения.
func (s *ClusterStore) WithinClusterLock(ctx context.Context, lockKeys []string, fn func(tx service.ClusterTx) error) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return storeError("begin cluster transaction", err)
	}
	defer func() {
		// После Commit откат возвращает pgx.ErrTxClosed, это ожидаемо
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	timeout := fmt.Sprintf("%dms", s.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true);`, timeout); err != nil {
		return storeError("set lock timeout", err)
	}

	keys := slices.Clone(lockKeys)
	slices.Sort(keys)
	keys = slices.Compact(keys)
	for _, key := range keys {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0));`, key); err != nil {
			return storeError("lock cell "+key, err)
		}
	}

	if err := fn(&clusterTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return storeError("commit cluster transaction", err)
	}
	return nil
}

type clusterTx struct {
	tx pgx.Tx
}

func (t *clusterTx) FindActiveCandidates(ctx context.Context, hazardType string, lat, lon, radiusMeters float64) ([]*models.Incident, error) {
	return findActiveCandidates(ctx, t.tx, hazardType, lat, lon, radiusMeters)
}

func (t *clusterTx) CreateIncident(ctx context.Context, incident *models.Incident) error {
	return insertIncident(ctx, t.tx, incident)
}

func (t *clusterTx) UpdateIncident(ctx context.Context, incident *models.Incident) error {
	return updateIncident(ctx, t.tx, incident)
}

func (t *clusterTx) CreateReport(ctx context.Context, report *models.Report) error {
	return insertReport(ctx, t.tx, report)
}
