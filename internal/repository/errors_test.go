package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, service.ErrNotFound},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, service.ErrRaceLost},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, service.ErrRaceLost},
		{"lock timeout", &pgconn.PgError{Code: "55P03"}, service.ErrRaceLost},
		{"unique violation", &pgconn.PgError{Code: "23505"}, service.ErrStoreUnavailable},
		{"connection refused", errors.New("dial tcp: connection refused"), service.ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, storeError("op", tt.err), tt.want)
		})
	}
}

func TestSeverityConversion(t *testing.T) {
	high := models.SeverityHigh
	assert.Equal(t, "High", *severityArg(&high))
	assert.Nil(t, severityArg(nil))

	raw := "Medium"
	assert.Equal(t, models.SeverityMedium, *severityValue(&raw))
	bogus := "Catastrophic"
	assert.Nil(t, severityValue(&bogus))
	assert.Nil(t, severityValue(nil))
}
