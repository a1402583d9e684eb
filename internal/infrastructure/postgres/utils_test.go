package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Alojamientos-api/internal/domain"
)

func TestWrap_TraduceErroresDelDriver(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"sin filas", pgx.ErrNoRows, domain.ErrNotFound},
		{"sin filas envuelto", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"único violado", &pgconn.PgError{Code: "23505"}, domain.ErrDuplicate},
		{"serialización", &pgconn.PgError{Code: "40001"}, domain.ErrTransientIO},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, domain.ErrTransientIO},
		{"conexión perdida", &pgconn.PgError{Code: "08006"}, domain.ErrTransientIO},
		{"statement timeout", &pgconn.PgError{Code: "57014"}, domain.ErrTransientIO},
		{"deadline", context.DeadlineExceeded, domain.ErrTransientIO},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, wrap("op", tc.err), tc.want)
		})
	}
}

func TestWrap_ConservaErrorOriginal(t *testing.T) {
	assert.NoError(t, wrap("op", nil))

	check := &pgconn.PgError{Code: "23514"} // check_violation
	err := wrap("products.update", check)
	assert.ErrorIs(t, err, check)
	assert.NotErrorIs(t, err, domain.ErrTransientIO)
	assert.Contains(t, err.Error(), "products.update")

	transient := wrap("employees.get", &pgconn.PgError{Code: "40001"})
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(transient, &pgErr), "el error del driver sigue accesible")
}

func TestNullableYNotFound(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "x", *nullable("x"))
	assert.ErrorIs(t, notFoundIfNone(0), domain.ErrNotFound)
	assert.NoError(t, notFoundIfNone(1))
}
