package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Alojamientos-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isTransient indica fallos de red, timeouts, serialización o deadlock: la operación no
// llegó a aplicarse de forma visible y el llamador puede decidir reintentar.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"): // connection_exception
			return true
		case pgErr.Code == "40001", // serialization_failure
			pgErr.Code == "40P01", // deadlock_detected
			pgErr.Code == "57014", // query_canceled (statement_timeout)
			pgErr.Code == "57P01": // admin_shutdown
			return true
		}
	}
	return false
}

// wrap traduce errores del driver a errores de dominio con contexto de la operación.
// pgx.ErrNoRows → domain.ErrNotFound; 23505 → domain.ErrDuplicate; fallos transitorios
// quedan unidos a domain.ErrTransientIO.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ErrNotFound
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isTransient(err):
		return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrTransientIO, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullable convierte "" en NULL para parámetros opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func notFoundIfNone(affected int64) error {
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
