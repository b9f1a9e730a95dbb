package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/taskstore-api/internal/domain"
)

const (
	codeUniqueViolation = "23505"
	codeInvalidTextRepr = "22P02"
	codeFKViolation     = "23503"
	codeNumericRange    = "22003"
)

// translateError convierte errores del driver en errores de dominio.
// 23505 → DuplicateError con el campo sacado del constraint; 22P02 (uuid mal formado) → ErrInvalidID;
// 22003 (importe fuera de NUMERIC) → ValidationError.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return &domain.DuplicateError{Field: constraintField(pgErr.ConstraintName)}
	case codeInvalidTextRepr:
		return domain.ErrInvalidID
	case codeNumericRange:
		return domain.NewValidationError("price", "Numeric value out of range")
	}
	return err
}

// constraintField "users_email_key" → "email", "products_sku_key" → "sku".
func constraintField(constraint string) string {
	name := strings.TrimSuffix(constraint, "_key")
	if i := strings.IndexByte(name, '_'); i >= 0 && i < len(name)-1 {
		return name[i+1:]
	}
	return ""
}

func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeFKViolation
}
