package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx: los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isNoRows indica que la consulta no encontró la fila. Un id con formato inválido
// (22P02 al convertir a uuid) tampoco puede existir.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgCode(err) == codeInvalidText
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// mapWriteError traduce violaciones de constraints a errores de dominio; el resto se envuelve con op.
func mapWriteError(op string, err error) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return domain.ErrDuplicate
	case codeForeignKeyViolation:
		return domain.ErrConflict
	case codeCheckViolation:
		return domain.ErrInvalidInput
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectOne devuelve NotFound si el comando no afectó filas.
func expectOne(tag pgconn.CommandTag, entity, id string) error {
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound(entity, id)
	}
	return nil
}

// likePattern arma el patrón ILIKE para coincidencia parcial, escapando comodines.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// nullIfEmpty convierte "" en NULL para columnas de referencia opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func emptyIfNull(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
