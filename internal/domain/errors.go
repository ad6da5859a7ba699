package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// Reglas de negocio del motor de stock.
	ErrDuplicateMovement = errors.New("el bulto ya tiene un movimiento de este tipo registrado")
	ErrEmptyPackage      = errors.New("el bulto no tiene detalles")
	ErrMovementConflict  = errors.New("el bulto ya tiene un movimiento de sentido contrario")
	ErrPersistence       = errors.New("fallo de persistencia")
)

// ValidationError describe un campo de entrada inválido. Coincide con ErrInvalidInput.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError indica qué entidad no existe. Coincide con ErrNotFound.
type NotFoundError struct {
	Entity string // producto, bulto, detalle, entrada, salida, movimiento...
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound construye un NotFoundError.
func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// StockError detalla el producto que quedaría con stock negativo. Coincide con ErrInsufficientStock.
type StockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int // cantidad que se intentó descontar
}

func (e *StockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("no hay suficiente stock para el producto %s (disponible %d, requerido %d)", name, e.Available, e.Requested)
}

func (e *StockError) Is(target error) bool { return target == ErrInsufficientStock }

// StockErrors agrupa varios productos sin stock suficiente en una misma operación.
type StockErrors []*StockError

func (s StockErrors) Error() string {
	if len(s) == 1 {
		return s[0].Error()
	}
	msg := "no se puede realizar la operación:"
	for i, e := range s {
		if i > 0 {
			msg += ";"
		}
		msg += " " + e.Error()
	}
	return msg
}

func (s StockErrors) Is(target error) bool { return target == ErrInsufficientStock }

// PackageRuleError rechazo de una regla de bulto (entrada/salida duplicada, bulto sin detalles,
// movimiento de sentido contrario). Coincide con su Rule.
type PackageRuleError struct {
	Rule      error
	PackageID string
	Message   string
}

func (e *PackageRuleError) Error() string { return e.Message }

func (e *PackageRuleError) Is(target error) bool { return target == e.Rule }

// PersistenceError envuelve un fallo inesperado del almacenamiento. Coincide con ErrPersistence.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// Persistence envuelve err como PersistenceError salvo que ya sea un error de dominio conocido.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsBusiness(err) || errors.Is(err, ErrPersistence) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsBusiness indica si err es una falla de regla de negocio o de entrada (no de infraestructura).
func IsBusiness(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrDuplicateMovement) ||
		errors.Is(err, ErrEmptyPackage) ||
		errors.Is(err, ErrMovementConflict) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrUnauthorized)
}
