package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del almacén.
// QuantityOnHand solo cambia a través del motor de stock (entradas, salidas y detalles de bulto);
// nombre, precio y referencias se editan directamente.
type Product struct {
	ID               string
	Name             string
	Price            decimal.Decimal
	QuantityOnHand   int // nunca negativo
	CategoryID       string
	SpecialStorageID string // vacío si no requiere almacenamiento especial
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
