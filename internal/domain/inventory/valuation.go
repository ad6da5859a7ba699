package inventory

import "github.com/shopspring/decimal"

// StockValue valoriza la existencia de un producto: Precio * Cantidad, redondeado a 2 decimales.
// Una cantidad no positiva vale cero.
func StockValue(quantity int, price decimal.Decimal) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
