package entity

import (
	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Siempre pertenece a una categoría existente.
// Price está expresado en Currency.
type Product struct {
	ID         int64
	Name       string
	CategoryID int64
	Price      decimal.Decimal
	Currency   Currency
}

var hundred = decimal.NewFromInt(100)

// ConvertPrice aplica la tasa al precio y trunca (no redondea) a dos decimales:
// floor(100 × rate × price) / 100.
func ConvertPrice(price, rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(price).Mul(hundred).Floor().Div(hundred)
}
