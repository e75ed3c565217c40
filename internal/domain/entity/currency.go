package entity

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

// Currency es un código de moneda ISO 4217 (EUR, USD, COP...).
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
)

// ParseCurrency normaliza y valida un código ISO 4217.
func ParseCurrency(s string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("moneda inválida %q: %w", s, err)
	}
	return Currency(unit.String()), nil
}

// String implementa fmt.Stringer.
func (c Currency) String() string { return string(c) }

// Valid indica si el código es una moneda ISO 4217 reconocida.
func (c Currency) Valid() bool {
	_, err := currency.ParseISO(string(c))
	return err == nil
}
