package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount importe de una línea ya interpretado: número decimal o texto opaco.
type Amount struct {
	raw     string
	value   decimal.Decimal
	numeric bool
}

// ParseAmount intenta interpretar el texto como número una sola vez.
func ParseAmount(raw string) Amount {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Amount{raw: raw}
	}
	return Amount{raw: raw, value: d, numeric: true}
}

// IsNumeric indica si el texto original era un número.
func (a Amount) IsNumeric() bool { return a.numeric }

// Format devuelve el número con places decimales, o el texto original si no es numérico.
func (a Amount) Format(places int32) string {
	if !a.numeric {
		return a.raw
	}
	return a.value.StringFixed(places)
}

// Decimal devuelve el valor numérico (cero si no lo es).
func (a Amount) Decimal() decimal.Decimal { return a.value }
