package dto

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount es un valor monetario de entrada tolerante: acepta número o texto.
// Lo que no se pueda interpretar (vacío, "bad", null) queda inválido y aporta 0 a los totales.
type Amount struct {
	decimal.NullDecimal
}

// NewAmount construye un Amount válido (pruebas y clientes Go).
func NewAmount(d decimal.Decimal) Amount {
	return Amount{NullDecimal: decimal.NewNullDecimal(d)}
}

// UnmarshalJSON nunca falla: un precio mal escrito no debe rechazar la petición.
func (a *Amount) UnmarshalJSON(b []byte) error {
	a.NullDecimal = decimal.NullDecimal{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	a.NullDecimal = decimal.NewNullDecimal(d)
	return nil
}
