package pdf

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
)

// moneyOrDash muestra un guion largo para precios inválidos (el total los cuenta como 0).
func moneyOrDash(valid bool, d decimal.Decimal) string {
	if !valid {
		return "—"
	}
	return invoice.FormatMoney(d)
}
