package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
)

// DefaultTaxRate es la tarifa general de IVA en Colombia.
var DefaultTaxRate = decimal.RequireFromString("0.19")

// Scope indica qué registros entran al cálculo.
type Scope int

const (
	// ConfirmedOnly ignora los registros especulativos (vista autoritativa).
	ConfirmedOnly Scope = iota
	// IncludeSpeculative suma también los registros aún no confirmados.
	IncludeSpeculative
)

// Base del resumen.
const (
	BaseConfirmado  = "confirmado"
	BaseProvisional = "provisional"
)

// Summary es el resumen financiero derivado. Nunca se persiste y no se redondea
// durante la acumulación; el redondeo se hace solo al presentar.
type Summary struct {
	SubtotalTrabajos decimal.Decimal
	SubtotalItems    decimal.Decimal
	Subtotal         decimal.Decimal
	IVA              decimal.Decimal
	Total            decimal.Decimal
	IncluirIVA       bool
	TasaIVA          decimal.Decimal
	Base             string
	Pendientes       int // trabajos e ítems especulativos incluidos
}

// IsProvisional indica si el total depende de trabajos sin confirmar.
func (s Summary) IsProvisional() bool {
	return s.Base == BaseProvisional
}

// Aggregator calcula resúmenes y vistas de checklist a partir de un catálogo y
// una tarifa de IVA fijados al construirlo. Es seguro para uso concurrente: no
// tiene estado mutable.
type Aggregator struct {
	catalog Catalog
	taxRate decimal.Decimal
}

// NewAggregator construye el agregador. Una tarifa negativa se trata como cero.
func NewAggregator(catalog Catalog, taxRate decimal.Decimal) *Aggregator {
	if taxRate.IsNegative() {
		taxRate = decimal.Zero
	}
	return &Aggregator{catalog: catalog, taxRate: taxRate}
}

// Catalog devuelve el catálogo inyectado.
func (a *Aggregator) Catalog() Catalog { return a.catalog }

// TaxRate devuelve la tarifa de IVA inyectada.
func (a *Aggregator) TaxRate() decimal.Decimal { return a.taxRate }

// ComputeSummary suma trabajos (precio) e ítems (cantidad × valor) y aplica IVA
// solo si taxIncluded. Montos inválidos, ausentes o negativos y cantidades no
// positivas aportan cero: un registro incompleto no impide obtener un total.
func (a *Aggregator) ComputeSummary(works []entity.WorkEntry, parts []entity.PartEntry, taxIncluded bool, scope Scope) Summary {
	subWork := decimal.Zero
	pending := 0
	for _, w := range works {
		if w.IsSpeculative() {
			if scope != IncludeSpeculative {
				continue
			}
			pending++
		}
		subWork = subWork.Add(amount(w.Precio))
	}

	subParts := decimal.Zero
	for _, p := range parts {
		if p.IsSpeculative() {
			if scope != IncludeSpeculative {
				continue
			}
			pending++
		}
		if p.Cantidad <= 0 {
			continue
		}
		subParts = subParts.Add(amount(p.Valor).Mul(decimal.NewFromInt(int64(p.Cantidad))))
	}

	subtotal := subWork.Add(subParts)
	tax := decimal.Zero
	if taxIncluded {
		tax = subtotal.Mul(a.taxRate)
	}

	base := BaseConfirmado
	if pending > 0 {
		base = BaseProvisional
	}
	return Summary{
		SubtotalTrabajos: subWork,
		SubtotalItems:    subParts,
		Subtotal:         subtotal,
		IVA:              tax,
		Total:            subtotal.Add(tax),
		IncluirIVA:       taxIncluded,
		TasaIVA:          a.taxRate,
		Base:             base,
		Pendientes:       pending,
	}
}

func amount(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid || v.Decimal.IsNegative() {
		return decimal.Zero
	}
	return v.Decimal
}
