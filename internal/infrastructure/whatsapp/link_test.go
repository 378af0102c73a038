package whatsapp_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/whatsapp"
)

func motor() entity.Motor {
	return entity.Motor{
		NumeroSerie:   "00042",
		Cliente:       "Juan Pérez",
		Marca:         "Chevrolet",
		Vehiculo:      "Luv 2000",
		MedidaBloque:  "0.50",
		MedidaBancada: "0.25",
		MedidaBiela:   "Estandar",
	}
}

func TestMessage_ContenidoCompleto(t *testing.T) {
	l := whatsapp.NewLinker("57")
	msg := l.Message(motor(), invoice.Summary{Total: decimal.RequireFromString("83300")})

	assert.Equal(t,
		"Información del Motor - Juan Pérez\n"+
			"Vehículo: Chevrolet Luv 2000\n"+
			"Número Motor: 00042\n"+
			"Medidas: Bloque: 0.50, Cigüeñal (Bancada: 0.25, Biela: Estandar)\n"+
			"Total: $83.300", msg)
}

func TestMedidas_SoloRegistradas(t *testing.T) {
	assert.Equal(t, "Cigüeñal (Biela: 0.75)", whatsapp.Medidas(entity.Motor{MedidaBiela: "0.75"}))
	assert.Equal(t, "Bloque: 1.00", whatsapp.Medidas(entity.Motor{MedidaBloque: "1.00"}))
	assert.Empty(t, whatsapp.Medidas(entity.Motor{}))
}

func TestLink_PrefijoYCodificacion(t *testing.T) {
	l := whatsapp.NewLinker("57")

	link := l.Link("(300) 123-4567", "Total: $1.000 & más")
	require.True(t, strings.HasPrefix(link, "https://wa.me/573001234567?text="), link)
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Total: $1.000 & más", u.Query().Get("text"))
}

func TestLink_NoDuplicaPrefijo(t *testing.T) {
	l := whatsapp.NewLinker("+57")
	assert.True(t, strings.HasPrefix(l.Link("+57 300 123 4567", "x"), "https://wa.me/573001234567?"))
}

func TestLink_SinTelefono(t *testing.T) {
	l := whatsapp.NewLinker("57")
	assert.Empty(t, l.Link("", "hola"))
	assert.Empty(t, l.Link("sin número", "hola"))
}
