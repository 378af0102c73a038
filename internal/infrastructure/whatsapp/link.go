// Package whatsapp arma el mensaje de resumen y el enlace wa.me para compartirlo.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
)

const baseURL = "https://wa.me/"

// Linker implementa taller.ShareLinker.
type Linker struct {
	countryCode string
}

// NewLinker crea el generador con el prefijo de país (ej. "57").
func NewLinker(countryCode string) *Linker {
	return &Linker{countryCode: digits(countryCode)}
}

// Message lista cliente, vehículo, número de motor, medidas y total.
func (l *Linker) Message(m entity.Motor, s invoice.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Información del Motor - %s\n", m.Cliente)
	fmt.Fprintf(&b, "Vehículo: %s\n", strings.TrimSpace(m.Marca+" "+m.Vehiculo))
	fmt.Fprintf(&b, "Número Motor: %s\n", nonEmpty(m.NumeroSerie, "N/A"))
	fmt.Fprintf(&b, "Medidas: %s\n", Medidas(m))
	fmt.Fprintf(&b, "Total: %s", invoice.FormatMoney(s.Total))
	return b.String()
}

// Medidas resume las medidas registradas: "Bloque: x, Cigüeñal (Bancada: y, Biela: z)".
func Medidas(m entity.Motor) string {
	var parts []string
	if m.MedidaBloque != "" {
		parts = append(parts, "Bloque: "+m.MedidaBloque)
	}
	var ciguenal []string
	if m.MedidaBancada != "" {
		ciguenal = append(ciguenal, "Bancada: "+m.MedidaBancada)
	}
	if m.MedidaBiela != "" {
		ciguenal = append(ciguenal, "Biela: "+m.MedidaBiela)
	}
	if len(ciguenal) > 0 {
		parts = append(parts, "Cigüeñal ("+strings.Join(ciguenal, ", ")+")")
	}
	return strings.Join(parts, ", ")
}

// Link devuelve https://wa.me/<país><dígitos>?text=<mensaje>. Sin teléfono no hay enlace.
// Si el número ya trae el prefijo de país no se repite.
func (l *Linker) Link(phone, message string) string {
	num := digits(phone)
	if num == "" {
		return ""
	}
	if l.countryCode != "" && !(strings.HasPrefix(num, l.countryCode) && len(num) > 10) {
		num = l.countryCode + num
	}
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return baseURL + num + "?text=" + text
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
