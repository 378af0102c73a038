// Package invoice concentra las reglas que convierten los registros de un motor
// (trabajos, ítems, checklist y bandera de IVA) en el resumen financiero y la
// vista de checklist que se muestran y exportan.
package invoice

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Claves de sección del catálogo por defecto.
const (
	SeccionBloque     = "bloque"
	SeccionCiguenal   = "ciguenal"
	SeccionCulata     = "culata"
	SeccionBielas     = "bielas"
	SeccionArbolLevas = "arbolLevas"
	SeccionVarios     = "varios"
)

// Section es una sección del checklist con su lista ordenada de componentes.
type Section struct {
	Key           string
	Titulo        string
	Componentes   []string
	Observaciones bool // la sección admite un texto de observaciones
}

// Catalog es el catálogo inmutable de secciones y componentes. Es la fuente de
// verdad del layout: las filas guardadas fuera del catálogo se ignoran.
type Catalog struct {
	sections []Section
	index    map[string]int
}

// NewCatalog valida y copia las secciones recibidas.
func NewCatalog(sections ...Section) (Catalog, error) {
	c := Catalog{
		sections: make([]Section, 0, len(sections)),
		index:    make(map[string]int, len(sections)),
	}
	for _, s := range sections {
		key := FoldKey(s.Key)
		if key == "" {
			return Catalog{}, fmt.Errorf("catálogo: sección sin clave")
		}
		if _, dup := c.index[key]; dup {
			return Catalog{}, fmt.Errorf("catálogo: sección duplicada %q", s.Key)
		}
		if len(s.Componentes) == 0 {
			return Catalog{}, fmt.Errorf("catálogo: sección %q sin componentes", s.Key)
		}
		seen := make(map[string]struct{}, len(s.Componentes))
		for _, comp := range s.Componentes {
			ck := FoldKey(comp)
			if ck == "" {
				return Catalog{}, fmt.Errorf("catálogo: componente vacío en %q", s.Key)
			}
			if _, dup := seen[ck]; dup {
				return Catalog{}, fmt.Errorf("catálogo: componente duplicado %q en %q", comp, s.Key)
			}
			seen[ck] = struct{}{}
		}
		c.index[key] = len(c.sections)
		c.sections = append(c.sections, cloneSection(s))
	}
	return c, nil
}

// MustCatalog es NewCatalog para catálogos constantes; entra en pánico si son inválidos.
func MustCatalog(sections ...Section) Catalog {
	c, err := NewCatalog(sections...)
	if err != nil {
		panic(err)
	}
	return c
}

// Sections devuelve una copia de las secciones en orden.
func (c Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	for i, s := range c.sections {
		out[i] = cloneSection(s)
	}
	return out
}

// Section busca una sección por clave (sin distinguir tildes ni mayúsculas).
func (c Catalog) Section(key string) (Section, bool) {
	i, ok := c.index[FoldKey(key)]
	if !ok {
		return Section{}, false
	}
	return cloneSection(c.sections[i]), true
}

// ComponentCount es el total de componentes del catálogo.
func (c Catalog) ComponentCount() int {
	n := 0
	for _, s := range c.sections {
		n += len(s.Componentes)
	}
	return n
}

// Contains indica si el par (sección, componente) pertenece al catálogo.
func (c Catalog) Contains(section, component string) bool {
	i, ok := c.index[FoldKey(section)]
	if !ok {
		return false
	}
	want := FoldKey(component)
	for _, comp := range c.sections[i].Componentes {
		if FoldKey(comp) == want {
			return true
		}
	}
	return false
}

func cloneSection(s Section) Section {
	s.Componentes = append([]string(nil), s.Componentes...)
	return s
}

// FoldKey normaliza claves de sección y componente: sin tildes, minúsculas y
// espacios colapsados. "Cigüeñal", "cigueñal" y "CIGUENAL" producen la misma clave.
func FoldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}

// DefaultCatalog es el catálogo del taller. Culata usa la lista del formulario
// de ingreso (sin "Resortes" repetido).
func DefaultCatalog() Catalog {
	return defaultCatalog
}

var defaultCatalog = MustCatalog(
	Section{
		Key:    SeccionBloque,
		Titulo: "Bloque",
		Componentes: []string{
			"Bloque", "Tapa de Bancada", "Bancada", "Guías de Empaque", "Tapón del Eje de Levas",
			"Trompo de Lubricación", "Soportes", "Funda Varilla de Aceite", "Racores", "Espárragos",
			"Plaqueta", "Guías y Tubos de Lubricación parte Frontal", "Pasta Bomba de Gasolina",
			"Camisas Flotantes", "Roceadores", "Deflectores", "Sensores", "Tapas Laterales",
			"Tornillos", "Base filtro de Aceite", "Base piñon loco / Arandela",
		},
	},
	Section{
		Key:    SeccionCiguenal,
		Titulo: "Cigüeñal",
		Componentes: []string{
			"Cigüeñal", "Piñon", "Cuñas", "Pesas", "Tornillos", "Arandelas", "Tuercas", "Guías de Volante",
		},
	},
	Section{
		Key:    SeccionCulata,
		Titulo: "Culata",
		Componentes: []string{
			"Culata", "Armada", "Desarmada", "Válvulas", "Resortes", "Porta Cuñas", "Cuñas",
			"Arandelas de resorte", "Bloque", "Flautas", "Balancines", "Separadores",
		},
	},
	Section{
		Key:           SeccionBielas,
		Titulo:        "Bielas",
		Componentes:   []string{"Bielas", "Pistones", "Tapas", "Pasadores", "Tornillo", "Pinas", "Tuercas"},
		Observaciones: true,
	},
	Section{
		Key:    SeccionArbolLevas,
		Titulo: "Árbol de Levas",
		Componentes: []string{
			"Arbol de Levas", "Piñon", "Cuña", "Tornillos", "Arandela", "Tuercas", "Arandela Axial",
		},
	},
	Section{
		Key:    SeccionVarios,
		Titulo: "Componentes varios",
		Componentes: []string{
			"Collarín trasero", "baseenfriador aceite", "Tapa repartición", "Care vaca", "Impulsadores",
			"Lata espejo", "Codos", "Poma", "Latas", "Base filtro", "Bomba agua", "Filtro aceite",
			"Tapa reparación con bomba aceite", "Teléfono", "Base termostato", "Lata lateral",
			"Ventilador", "Tubos", "Tortuga", "Compensador", "Casueletas", "Soporte aluminio",
			"Piñones", "Mangueras",
		},
		Observaciones: true,
	},
)
