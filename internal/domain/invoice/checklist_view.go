package invoice

import (
	"strings"

	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
)

// ComponentMark es un componente del catálogo con su marca de presencia.
type ComponentMark struct {
	Nombre   string
	Presente bool
}

// SectionView es una sección lista para renderizar en dos columnas.
type SectionView struct {
	Key              string
	Titulo           string
	Columnas         [2][]ComponentMark
	ConObservaciones bool
	Observaciones    string
}

// Marks devuelve los componentes de ambas columnas en orden de catálogo.
func (v SectionView) Marks() []ComponentMark {
	out := make([]ComponentMark, 0, len(v.Columnas[0])+len(v.Columnas[1]))
	out = append(out, v.Columnas[0]...)
	return append(out, v.Columnas[1]...)
}

// BuildChecklistView arma una fila por componente del catálogo. Las entradas
// ausentes quedan como no presentes; si un componente aparece varias veces gana
// la última fila. En las secciones con observaciones se toma el último texto no
// vacío encontrado para la sección (se guarda por sección, no por componente).
// Las filas fuera del catálogo se ignoran.
func (a *Aggregator) BuildChecklistView(entries []entity.ChecklistEntry) []SectionView {
	presence := make(map[string]bool, len(entries))
	observations := make(map[string]string)
	for _, e := range entries {
		section := FoldKey(e.Seccion)
		if section == "" {
			continue
		}
		if strings.TrimSpace(e.Observaciones) != "" {
			observations[section] = e.Observaciones
		}
		if component := FoldKey(e.Componente); component != "" {
			presence[section+"\x00"+component] = e.Presente
		}
	}

	sections := a.catalog.sections
	views := make([]SectionView, 0, len(sections))
	for _, s := range sections {
		key := FoldKey(s.Key)
		marks := make([]ComponentMark, len(s.Componentes))
		for i, comp := range s.Componentes {
			marks[i] = ComponentMark{Nombre: comp, Presente: presence[key+"\x00"+FoldKey(comp)]}
		}
		half := (len(marks) + 1) / 2
		view := SectionView{
			Key:              s.Key,
			Titulo:           s.Titulo,
			Columnas:         [2][]ComponentMark{marks[:half:half], marks[half:]},
			ConObservaciones: s.Observaciones,
		}
		if s.Observaciones {
			view.Observaciones = observations[key]
		}
		views = append(views, view)
	}
	return views
}
