package taller

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/internal/domain/entity"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
)

func toMotorResponse(m *entity.Motor) dto.MotorResponse {
	return dto.MotorResponse{
		ID:               m.ID,
		NumeroSerie:      m.NumeroSerie,
		Cliente:          m.Cliente,
		Celular:          m.Celular,
		Marca:            m.Marca,
		Vehiculo:         m.Vehiculo,
		Placa:            m.Placa,
		Descripcion:      m.Descripcion,
		FechaEntrada:     m.FechaEntrada,
		FechaSalida:      m.FechaSalida,
		Estado:           m.Estado,
		Observaciones:    m.Observaciones,
		IncluirIVA:       m.IncluirIVA,
		MecanicoNombre:   m.MecanicoNombre,
		MecanicoTelefono: m.MecanicoTelefono,
		MedidaBloque:     m.MedidaBloque,
		MedidaBiela:      m.MedidaBiela,
		MedidaBancada:    m.MedidaBancada,
		MedidaCiguenal:   m.MedidaCiguenal,
		Eliminado:        m.Eliminado,
		FotoMotor:        m.FotoMotor,
	}
}

func toWorkResponse(w entity.WorkEntry) dto.WorkEntryResponse {
	return dto.WorkEntryResponse{
		ID:            w.ID,
		MotorID:       w.MotorID,
		Descripcion:   w.Descripcion,
		ParteAsociada: w.ParteAsociada,
		Precio:        w.Precio,
		Estado:        w.Estado,
		Mecanico:      w.Mecanico,
		Confirmacion:  w.Confirmacion,
		CreatedAt:     w.CreatedAt,
	}
}

func toWorkResponses(works []entity.WorkEntry) []dto.WorkEntryResponse {
	out := make([]dto.WorkEntryResponse, len(works))
	for i, w := range works {
		out[i] = toWorkResponse(w)
	}
	return out
}

func toPartResponse(p entity.PartEntry) dto.PartEntryResponse {
	subtotal := decimal.Zero
	if p.Valor.Valid && p.Cantidad > 0 && !p.Valor.Decimal.IsNegative() {
		subtotal = p.Valor.Decimal.Mul(decimal.NewFromInt(int64(p.Cantidad)))
	}
	return dto.PartEntryResponse{
		ID:           p.ID,
		MotorID:      p.MotorID,
		Cantidad:     p.Cantidad,
		Descripcion:  p.Descripcion,
		Valor:        p.Valor,
		Subtotal:     subtotal,
		Confirmacion: p.Confirmacion,
		CreatedAt:    p.CreatedAt,
	}
}

func toPartResponses(parts []entity.PartEntry) []dto.PartEntryResponse {
	out := make([]dto.PartEntryResponse, len(parts))
	for i, p := range parts {
		out[i] = toPartResponse(p)
	}
	return out
}

func toChecklistResponses(entries []entity.ChecklistEntry) []dto.ChecklistItemResponse {
	out := make([]dto.ChecklistItemResponse, len(entries))
	for i, e := range entries {
		out[i] = dto.ChecklistItemResponse{
			ID:            e.ID,
			Seccion:       e.Seccion,
			Componente:    e.Componente,
			Presente:      e.Presente,
			Observaciones: e.Observaciones,
		}
	}
	return out
}

func toSummaryResponse(s invoice.Summary) dto.SummaryResponse {
	return dto.SummaryResponse{
		SubtotalTrabajos: s.SubtotalTrabajos,
		SubtotalItems:    s.SubtotalItems,
		Subtotal:         s.Subtotal,
		IVA:              s.IVA,
		Total:            s.Total,
		TotalTexto:       invoice.FormatMoney(s.Total),
		IncluirIVA:       s.IncluirIVA,
		TasaIVA:          s.TasaIVA,
		Base:             s.Base,
		Pendientes:       s.Pendientes,
	}
}

func toSectionResponses(views []invoice.SectionView) []dto.ChecklistSectionResponse {
	out := make([]dto.ChecklistSectionResponse, len(views))
	for i, v := range views {
		var cols [2][]dto.ComponentMarkResponse
		for c := range v.Columnas {
			cols[c] = make([]dto.ComponentMarkResponse, len(v.Columnas[c]))
			for j, m := range v.Columnas[c] {
				cols[c][j] = dto.ComponentMarkResponse{Nombre: m.Nombre, Presente: m.Presente}
			}
		}
		out[i] = dto.ChecklistSectionResponse{
			Key:              v.Key,
			Titulo:           v.Titulo,
			Columnas:         cols,
			ConObservaciones: v.ConObservaciones,
			Observaciones:    v.Observaciones,
		}
	}
	return out
}

func toChecklistEntries(items []dto.ChecklistItemRequest) []entity.ChecklistEntry {
	out := make([]entity.ChecklistEntry, len(items))
	for i, it := range items {
		out[i] = entity.ChecklistEntry{
			Seccion:       it.Seccion,
			Componente:    it.Componente,
			Presente:      it.Presente,
			Observaciones: it.Observaciones,
		}
	}
	return out
}
