package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/repository"
)

// ExportService exportación de informes a Excel
//
// El historial de estados se deriva por completo del registro de auditoría
// (LeadService.HistorialTransiciones); aquí solo se da formato. Se devuelve
// un bytes.Buffer para que el Handler fije cabeceras y escriba la respuesta.
type ExportService interface {
	// ExportarHistorialEstados genera el historial de transiciones de un
	// lead como fichero .xlsx. Devuelve el contenido y el nombre sugerido.
	ExportarHistorialEstados(ctx context.Context, leadID uint) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo    *repository.Repository
	leadSvc LeadService
	logger  *zap.Logger
}

// NewExportService crea una instancia de ExportService
func NewExportService(repo *repository.Repository, leadSvc LeadService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, leadSvc: leadSvc, logger: logger}
}

func (s *exportService) ExportarHistorialEstados(ctx context.Context, leadID uint) (*bytes.Buffer, string, error) {
	historial, err := s.leadSvc.HistorialTransiciones(ctx, leadID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const hoja = "Historial de estados"
	f.SetSheetName(f.GetSheetName(0), hoja)

	cabeceras := []string{"Desde", "Hasta", "Días", "Horas", "Minutos", "Fecha de transición"}
	for i, c := range cabeceras {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(hoja, celda, c); err != nil {
			return nil, "", err
		}
	}

	for fila, t := range historial.Transiciones {
		valores := []interface{}{
			t.DesdeEstado,
			t.HastaEstado,
			t.Dias,
			t.Horas,
			t.Minutos,
			t.Fecha.Format("2006-01-02 15:04"),
		}
		for col, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(col+1, fila+2)
			if err := f.SetCellValue(hoja, celda, v); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("fallo al generar Excel del historial",
			zap.Uint("lead_id", leadID), zap.Error(err))
		return nil, "", err
	}

	nombre := fmt.Sprintf("historial_estados_lead_%d.xlsx", leadID)
	return buf, nombre, nil
}
