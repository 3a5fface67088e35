package services

import (
	"context"
	"fmt"

	"github.com/jhoicas/biciros/internal/domain"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

// WorkOrderGenerator genera el PDF de la orden de trabajo (puerto hacia infraestructura).
type WorkOrderGenerator interface {
	GenerateWorkOrderPDF(ctx context.Context, svc entity.Service, business entity.AppSettings) ([]byte, error)
}

// ServiceFinder fuente de órdenes ya sincronizadas (el Hook).
type ServiceFinder interface {
	Find(id string) (entity.Service, bool)
}

// SettingsReader fuente de los datos del negocio que se imprimen en la cabecera.
type SettingsReader interface {
	Current() entity.AppSettings
}

// WorkOrderUseCase arma la orden de trabajo imprimible de un servicio.
type WorkOrderUseCase struct {
	services  ServiceFinder
	settings  SettingsReader
	generator WorkOrderGenerator
}

// NewWorkOrderUseCase construye el caso de uso inyectando sus dependencias.
func NewWorkOrderUseCase(services ServiceFinder, settings SettingsReader, generator WorkOrderGenerator) *WorkOrderUseCase {
	return &WorkOrderUseCase{services: services, settings: settings, generator: generator}
}

// Download devuelve los bytes del PDF y el nombre de archivo sugerido.
// domain.ErrNotFound si la orden no está en la lista sincronizada.
func (uc *WorkOrderUseCase) Download(ctx context.Context, id string) ([]byte, string, error) {
	svc, ok := uc.services.Find(id)
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	pdfBytes, err := uc.generator.GenerateWorkOrderPDF(ctx, svc, uc.settings.Current())
	if err != nil {
		return nil, "", fmt.Errorf("orden de trabajo: generación fallida: %w", err)
	}
	name := svc.Number
	if name == "" {
		name = svc.ID
	}
	return pdfBytes, fmt.Sprintf("orden_%s.pdf", name), nil
}
