package dto

import (
	"fmt"

	"github.com/jhoicas/xsig-pdf/internal/domain"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// Validate comprueba las etiquetas validate: limit entre 0 y 100, offset no negativo.
func (p PageRequest) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: limit debe estar entre 0 y 100 y offset no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero y limita Limit a 100.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. CorrelationID solo se informa en errores
// de documento e internos para poder cruzarlos con el log.
type ErrorResponse struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}
