package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
)

// ConversionLogResponse entrada del registro de conversiones para GET /api/conversions.
type ConversionLogResponse struct {
	ID                     string           `json:"id"`
	CorrelationID          string           `json:"correlation_id"`
	RegistryNumber         string           `json:"registry_number"`
	EntryPoint             string           `json:"entry_point"`
	AccountingRecordNumber string           `json:"accounting_record_number"`
	InvoiceNumber          string           `json:"invoice_number"`
	EmitterTaxID           string           `json:"emitter_tax_id"`
	InvoiceTotal           *decimal.Decimal `json:"invoice_total,omitempty"`
	SignatureFound         bool             `json:"signature_found"`
	CreatedAt              time.Time        `json:"created_at"`
}

// ConversionLogListResponse listado paginado.
type ConversionLogListResponse struct {
	Items []ConversionLogResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// NewConversionLogResponse convierte la entidad a su vista JSON.
func NewConversionLogResponse(l *entity.ConversionLog) ConversionLogResponse {
	return ConversionLogResponse{
		ID:                     l.ID,
		CorrelationID:          l.CorrelationID,
		RegistryNumber:         l.RegistryNumber,
		EntryPoint:             l.EntryPoint,
		AccountingRecordNumber: l.AccountingRecordNumber,
		InvoiceNumber:          l.InvoiceNumber,
		EmitterTaxID:           l.EmitterTaxID,
		InvoiceTotal:           l.InvoiceTotal,
		SignatureFound:         l.SignatureFound,
		CreatedAt:              l.CreatedAt,
	}
}
