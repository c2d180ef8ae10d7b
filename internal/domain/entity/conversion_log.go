package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionLog registro de auditoría de una conversión XSIG → PDF.
type ConversionLog struct {
	ID                     string
	CorrelationID          string
	RegistryNumber         string
	EntryPoint             string
	AccountingRecordNumber string
	InvoiceNumber          string
	EmitterTaxID           string
	InvoiceTotal           *decimal.Decimal // nil si InvoiceTotal no era numérico
	SignatureFound         bool
	CreatedAt              time.Time
}
