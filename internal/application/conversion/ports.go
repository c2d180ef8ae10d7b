package conversion

import (
	"context"
	"time"

	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
)

// InvoiceReader obtiene el modelo de factura a partir de los bytes del contenedor .xsig.
// Debe devolver domain.ErrEmptyInput o domain.ErrDocumentFormat (envuelto) si no puede parsearlo.
type InvoiceReader interface {
	Read(raw []byte) (entity.Invoice, error)
}

// InvoicePDFGenerator genera la representación en PDF de la factura con los datos del registro.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice entity.Invoice, meta entity.RegistryMetadata) ([]byte, error)
}

// Metrics recoge las métricas de conversión.
type Metrics interface {
	StartConversion()
	FinishConversion(outcome string, duration time.Duration)
	ObserveDocument(signatureFound bool, size int)
}
