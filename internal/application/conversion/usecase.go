// Package conversion orquesta la conversión de una factura firmada (.xsig) a PDF:
// lectura del contenedor, traducción al modelo, generación del documento,
// métricas y registro de auditoría.
package conversion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/xsig-pdf/internal/application/dto"
	"github.com/jhoicas/xsig-pdf/internal/domain"
	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
	"github.com/jhoicas/xsig-pdf/internal/domain/repository"
)

// Resultados de una conversión (etiqueta outcome de las métricas).
const (
	OutcomeSuccess        = "success"
	OutcomeEmptyInput     = "empty_input"
	OutcomeDocumentFormat = "document_format"
	OutcomeError          = "error"
)

// Request entrada de Convert. Si CorrelationID va vacío se genera uno.
type Request struct {
	Raw           []byte
	Meta          entity.RegistryMetadata
	CorrelationID string
}

// Result PDF generado junto con el modelo usado para producirlo.
type Result struct {
	PDF           []byte
	Invoice       entity.Invoice
	Filename      string
	CorrelationID string
}

// UseCase caso de uso de conversión. Sin estado mutable compartido: seguro para uso concurrente.
type UseCase struct {
	reader    InvoiceReader
	generator InvoicePDFGenerator
	metrics   Metrics
	auditLog  repository.ConversionLogRepository
	log       zerolog.Logger
	now       func() time.Time
}

// Option configura el caso de uso.
type Option func(*UseCase)

// WithMetrics registra métricas de cada conversión.
func WithMetrics(m Metrics) Option {
	return func(uc *UseCase) { uc.metrics = m }
}

// WithAuditLog guarda cada conversión correcta en el repositorio indicado.
func WithAuditLog(repo repository.ConversionLogRepository) Option {
	return func(uc *UseCase) { uc.auditLog = repo }
}

// WithLogger fija el logger estructurado.
func WithLogger(l zerolog.Logger) Option {
	return func(uc *UseCase) { uc.log = l }
}

// WithClock fija el reloj usado en el registro de auditoría.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// NewUseCase construye el caso de uso inyectando lector y generador.
func NewUseCase(reader InvoiceReader, generator InvoicePDFGenerator, opts ...Option) *UseCase {
	uc := &UseCase{
		reader:    reader,
		generator: generator,
		log:       zerolog.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Convert genera el PDF de la factura contenida en req.Raw.
//
// Retorna:
//   - domain.ErrEmptyInput      si no hay bytes.
//   - domain.ErrDocumentFormat  (envuelto con la causa) si el contenido no es XML válido.
//   - error "pdf: generación fallida" si falla el generador.
//
// Cualquier otra carencia del documento se refleja como centinela en el PDF.
func (uc *UseCase) Convert(ctx context.Context, req Request) (*Result, error) {
	correlationID := req.CorrelationID
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	log := uc.log.With().
		Str("correlation_id", correlationID).
		Str("registry_number", req.Meta.RegistryNumber).
		Logger()

	start := time.Now()
	if uc.metrics != nil {
		uc.metrics.StartConversion()
	}
	outcome := OutcomeError
	defer func() {
		if uc.metrics != nil {
			uc.metrics.FinishConversion(outcome, time.Since(start))
		}
	}()

	// ── 1. Leer contenedor ───────────────────────────────────────────────────
	invoice, err := uc.reader.Read(req.Raw)
	if err != nil {
		outcome = outcomeOf(err)
		log.Warn().Err(err).Int("bytes", len(req.Raw)).Msg("conversión rechazada")
		return nil, err
	}

	// ── 2. Generar PDF ───────────────────────────────────────────────────────
	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, invoice, req.Meta)
	if err != nil {
		log.Error().Err(err).Str("invoice_number", invoice.Number).Msg("error generando PDF")
		return nil, fmt.Errorf("pdf: generación fallida: %w", err)
	}
	outcome = OutcomeSuccess
	if uc.metrics != nil {
		uc.metrics.ObserveDocument(invoice.Signature.Found, len(pdfBytes))
	}

	// ── 3. Auditoría (no bloquea la respuesta si falla) ─────────────────────
	uc.audit(ctx, log, correlationID, req.Meta, invoice)

	log.Info().
		Str("invoice_number", invoice.Number).
		Bool("signature_found", invoice.Signature.Found).
		Int("items", len(invoice.Items)).
		Int("pdf_bytes", len(pdfBytes)).
		Dur("elapsed", time.Since(start)).
		Msg("factura convertida")

	return &Result{
		PDF:           pdfBytes,
		Invoice:       invoice,
		Filename:      dto.PDFFilename(req.Meta.AccountingRecordNumber, req.Meta.RegisteredAt),
		CorrelationID: correlationID,
	}, nil
}

// Inspect devuelve el modelo de la factura sin generar el PDF.
func (uc *UseCase) Inspect(_ context.Context, raw []byte) (entity.Invoice, error) {
	return uc.reader.Read(raw)
}

// History lista las conversiones registradas para un número de registro.
// Sin registro de auditoría configurado devuelve una lista vacía.
func (uc *UseCase) History(ctx context.Context, registryNumber string, page dto.PageRequest) ([]*entity.ConversionLog, error) {
	if registryNumber == "" {
		return nil, fmt.Errorf("%w: registryNumber es obligatorio", domain.ErrInvalidInput)
	}
	if uc.auditLog == nil {
		return []*entity.ConversionLog{}, nil
	}
	page.DefaultPage()
	logs, err := uc.auditLog.ListByRegistryNumber(ctx, registryNumber, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("conversion: listar historial: %w", err)
	}
	return logs, nil
}

func (uc *UseCase) audit(
	ctx context.Context,
	log zerolog.Logger,
	correlationID string,
	meta entity.RegistryMetadata,
	invoice entity.Invoice,
) {
	if uc.auditLog == nil {
		return
	}
	entry := &entity.ConversionLog{
		ID:                     uuid.NewString(),
		CorrelationID:          correlationID,
		RegistryNumber:         meta.RegistryNumber,
		EntryPoint:             meta.EntryPoint,
		AccountingRecordNumber: meta.AccountingRecordNumber,
		InvoiceNumber:          invoice.Number,
		EmitterTaxID:           invoice.Emitter.TaxID,
		SignatureFound:         invoice.Signature.Found,
		CreatedAt:              uc.now().UTC(),
	}
	if total := entity.ParseAmount(invoice.Totals.InvoiceTotal); total.IsNumeric() {
		d := total.Decimal()
		entry.InvoiceTotal = &d
	}
	if err := uc.auditLog.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("no se pudo registrar la conversión")
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return OutcomeEmptyInput
	case errors.Is(err, domain.ErrDocumentFormat):
		return OutcomeDocumentFormat
	default:
		return OutcomeError
	}
}
