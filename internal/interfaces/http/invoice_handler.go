package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/xsig-pdf/internal/application/conversion"
	"github.com/jhoicas/xsig-pdf/internal/application/dto"
	"github.com/jhoicas/xsig-pdf/internal/domain"
)

// HeaderCorrelationID cabecera con el identificador de la conversión.
const HeaderCorrelationID = "X-Correlation-ID"

// InvoiceHandler maneja la conversión de facturas firmadas (.xsig) a PDF.
type InvoiceHandler struct {
	uc        *conversion.UseCase
	loc       *time.Location
	maxUpload int64
	now       func() time.Time
	log       zerolog.Logger
}

// NewInvoiceHandler construye el handler. loc es la zona del registro; maxUpload en bytes.
func NewInvoiceHandler(uc *conversion.UseCase, loc *time.Location, maxUpload int, now func() time.Time, log zerolog.Logger) *InvoiceHandler {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &InvoiceHandler{uc: uc, loc: loc, maxUpload: int64(maxUpload), now: now, log: log}
}

// RenderPDF godoc
// @Summary      Generar PDF de una factura .xsig
// @Tags         invoices
// @Accept       multipart/form-data
// @Produce      application/pdf
// @Param        file                    formData  file    true   "Factura firmada (.xsig)"
// @Param        registryNumber          formData  string  true   "Número de registro"
// @Param        entryPoint              formData  string  true   "Punto de entrada"
// @Param        accountingRecordNumber  formData  string  false  "Número de factura RCF"
// @Param        registeredAt            formData  string  false  "Fecha y hora de registro (aaaa-mm-ddThh:mm)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/invoices/pdf [post]
func (h *InvoiceHandler) RenderPDF(c *fiber.Ctx) error {
	raw, errResp, status := h.readUpload(c)
	if errResp != nil {
		return c.Status(status).JSON(errResp)
	}

	in := dto.RenderRequest{
		RegistryNumber:         c.FormValue("registryNumber"),
		EntryPoint:             c.FormValue("entryPoint"),
		AccountingRecordNumber: c.FormValue("accountingRecordNumber"),
		RegisteredAt:           c.FormValue("registeredAt"),
	}
	if err := in.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	meta, err := in.Metadata(h.loc, h.now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	correlationID := uuid.NewString()
	res, err := h.uc.Convert(c.UserContext(), conversion.Request{
		Raw:           raw,
		Meta:          meta,
		CorrelationID: correlationID,
	})
	if err != nil {
		return h.conversionError(c, err, correlationID)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	c.Set(HeaderCorrelationID, res.CorrelationID)
	return c.Status(fiber.StatusOK).Send(res.PDF)
}

// Inspect devuelve la factura extraída del .xsig en JSON, sin generar el PDF.
// POST /api/invoices/inspect (multipart: file)
func (h *InvoiceHandler) Inspect(c *fiber.Ctx) error {
	raw, errResp, status := h.readUpload(c)
	if errResp != nil {
		return c.Status(status).JSON(errResp)
	}
	invoice, err := h.uc.Inspect(c.UserContext(), raw)
	if err != nil {
		return h.conversionError(c, err, uuid.NewString())
	}
	return c.JSON(dto.NewInvoiceResponse(invoice))
}

// History godoc
// @Summary      Listar conversiones de un número de registro
// @Tags         conversions
// @Produce      json
// @Param        registryNumber  query  string  true   "Número de registro"
// @Param        limit           query  int     false  "Límite"  default(20)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ConversionLogListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/conversions [get]
func (h *InvoiceHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	if err := page.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	page.DefaultPage()
	logs, err := h.uc.History(c.UserContext(), c.Query("registryNumber"), page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		h.log.Error().Err(err).Msg("error listando conversiones")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo obtener el historial"})
	}
	out := dto.ConversionLogListResponse{
		Items: make([]dto.ConversionLogResponse, 0, len(logs)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, l := range logs {
		out.Items = append(out.Items, dto.NewConversionLogResponse(l))
	}
	return c.JSON(out)
}

// readUpload lee el campo "file". Devuelve la respuesta de error y su estado si no es utilizable.
func (h *InvoiceHandler) readUpload(c *fiber.Ctx) ([]byte, *dto.ErrorResponse, int) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, &dto.ErrorResponse{Code: "MISSING_FILE", Message: "Debes adjuntar un archivo .xsig"}, fiber.StatusBadRequest
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		return nil, &dto.ErrorResponse{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("el archivo supera el máximo de %d MB", h.maxUpload/(1024*1024)),
		}, fiber.StatusRequestEntityTooLarge
	}
	raw, err := readMultipartFile(fh)
	if err != nil {
		return nil, &dto.ErrorResponse{Code: "MISSING_FILE", Message: domain.ErrEmptyInput.Error()}, fiber.StatusBadRequest
	}
	return raw, nil, 0
}

func (h *InvoiceHandler) conversionError(c *fiber.Ctx, err error, correlationID string) error {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: domain.ErrEmptyInput.Error()})
	case errors.Is(err, domain.ErrDocumentFormat):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:          "DOCUMENT_FORMAT",
			Message:       err.Error(),
			CorrelationID: correlationID,
		})
	default:
		h.log.Error().Err(err).Str("correlation_id", correlationID).Msg("error inesperado en la conversión")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:          "INTERNAL",
			Message:       "Error al generar el PDF",
			CorrelationID: correlationID,
		})
	}
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
