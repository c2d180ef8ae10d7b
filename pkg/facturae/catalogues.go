// Package facturae contiene catálogos, literales y namespaces del formato
// Facturae (factura electrónica española, esquemas 3.2.x) usados al
// representar una factura firmada (.xsig).
package facturae

// =============================================================================
// Valores centinela
// Se muestran cuando un campo no está en el XML o no se pudo interpretar.
// =============================================================================

const (
	NotAvailable          = "N/A"
	IssuerNotAvailable    = "No disponible"
	SigningTimeNotPresent = "No especificada"
	ZeroAmount            = "0.00"
)

// =============================================================================
// Clase de factura (InvoiceHeader/InvoiceClass)
// =============================================================================

const (
	ClassOriginal            = "OO" // Original
	ClassOriginalCorrective  = "OR" // Original rectificativa
	ClassOriginalSummary     = "OC" // Original recapitulativa
	ClassDuplicateOriginal   = "CO" // Duplicado original
	ClassDuplicateCorrective = "CR" // Duplicado rectificativa
	ClassDuplicateSummary    = "CC" // Duplicado recapitulativa
)

// InvoiceClasses descripción legible de cada código de clase.
var InvoiceClasses = map[string]string{
	ClassOriginal:            "Original",
	ClassOriginalCorrective:  "Original Rectificativa",
	ClassOriginalSummary:     "Original Recapitulativa",
	ClassDuplicateOriginal:   "Duplicado Original",
	ClassDuplicateCorrective: "Duplicado Rectificativa",
	ClassDuplicateSummary:    "Duplicado Recapitulativa",
}

// InvoiceClassDescription devuelve la descripción del código o NotAvailable si no está en la tabla.
func InvoiceClassDescription(code string) string {
	if d, ok := InvoiceClasses[code]; ok {
		return d
	}
	return NotAvailable
}

// =============================================================================
// Literales de estado del certificado de firma
// =============================================================================

const (
	SignatureNotFound        = "No se encontró certificado"
	SignatureExtractionError = "Error al extraer firma"
	SigningTimeUnverifiable  = "No se pudo validar la fecha de firma"

	CertCurrentlyValid = "Certificado actualmente válido"
	CertNotYetValid    = "Certificado aún no válido (vigencia futura)"
	CertExpired        = "Certificado caducado"

	CertValidAtSigning   = "Certificado válido en la fecha de la firma"
	CertInvalidAtSigning = "Certificado NO era válido en la fecha de la firma"
)

// Disclaimer pie de página de la representación.
const Disclaimer = "REPRESENTACIÓN DEL CONTENIDO DE LA FACTURA ELECTRÓNICA Y DEL REGISTRO CONTABLE DE FACTURAS."

// Formatos de fecha de entrada (XML) y de presentación (PDF).
const (
	IssueDateLayout       = "2006-01-02"
	DisplayDateLayout     = "02/01/2006"
	DisplayDateTimeLayout = "02/01/2006 15:04"
	FooterTimestampLayout = "02/01/2006 15:04:05"
	CertificateDateLayout = "2006-01-02"
)
