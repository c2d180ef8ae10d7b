package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/pdf"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, 3, 10, 9, 15, 30, 0, time.UTC)

func newGenerator() *pdf.MarotoPDFGenerator {
	return pdf.NewMarotoPDFGenerator(
		pdf.WithClock(func() time.Time { return fixedNow }),
		pdf.WithCompression(false),
	)
}

func sampleInvoice() entity.Invoice {
	return entity.Invoice{
		Number:           "A2025-0042",
		IssueDate:        "28/02/2025",
		DocumentType:     "FC",
		Currency:         "EUR",
		ClassDescription: "Original",
		Totals: entity.Totals{
			GrossAmount:       "1250.00",
			GeneralDiscounts:  "0.00",
			TaxableBase:       "1250.00",
			TaxOutputs:        "262.50",
			TaxesWithheld:     "0.00",
			InvoiceTotal:      "1512.50",
			OutstandingAmount: "1512.50",
			ExecutableAmount:  "1512.50",
		},
		Emitter: entity.Party{
			Name: "Suministros Nandu SL", TaxID: "B12345678",
			Address: "Calle Mayor 1, 28013 Madrid, Madrid, ESP",
			Town:    "Madrid", PostCode: "28013", Province: "Madrid",
		},
		Receiver: entity.Receiver{
			Party: entity.Party{
				Name: "Ayuntamiento de Madrid", TaxID: "P2807900B",
				Address: "Plaza de la Villa 5, 28005 Madrid, Madrid, ESP",
				Town:    "Madrid", PostCode: "28005", Province: "Madrid",
			},
			AccountingOffice: "L01280796 - Intervencion General",
			ManagingBody:     "L01280797 - Area de Hacienda",
			ProcessingUnit:   "L01280798 - Servicio de Compras",
		},
		Items: []entity.LineItem{
			{Description: "Papel A4 80 g", Quantity: "50", UnitPrice: "20.000000", LineTotal: "1000.00"},
			{Description: "Toner laser negro", Quantity: "2.5", UnitPrice: "100", LineTotal: "250"},
		},
		AdditionalInfo:  "Pedido 2025/118",
		LegalReferences: []string{"Operacion sujeta a IVA"},
	}
}

func sampleMeta() entity.RegistryMetadata {
	madrid, _ := time.LoadLocation("Europe/Madrid")
	return entity.RegistryMetadata{
		RegistryNumber:         "REG-2025-000123",
		EntryPoint:             "FACe",
		AccountingRecordNumber: "RCF-778",
		RegisteredAt:           time.Date(2025, 3, 5, 12, 30, 0, 0, madrid),
	}
}

func pageCount(t *testing.T, doc []byte) int {
	t.Helper()
	api.DisableConfigDir()
	n, err := api.PageCount(bytes.NewReader(doc), nil)
	require.NoError(t, err)
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Generación
// ──────────────────────────────────────────────────────────────────────────────

// TestGenerateInvoicePDF_Basico verifica que el documento es un PDF de una
// página con las secciones fijas, el panel del registro y el pie.
func TestGenerateInvoicePDF_Basico(t *testing.T) {
	doc, err := newGenerator().GenerateInvoicePDF(context.Background(), sampleInvoice(), sampleMeta())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")), "cabecera PDF")
	assert.Equal(t, 1, pageCount(t, doc))

	for _, want := range []string{
		"EMISOR", "RECEPTOR", "REG-2025-000123", "RCF-778", "05/03/2025 12:30",
		"A2025-0042", "1512.50", "1000.00", "20.0000", "Pedido 2025/118", "10/03/2025 09:15:30",
	} {
		assert.Contains(t, string(doc), want)
	}
	assert.NotContains(t, string(doc), "Algoritmo:", "sin certificado no hay bloque de firma")
	assert.NotContains(t, string(doc), pdf.NoItemsText)
}

// TestGenerateInvoicePDF_ConFirma el bloque de firma aparece solo si hay certificado.
func TestGenerateInvoicePDF_ConFirma(t *testing.T) {
	inv := sampleInvoice()
	inv.Signature = entity.SignatureInfo{
		Found:             true,
		SignerName:        "GARCIA LOPEZ MARIA",
		TaxID:             "IDCES-12345678Z",
		HashAlgorithm:     "SHA256-RSA",
		SigningTime:       "2025-03-01T10:00:00+01:00",
		ValidFrom:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrentValidity:   entity.CertificateValid,
		ValidityAtSigning: entity.ValidAtSigning,
		Issuer:            "AC FNMT Usuarios",
	}

	doc, err := newGenerator().GenerateInvoicePDF(context.Background(), inv, sampleMeta())
	require.NoError(t, err)

	for _, want := range []string{"Algoritmo:", "SHA256-RSA", "GARCIA", "2024-01-01", "2026-01-01", "FNMT"} {
		assert.Contains(t, string(doc), want)
	}
}

func TestGenerateInvoicePDF_SinConceptos(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil

	doc, err := newGenerator().GenerateInvoicePDF(context.Background(), inv, sampleMeta())
	require.NoError(t, err)

	assert.Contains(t, string(doc), "conceptos en la factura")
	assert.Equal(t, 1, pageCount(t, doc))
}

// TestGenerateInvoicePDF_Paginacion muchas líneas de detalle desbordan a varias páginas.
func TestGenerateInvoicePDF_Paginacion(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil
	for i := 0; i < 120; i++ {
		inv.Items = append(inv.Items, entity.LineItem{
			Description: fmt.Sprintf("Concepto %03d", i),
			Quantity:    "1", UnitPrice: "10", LineTotal: "10",
		})
	}

	doc, err := newGenerator().GenerateInvoicePDF(context.Background(), inv, sampleMeta())
	require.NoError(t, err)

	assert.Greater(t, pageCount(t, doc), 1)
	assert.Contains(t, string(doc), "Concepto 119")
}

// TestGenerateInvoicePDF_Idempotente con el mismo reloj, la misma entrada da
// los mismos bytes, fechas de creación y modificación incluidas.
func TestGenerateInvoicePDF_Idempotente(t *testing.T) {
	g := newGenerator()
	first, err := g.GenerateInvoicePDF(context.Background(), sampleInvoice(), sampleMeta())
	require.NoError(t, err)
	second, err := g.GenerateInvoicePDF(context.Background(), sampleInvoice(), sampleMeta())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, string(first), "/CreationDate (D:20250310091530)")
	assert.Contains(t, string(first), "/ModDate (D:20250310091530)")
}

// Generaciones concurrentes con relojes distintos no se pisan la fecha de modificación.
func TestGenerateInvoicePDF_ConcurrenteConRelojesDistintos(t *testing.T) {
	other := time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)
	gens := []*pdf.MarotoPDFGenerator{
		newGenerator(),
		pdf.NewMarotoPDFGenerator(pdf.WithCompression(false), pdf.WithClock(func() time.Time { return other })),
	}
	want := []string{"/ModDate (D:20250310091530)", "/ModDate (D:20241231235900)"}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := gens[i%2].GenerateInvoicePDF(context.Background(), sampleInvoice(), sampleMeta())
			if err != nil {
				errs <- err
				return
			}
			if !strings.Contains(string(doc), want[i%2]) {
				errs <- fmt.Errorf("documento %d sin %s", i, want[i%2])
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestGenerateInvoicePDF_Compresion(t *testing.T) {
	plain, err := newGenerator().GenerateInvoicePDF(context.Background(), sampleInvoice(), sampleMeta())
	require.NoError(t, err)

	compressed, err := pdf.NewMarotoPDFGenerator(
		pdf.WithClock(func() time.Time { return fixedNow }),
	).GenerateInvoicePDF(context.Background(), sampleInvoice(), sampleMeta())
	require.NoError(t, err)

	assert.Less(t, len(compressed), len(plain))
	assert.NotContains(t, string(compressed), "EMISOR", "los streams comprimidos no dejan el texto a la vista")
	assert.Equal(t, 1, pageCount(t, compressed))
}
