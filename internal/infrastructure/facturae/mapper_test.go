package facturae_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/xsig-pdf/internal/domain"
	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/facturae"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/facturae/facturaetest"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/facturae/signature"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/xmltree"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/xsig"
	pkgfacturae "github.com/jhoicas/xsig-pdf/pkg/facturae"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// stubSignatures devuelve siempre el mismo resultado y cuenta las llamadas.
type stubSignatures struct {
	info  entity.SignatureInfo
	calls int
}

func (s *stubSignatures) Interpret(*xmltree.Document) entity.SignatureInfo {
	s.calls++
	return s.info
}

func mapXML(t *testing.T, xml string) entity.Invoice {
	t.Helper()
	doc, err := xsig.Parse([]byte(xml))
	require.NoError(t, err)
	return facturae.NewMapper(&stubSignatures{}).Map(doc)
}

// replace sustituye old por new en la factura de ejemplo (exige que old exista).
func replace(t *testing.T, old, new string) string {
	t.Helper()
	require.Contains(t, facturaetest.InvoiceXML, old)
	return strings.Replace(facturaetest.InvoiceXML, old, new, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Factura completa
// ──────────────────────────────────────────────────────────────────────────────

func TestMap_FacturaCompleta(t *testing.T) {
	inv := mapXML(t, facturaetest.InvoiceXML)

	assert.Equal(t, "A2025-0042", inv.Number, "serie y número se concatenan sin separador")
	assert.Equal(t, "28/02/2025", inv.IssueDate)
	assert.Equal(t, "FC", inv.DocumentType)
	assert.Equal(t, "EUR", inv.Currency)
	assert.Equal(t, "Original", inv.ClassDescription)

	assert.Equal(t, entity.Party{
		Name:     "Suministros Ñandú S.L.",
		TaxID:    "B12345678",
		Address:  "Calle Mayor 1, 28013 Madrid, Madrid, ESP",
		Town:     "Madrid",
		PostCode: "28013",
		Province: "Madrid",
	}, inv.Emitter)

	assert.Equal(t, "Ayuntamiento de Madrid", inv.Receiver.Name)
	assert.Equal(t, "P2807900B", inv.Receiver.TaxID)
	assert.Equal(t, "Plaza de la Villa 5, 28005 Madrid, Madrid, ESP", inv.Receiver.Address)
	assert.Equal(t, "Madrid", inv.Receiver.Town, "las partes de la dirección también se exponen por separado")
	assert.Equal(t, "28005", inv.Receiver.PostCode)
	assert.Equal(t, "Madrid", inv.Receiver.Province)
	assert.Equal(t, "L01280796 - Intervención General", inv.Receiver.AccountingOffice)
	assert.Equal(t, "L01280797 - Área de Hacienda", inv.Receiver.ManagingBody)
	assert.Equal(t, "L01280798 - Servicio de Compras", inv.Receiver.ProcessingUnit)

	assert.Equal(t, entity.Totals{
		GrossAmount:       "1250.00",
		GeneralDiscounts:  "0.00",
		TaxableBase:       "1250.00",
		TaxOutputs:        "262.50",
		TaxesWithheld:     "0.00",
		InvoiceTotal:      "1512.50",
		OutstandingAmount: "1512.50",
		ExecutableAmount:  "1512.50",
	}, inv.Totals)

	require.Len(t, inv.Items, 2)
	assert.Equal(t, entity.LineItem{
		Description: "Papel A4 80 g (caja 5 paquetes)",
		Quantity:    "50",
		UnitPrice:   "20.000000",
		LineTotal:   "1000.00",
	}, inv.Items[0], "los importes se conservan como texto")
	assert.Equal(t, "Tóner láser negro", inv.Items[1].Description)

	assert.Equal(t, "Pedido 2025/118", inv.AdditionalInfo)
	assert.Equal(t, []string{"Operación sujeta a IVA", "Inscrita en el Registro Mercantil de Madrid"}, inv.LegalReferences,
		"los literales se recortan y los vacíos se descartan")
}

// El intérprete de firma se invoca una vez y su resultado se incorpora tal cual.
func TestMap_UsaInterpreteDeFirma(t *testing.T) {
	doc, err := xsig.Parse([]byte(facturaetest.InvoiceXML))
	require.NoError(t, err)
	stub := &stubSignatures{info: entity.SignatureInfo{Found: true, SignerName: "FIRMANTE"}}

	inv := facturae.NewMapper(stub).Map(doc)

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, stub.info, inv.Signature)
}

// ──────────────────────────────────────────────────────────────────────────────
// Valores por defecto
// ──────────────────────────────────────────────────────────────────────────────

// Documento sin contenido: todo N/A, sin líneas ni literales.
func TestMap_DocumentoVacio(t *testing.T) {
	inv := mapXML(t, facturaetest.MinimalXML)
	na := pkgfacturae.NotAvailable

	assert.Equal(t, na, inv.Number)
	assert.Equal(t, na, inv.IssueDate)
	assert.Equal(t, na, inv.DocumentType)
	assert.Equal(t, na, inv.Currency)
	assert.Equal(t, na, inv.ClassDescription)
	assert.Equal(t, entity.Party{Name: na, TaxID: na, Address: na, Town: na, PostCode: na, Province: na}, inv.Emitter)
	assert.Equal(t, na, inv.Receiver.Name)
	assert.Equal(t, na, inv.Receiver.Address)
	assert.Equal(t, na, inv.Receiver.AccountingOffice)
	assert.Equal(t, na, inv.Receiver.ManagingBody)
	assert.Equal(t, na, inv.Receiver.ProcessingUnit)
	for _, f := range inv.Totals.Fields() {
		assert.Equal(t, na, f.Value, "sin InvoiceTotals %q debe ser N/A", f.Label)
	}
	assert.Empty(t, inv.Items)
	assert.Empty(t, inv.LegalReferences)
	assert.Equal(t, "", inv.AdditionalInfo)
}

func TestMap_ClaseDeFactura(t *testing.T) {
	tests := map[string]string{
		"OO": "Original",
		"OR": "Original Rectificativa",
		"OC": "Original Recapitulativa",
		"CO": "Duplicado Original",
		"CR": "Duplicado Rectificativa",
		"CC": "Duplicado Recapitulativa",
		"ZZ": pkgfacturae.NotAvailable,
	}
	for code, want := range tests {
		t.Run(code, func(t *testing.T) {
			inv := mapXML(t, replace(t, "<InvoiceClass>OO</InvoiceClass>", "<InvoiceClass>"+code+"</InvoiceClass>"))
			assert.Equal(t, want, inv.ClassDescription)
		})
	}
}

func TestMap_FechaDeEmision(t *testing.T) {
	inv := mapXML(t, replace(t, "<IssueDate>2025-02-28</IssueDate>", "<IssueDate>28-02-2025</IssueDate>"))
	assert.Equal(t, "28-02-2025", inv.IssueDate, "un formato distinto de aaaa-mm-dd se muestra sin cambios")
}

func TestMap_SinSerie(t *testing.T) {
	inv := mapXML(t, replace(t, "<InvoiceSeriesCode>A2025-</InvoiceSeriesCode>", ""))
	assert.Equal(t, "0042", inv.Number)
}

// Con InvoiceTotals presente, bruto y descuentos valen 0.00 si faltan; el resto N/A.
func TestMap_TotalesParciales(t *testing.T) {
	xml := replace(t, "<TotalGrossAmount>1250.00</TotalGrossAmount>", "")
	xml = strings.Replace(xml, "<TotalGeneralDiscounts>0.00</TotalGeneralDiscounts>", "", 1)
	xml = strings.Replace(xml, "<InvoiceTotal>1512.50</InvoiceTotal>", "", 1)

	inv := mapXML(t, xml)

	assert.Equal(t, pkgfacturae.ZeroAmount, inv.Totals.GrossAmount)
	assert.Equal(t, pkgfacturae.ZeroAmount, inv.Totals.GeneralDiscounts)
	assert.Equal(t, pkgfacturae.NotAvailable, inv.Totals.InvoiceTotal)
	assert.Equal(t, "262.50", inv.Totals.TaxOutputs)
}

// Receptor sin población ni provincia: la dirección conserva su forma con huecos vacíos.
func TestMap_DireccionReceptorIncompleta(t *testing.T) {
	xml := replace(t, "<Address>Plaza de la Villa 5</Address>\n          <PostCode>28005</PostCode>\n          <Town>Madrid</Town>\n          <Province>Madrid</Province>",
		"<Address>Plaza de la Villa 5</Address>")

	inv := mapXML(t, xml)

	assert.Equal(t, "Plaza de la Villa 5,  , , ESP", inv.Receiver.Address)
	assert.Empty(t, inv.Receiver.Town)
	assert.Empty(t, inv.Receiver.PostCode)
	assert.Empty(t, inv.Receiver.Province)
}

// Con un solo centro administrativo, los otros dos quedan N/A.
func TestRoutingCodes(t *testing.T) {
	doc, err := xsig.Parse([]byte(`<r><C><CentreCode>GE0001</CentreCode></C><C><Name>Sin código</Name></C></r>`))
	require.NoError(t, err)

	codes := facturae.RoutingCodes(doc.Root().FindNodes("C"))

	assert.Equal(t, [3]string{"GE0001 - N/A", "N/A - Sin código", "N/A"}, codes)
}

// Con más de tres centros solo cuentan los tres primeros, en orden de documento.
func TestRoutingCodes_MasDeTresCentros(t *testing.T) {
	doc, err := xsig.Parse([]byte(`<r>` +
		`<C><CentreCode>OC01</CentreCode><Name>Oficina</Name></C>` +
		`<C><CentreCode>OG02</CentreCode><Name>Órgano</Name></C>` +
		`<C><CentreCode>UT03</CentreCode><Name>Unidad</Name></C>` +
		`<C><CentreCode>XX04</CentreCode><Name>Sobrante</Name></C>` +
		`</r>`))
	require.NoError(t, err)

	codes := facturae.RoutingCodes(doc.Root().FindNodes("C"))

	assert.Equal(t, [3]string{"OC01 - Oficina", "OG02 - Órgano", "UT03 - Unidad"}, codes)
}

// El mapeo del receptor usa el mismo criterio: el cuarto centro se ignora.
func TestMap_CuartoCentroIgnorado(t *testing.T) {
	extra := "<AdministrativeCentre><CentreCode>XX04</CentreCode><Name>Sobrante</Name></AdministrativeCentre>\n        </AdministrativeCentres>"
	inv := mapXML(t, replace(t, "</AdministrativeCentres>", extra))

	assert.Equal(t, "L01280796 - Intervención General", inv.Receiver.AccountingOffice)
	assert.Equal(t, "L01280797 - Área de Hacienda", inv.Receiver.ManagingBody)
	assert.Equal(t, "L01280798 - Servicio de Compras", inv.Receiver.ProcessingUnit)
}

func TestNonBlank(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, facturae.NonBlank([]string{" a ", "", "\n\t", "b"}))
	assert.Empty(t, facturae.NonBlank(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reader (contenedor → modelo)
// ──────────────────────────────────────────────────────────────────────────────

// Factura firmada y envuelta: el lector encadena extracción, parseo, mapeo y firma.
func TestReader_FacturaFirmada(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cert := facturaetest.NewCertificate(t, facturaetest.CertOptions{})
	raw := facturaetest.Container(facturaetest.Sign(t, facturaetest.InvoiceXML, cert, now))

	reader := facturae.NewReader(facturae.NewMapper(signature.NewInterpreter(func() time.Time { return now })))
	inv, err := reader.Read(raw)

	require.NoError(t, err)
	assert.Equal(t, "A2025-0042", inv.Number)
	assert.True(t, inv.Signature.Found)
	assert.Equal(t, facturaetest.DefaultSignerName, inv.Signature.SignerName)
	assert.Equal(t, entity.ValidAtSigning, inv.Signature.ValidityAtSigning)
}

func TestReader_Errores(t *testing.T) {
	reader := facturae.NewReader(facturae.NewMapper(&stubSignatures{}))

	_, err := reader.Read(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	_, err = reader.Read([]byte("no es xml"))
	assert.ErrorIs(t, err, domain.ErrDocumentFormat)
}
