// Package pdf genera la representación en PDF de una factura electrónica
// Facturae junto con los datos del Registro Contable de Facturas.
//
// Layout de la página A4 (secciones en orden fijo):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Factura: fecha / número / clase / moneda │ PANEL REGISTRO  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR                      │  RECEPTOR (+ centros DIR3)   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cantidad | Precio Unitario | Importe  │
//	│  TOTALES (8 importes)                                       │
//	│  Información adicional / Literales legales (opcionales)     │
//	│  FIRMA ELECTRÓNICA (si hay certificado)                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: leyenda                               fecha generación│
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/phpdave11/gofpdf"

	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
	"github.com/jhoicas/xsig-pdf/pkg/facturae"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorBlack = &props.Color{Red: 0, Green: 0, Blue: 0}
	colorGray  = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorShade = &props.Color{Red: 211, Green: 211, Blue: 211}
	colorPanel = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// ── Métricas de texto ─────────────────────────────────────────────────────────

const (
	fontSize    = 8.0
	lineHeight  = 3.6  // mm por línea a 8 pt
	cellPadding = 1.6  // mm de aire vertical por celda
	charsPerCol = 10.0 // caracteres aproximados por columna de la rejilla de 12 (190 mm útiles)
)

// Mismo documento, mismos bytes: gofpdf recorre sus catálogos de fuentes sobre
// mapas y solo los ordena con este flag global.
func init() {
	gofpdf.SetDefaultCatalogSort(true)
}

// modDateMu protege el ModDate por defecto de gofpdf, que es global y se copia al crear cada instancia.
var modDateMu sync.Mutex

// newDocument crea el documento Maroto con ModDate = at.
func newDocument(cfg *marotoentity.Config, at time.Time) core.Maroto {
	modDateMu.Lock()
	defer modDateMu.Unlock()
	gofpdf.SetDefaultModificationDate(at)
	defer gofpdf.SetDefaultModificationDate(time.Time{})
	return maroto.New(cfg)
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa conversion.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now         func() time.Time
	compression bool
}

// Option configura el generador.
type Option func(*MarotoPDFGenerator)

// WithClock fija el reloj usado para el pie y las fechas de creación y modificación del PDF.
func WithClock(now func() time.Time) Option {
	return func(g *MarotoPDFGenerator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithCompression activa o desactiva la compresión de los streams del PDF.
func WithCompression(on bool) Option {
	return func(g *MarotoPDFGenerator) { g.compression = on }
}

// NewMarotoPDFGenerator construye el generador (reloj del sistema, compresión activa).
func NewMarotoPDFGenerator(opts ...Option) *MarotoPDFGenerator {
	g := &MarotoPDFGenerator{now: time.Now, compression: true}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice entity.Invoice,
	meta entity.RegistryMetadata,
) ([]byte, error) {
	generatedAt := g.now()

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: fontSize}).
		WithTitle("Factura "+invoice.Number, true).
		WithSubject("Representación de factura electrónica", true).
		WithCreationDate(generatedAt).
		WithCompression(g.compression).
		Build()

	m := newDocument(cfg, generatedAt)
	if err := m.RegisterFooter(footerRow(generatedAt)); err != nil {
		return nil, fmt.Errorf("pdf: registrar pie: %w", err)
	}

	m.AddRows(headerRows(invoice, meta)...)
	m.AddRows(spacer())
	m.AddRows(partiesRows(invoice.Emitter, invoice.Receiver)...)
	m.AddRows(spacer())
	m.AddRows(itemsRows(invoice.Items)...)
	m.AddRows(spacer())
	m.AddRows(totalsRows(invoice.Totals)...)
	m.AddRows(spacer())

	if invoice.AdditionalInfo != "" {
		m.AddRows(additionalInfoRows(invoice.AdditionalInfo)...)
		m.AddRows(spacer())
	}
	if len(invoice.LegalReferences) > 0 {
		m.AddRows(legalReferenceRows(invoice.LegalReferences)...)
		m.AddRows(spacer())
	}
	if invoice.Signature.Found {
		m.AddRows(signatureRows(invoice.Signature)...)
		m.AddRows(spacer())
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRows: título y datos de la factura (izq) junto al panel del registro (der).
func headerRows(invoice entity.Invoice, meta entity.RegistryMetadata) []core.Row {
	left := []string{
		"",
		fmt.Sprintf("Fecha de Emisión: %s    Número: %s", invoice.IssueDate, invoice.Number),
		fmt.Sprintf("Clase de factura: %s    Moneda: %s", invoice.ClassDescription, invoice.Currency),
		"",
	}
	panel := [][2]string{
		{"Num.Registro:", meta.RegistryNumber},
		{"Punto de Entrada:", meta.EntryPoint},
		{"Num.Factura RCF:", meta.AccountingRecordNumber},
		{"Fecha y hora registro:", meta.RegisteredAt.Format(facturae.DisplayDateTimeLayout)},
	}
	panelStyle := &props.Cell{
		BackgroundColor: colorPanel,
		BorderType:      border.Full,
		BorderColor:     colorBlack,
		BorderThickness: 0.2,
	}

	rows := make([]core.Row, 0, len(panel))
	for i, p := range panel {
		h := heightFor(cell{left[i], 6}, cell{p[0], 3}, cell{p[1], 3})
		var leftCol core.Col
		if i == 0 {
			h = maxFloat(h, 9)
			leftCol = col.New(6).Add(text.New("Factura", props.Text{
				Style: fontstyle.Bold, Size: 16, Top: 1,
			}))
		} else {
			leftCol = col.New(6).Add(plain(left[i]))
		}
		rows = append(rows, row.New(h).Add(
			leftCol,
			col.New(3).Add(bold(p[0])).WithStyle(panelStyle),
			col.New(3).Add(plain(p[1])).WithStyle(panelStyle),
		))
	}
	return rows
}

// partiesRows: bloque de dos columnas EMISOR | RECEPTOR con cabecera sombreada.
func partiesRows(emitter entity.Party, receiver entity.Receiver) []core.Row {
	left := [][2]string{
		{"Nombre:", emitter.Name},
		{"NIF:", emitter.TaxID},
		{"Dirección:", emitter.Address},
		{"Población:", emitter.Town},
		{"Cod.Postal:", emitter.PostCode},
		{"Provincia:", emitter.Province},
	}
	right := [][2]string{
		{"Nombre:", receiver.Name},
		{"NIF:", receiver.TaxID},
		{"Dirección:", receiver.Address},
		{"Ofi.Cont.:", receiver.AccountingOffice},
		{"Org.Gest.:", receiver.ManagingBody},
		{"Und.Tram.:", receiver.ProcessingUnit},
	}

	rows := []core.Row{
		row.New(heightFor(cell{"EMISOR", 6})).Add(
			col.New(6).Add(bold("EMISOR")).WithStyle(shadedBox()),
			col.New(6).Add(bold("RECEPTOR")).WithStyle(shadedBox()),
		),
	}
	for i := range left {
		h := heightFor(cell{left[i][0], 2}, cell{left[i][1], 4}, cell{right[i][0], 2}, cell{right[i][1], 4})
		rows = append(rows, row.New(h).Add(
			col.New(2).Add(bold(left[i][0])).WithStyle(box()),
			col.New(4).Add(plain(left[i][1])).WithStyle(box()),
			col.New(2).Add(bold(right[i][0])).WithStyle(box()),
			col.New(4).Add(plain(right[i][1])).WithStyle(box()),
		))
	}
	return rows
}

// itemsRows: tabla de conceptos, o una línea indicando que no hay.
func itemsRows(items []entity.LineItem) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(heightFor(cell{NoItemsText, 12})).Add(col.New(12).Add(plain(NoItemsText)))}
	}

	headers := []string{"Descripción", "Cantidad", "Precio Unitario", "Importe"}
	sizes := []int{6, 2, 2, 2}
	hcols := make([]core.Col, 0, len(headers))
	hcells := make([]cell, 0, len(headers))
	for i, h := range headers {
		hcols = append(hcols, col.New(sizes[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: fontSize, Align: align.Center, Top: 1, Left: 1, Right: 1,
		})).WithStyle(shadedBox()))
		hcells = append(hcells, cell{h, sizes[i]})
	}

	rows := make([]core.Row, 0, len(items)+1)
	rows = append(rows, row.New(heightFor(hcells...)).Add(hcols...))
	for _, it := range items {
		qty := entity.ParseAmount(it.Quantity).Format(2)
		price := entity.ParseAmount(it.UnitPrice).Format(4)
		total := entity.ParseAmount(it.LineTotal).Format(2)
		h := heightFor(cell{it.Description, 6}, cell{qty, 2}, cell{price, 2}, cell{total, 2})
		rows = append(rows, row.New(h).Add(
			col.New(6).Add(plain(it.Description)).WithStyle(box()),
			col.New(2).Add(numeric(qty)).WithStyle(box()),
			col.New(2).Add(numeric(price)).WithStyle(box()),
			col.New(2).Add(numeric(total)).WithStyle(box()),
		))
	}
	return rows
}

// NoItemsText línea que sustituye a la tabla cuando la factura no tiene conceptos.
const NoItemsText = "No hay conceptos en la factura."

// totalsRows: los ocho importes en orden fijo, alineados a la derecha.
func totalsRows(totals entity.Totals) []core.Row {
	fields := totals.Fields()
	rows := make([]core.Row, 0, len(fields))
	for i, f := range fields {
		style := box()
		if i == 0 {
			style = shadedBox()
		}
		label := f.Label + ":"
		rows = append(rows, row.New(heightFor(cell{label, 8}, cell{f.Value, 4})).Add(
			col.New(8).Add(bold(label)).WithStyle(style),
			col.New(4).Add(numeric(f.Value)).WithStyle(style),
		))
	}
	return rows
}

func additionalInfoRows(info string) []core.Row {
	return []core.Row{
		row.New(heightFor(cell{"Información Adicional:", 12})).Add(col.New(12).Add(bold("Información Adicional:"))),
		row.New(heightFor(cell{info, 12})).Add(col.New(12).Add(plain(info))),
	}
}

func legalReferenceRows(refs []string) []core.Row {
	rows := make([]core.Row, 0, len(refs)+1)
	rows = append(rows, row.New(heightFor(cell{"Literales Legales:", 12})).Add(col.New(12).Add(bold("Literales Legales:"))))
	for _, ref := range refs {
		rows = append(rows, row.New(heightFor(cell{ref, 12})).Add(col.New(12).Add(plain(ref))))
	}
	return rows
}

// signatureRows: rejilla de 3 filas × 3 pares etiqueta/valor.
func signatureRows(sig entity.SignatureInfo) []core.Row {
	grid := [3][3][2]string{
		{
			{"Firmante:", sig.SignerName},
			{"NIF:", sig.TaxID},
			{"Algoritmo:", sig.HashAlgorithm},
		},
		{
			{"Fecha Firma:", sig.SigningTime},
			{"Desde:", sig.ValidFrom.Format(facturae.CertificateDateLayout)},
			{"Hasta:", sig.ValidUntil.Format(facturae.CertificateDateLayout)},
		},
		{
			{"Estado actual:", sig.CurrentValidityText()},
			{"Validez en firma:", sig.SigningValidityText()},
			{"Autoridad Certificación:", sig.Issuer},
		},
	}

	rows := []core.Row{
		row.New(4),
		row.New(8).Add(col.New(12).Add(text.New("Firma electrónica", props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 1,
		}))),
		row.New(2),
	}
	for r, pairs := range grid {
		style := box()
		if r == 0 {
			style = shadedBox()
		}
		cols := make([]core.Col, 0, 6)
		cells := make([]cell, 0, 6)
		for _, p := range pairs {
			cols = append(cols,
				col.New(2).Add(bold(p[0])).WithStyle(style),
				col.New(2).Add(plain(p[1])).WithStyle(style),
			)
			cells = append(cells, cell{p[0], 2}, cell{p[1], 2})
		}
		rows = append(rows, row.New(heightFor(cells...)).Add(cols...))
	}
	return rows
}

// footerRow: leyenda fija y marca de tiempo de generación, en todas las páginas.
func footerRow(generatedAt time.Time) core.Row {
	small := props.Text{Size: 7, Color: colorGray, Top: 2}
	right := small
	right.Align = align.Right
	return row.New(8).Add(
		col.New(9).Add(text.New(facturae.Disclaimer, small)),
		col.New(3).Add(text.New(generatedAt.Format(facturae.FooterTimestampLayout), right)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// cell texto y ancho (en columnas de la rejilla) usados para estimar la altura de fila.
type cell struct {
	text string
	size int
}

// heightFor altura de fila suficiente para la celda con más líneas.
func heightFor(cells ...cell) float64 {
	lines := 1
	for _, c := range cells {
		if n := wrappedLines(c.text, c.size); n > lines {
			lines = n
		}
	}
	return float64(lines)*lineHeight + cellPadding
}

func wrappedLines(s string, size int) int {
	perLine := int(float64(size) * charsPerCol)
	if perLine < 1 {
		perLine = 1
	}
	total := 0
	for _, part := range strings.Split(s, "\n") {
		n := (utf8.RuneCountInString(part) + perLine - 1) / perLine
		if n == 0 {
			n = 1
		}
		total += n
	}
	return total
}

func plain(s string) core.Component {
	return text.New(s, props.Text{Size: fontSize, Top: 1, Left: 1, Right: 1})
}

func bold(s string) core.Component {
	return text.New(s, props.Text{Style: fontstyle.Bold, Size: fontSize, Top: 1, Left: 1, Right: 1})
}

func numeric(s string) core.Component {
	return text.New(s, props.Text{Size: fontSize, Align: align.Right, Top: 1, Left: 1, Right: 1})
}

func box() *props.Cell {
	return &props.Cell{BorderType: border.Full, BorderColor: colorBlack, BorderThickness: 0.2}
}

func shadedBox() *props.Cell {
	return &props.Cell{BackgroundColor: colorShade, BorderType: border.Full, BorderColor: colorBlack, BorderThickness: 0.2}
}

func spacer() core.Row {
	return line.NewRow(4, props.Line{Color: colorPanel, Thickness: 0.1})
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
