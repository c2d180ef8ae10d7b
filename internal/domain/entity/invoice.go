package entity

// Invoice modelo de la factura extraída del XML Facturae.
// Todos los campos de texto contienen el valor del XML o el centinela documentado
// (facturae.NotAvailable salvo indicación); nunca quedan vacíos por ausencia.
type Invoice struct {
	Number           string // Serie + número, sin separador
	IssueDate        string // dd/mm/aaaa, o el texto original si no tenía formato aaaa-mm-dd
	DocumentType     string
	Currency         string
	ClassDescription string
	Totals           Totals
	Emitter          Party
	Receiver         Receiver
	Items            []LineItem
	Signature        SignatureInfo
	AdditionalInfo   string
	LegalReferences  []string
}

// Party emisor o receptor.
type Party struct {
	Name     string
	TaxID    string
	Address  string // "calle, cp población, provincia, país"
	Town     string
	PostCode string
	Province string
}

// Receiver receptor con sus centros administrativos (DIR3).
type Receiver struct {
	Party
	AccountingOffice string // Oficina contable
	ManagingBody     string // Órgano gestor
	ProcessingUnit   string // Unidad tramitadora
}

// LineItem línea de detalle. Los importes se conservan como texto; se formatean al renderizar.
type LineItem struct {
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
}

// Totals importes de InvoiceTotals tal como aparecen en el XML.
type Totals struct {
	GrossAmount       string // TotalGrossAmount
	GeneralDiscounts  string // TotalGeneralDiscounts
	TaxableBase       string // TotalGrossAmountBeforeTaxes
	TaxOutputs        string // TotalTaxOutputs
	TaxesWithheld     string // TotalTaxesWithheld
	InvoiceTotal      string // InvoiceTotal
	OutstandingAmount string // TotalOutstandingAmount
	ExecutableAmount  string // TotalExecutableAmount
}

// TotalsField par etiqueta/valor en el orden fijo de presentación.
type TotalsField struct {
	Label string
	Value string
}

// Fields devuelve los ocho totales en el orden en que se pintan.
func (t Totals) Fields() []TotalsField {
	return []TotalsField{
		{Label: "Importe bruto total", Value: t.GrossAmount},
		{Label: "Descuentos generales", Value: t.GeneralDiscounts},
		{Label: "Base imponible antes de impuestos", Value: t.TaxableBase},
		{Label: "Importe de impuestos", Value: t.TaxOutputs},
		{Label: "Retenciones", Value: t.TaxesWithheld},
		{Label: "Importe total factura", Value: t.InvoiceTotal},
		{Label: "Importe pendiente", Value: t.OutstandingAmount},
		{Label: "Importe exigible", Value: t.ExecutableAmount},
	}
}
