// Package facturae traduce el XML Facturae de una factura firmada al modelo
// entity.Invoice. Es tolerante: cualquier nodo ausente deja su valor centinela.
//
// Rutas consultadas (relativas a la raíz):
//
//	SellerParty / BuyerParty
//	  TaxIdentification/TaxIdentificationNumber
//	  LegalEntity/CorporateName
//	  LegalEntity/AddressInSpain/{Address,PostCode,Town,Province,CountryCode}
//	  AdministrativeCentres/AdministrativeCentre/{CentreCode,Name}   (solo receptor)
//	Invoices/Invoice (la primera)
//	  InvoiceHeader/{InvoiceNumber,InvoiceSeriesCode,InvoiceDocumentType,InvoiceClass}
//	  InvoiceIssueData/{InvoiceCurrencyCode,IssueDate}
//	  InvoiceTotals/*
//	  Items/InvoiceLine/{ItemDescription,Quantity,UnitPriceWithoutTax,TotalCost}
//	AdditionalData/InvoiceAdditionalInformation
//	LegalLiterals/LegalReference
//	ds:Signature (ver paquete signature)
package facturae

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/xmltree"
	"github.com/jhoicas/xsig-pdf/pkg/facturae"
)

// SignatureInterpreter obtiene los datos del certificado de firma.
type SignatureInterpreter interface {
	Interpret(doc *xmltree.Document) entity.SignatureInfo
}

// Mapper construye entity.Invoice a partir del árbol XML.
type Mapper struct {
	signatures SignatureInterpreter
}

// NewMapper construye el mapper.
func NewMapper(signatures SignatureInterpreter) *Mapper {
	return &Mapper{signatures: signatures}
}

// Map nunca falla: el documento ya parseó, lo que falte queda como centinela.
func (m *Mapper) Map(doc *xmltree.Document) entity.Invoice {
	root := doc.Root()
	invoiceNode := root.FindNode(".//Invoices/Invoice")

	inv := mapInvoiceHeader(invoiceNode)
	inv.Emitter = mapEmitter(root.FindNode(".//SellerParty"))
	inv.Receiver = mapReceiver(root.FindNode(".//BuyerParty"))
	inv.Totals = mapTotals(invoiceNode.FindNode(".//InvoiceTotals"))
	inv.Items = mapItems(invoiceNode)
	inv.AdditionalInfo = strings.TrimSpace(root.FindText(".//AdditionalData/InvoiceAdditionalInformation", ""))
	inv.LegalReferences = NonBlank(textsOf(root.FindNodes(".//LegalLiterals/LegalReference")))
	if m.signatures != nil {
		inv.Signature = m.signatures.Interpret(doc)
	}
	return inv
}

func mapInvoiceHeader(n xmltree.Node) entity.Invoice {
	if !n.Found() {
		return entity.Invoice{
			Number:           facturae.NotAvailable,
			IssueDate:        facturae.NotAvailable,
			DocumentType:     facturae.NotAvailable,
			Currency:         facturae.NotAvailable,
			ClassDescription: facturae.NotAvailable,
		}
	}
	number := n.FindText(".//InvoiceHeader/InvoiceNumber", facturae.NotAvailable)
	series := n.FindText(".//InvoiceHeader/InvoiceSeriesCode", "")
	return entity.Invoice{
		Number:           series + number,
		IssueDate:        FormatIssueDate(n.FindText(".//InvoiceIssueData/IssueDate", facturae.NotAvailable)),
		DocumentType:     n.FindText(".//InvoiceHeader/InvoiceDocumentType", facturae.NotAvailable),
		Currency:         n.FindText(".//InvoiceIssueData/InvoiceCurrencyCode", facturae.NotAvailable),
		ClassDescription: facturae.InvoiceClassDescription(n.FindText(".//InvoiceHeader/InvoiceClass", facturae.NotAvailable)),
	}
}

// FormatIssueDate convierte aaaa-mm-dd en dd/mm/aaaa; cualquier otro texto se devuelve sin cambios.
func FormatIssueDate(raw string) string {
	t, err := time.Parse(facturae.IssueDateLayout, raw)
	if err != nil {
		return raw
	}
	return t.Format(facturae.DisplayDateLayout)
}

// addressPath prefijo común de la dirección de una entidad jurídica española.
const addressPath = ".//LegalEntity/AddressInSpain/"

func mapEmitter(n xmltree.Node) entity.Party {
	if !n.Found() {
		return unavailableParty()
	}
	na := facturae.NotAvailable
	p := entity.Party{
		Name:     n.FindText(".//LegalEntity/CorporateName", na),
		TaxID:    n.FindText(".//TaxIdentification/TaxIdentificationNumber", na),
		Town:     n.FindText(addressPath+"Town", na),
		PostCode: n.FindText(addressPath+"PostCode", na),
		Province: n.FindText(addressPath+"Province", na),
	}
	p.Address = AddressLine(
		n.FindText(addressPath+"Address", na),
		p.PostCode, p.Town, p.Province,
		n.FindText(addressPath+"CountryCode", na),
	)
	return p
}

// mapReceiver: a diferencia del emisor, las partes de la dirección ausentes quedan vacías.
func mapReceiver(n xmltree.Node) entity.Receiver {
	r := entity.Receiver{
		Party:            unavailableParty(),
		AccountingOffice: facturae.NotAvailable,
		ManagingBody:     facturae.NotAvailable,
		ProcessingUnit:   facturae.NotAvailable,
	}
	if !n.Found() {
		return r
	}
	na := facturae.NotAvailable
	r.Name = n.FindText(".//LegalEntity/CorporateName", na)
	r.TaxID = n.FindText(".//TaxIdentification/TaxIdentificationNumber", na)
	r.PostCode = n.FindText(addressPath+"PostCode", "")
	r.Town = n.FindText(addressPath+"Town", "")
	r.Province = n.FindText(addressPath+"Province", "")
	r.Address = AddressLine(
		n.FindText(addressPath+"Address", na),
		r.PostCode, r.Town, r.Province,
		n.FindText(addressPath+"CountryCode", ""),
	)

	codes := RoutingCodes(n.FindNodes(".//AdministrativeCentres/AdministrativeCentre"))
	r.AccountingOffice, r.ManagingBody, r.ProcessingUnit = codes[0], codes[1], codes[2]
	return r
}

// AddressLine "calle, cp población, provincia, país". No omite partes vacías para conservar la forma.
func AddressLine(street, postCode, town, province, country string) string {
	return fmt.Sprintf("%s, %s %s, %s, %s", street, postCode, town, province, country)
}

// RoutingCodes "código - nombre" de los tres primeros centros administrativos:
// oficina contable, órgano gestor y unidad tramitadora, por posición.
func RoutingCodes(centres []xmltree.Node) [3]string {
	out := [3]string{facturae.NotAvailable, facturae.NotAvailable, facturae.NotAvailable}
	for i := 0; i < len(centres) && i < len(out); i++ {
		out[i] = fmt.Sprintf("%s - %s",
			centres[i].FindText("CentreCode", facturae.NotAvailable),
			centres[i].FindText("Name", facturae.NotAvailable),
		)
	}
	return out
}

func unavailableParty() entity.Party {
	na := facturae.NotAvailable
	return entity.Party{Name: na, TaxID: na, Address: na, Town: na, PostCode: na, Province: na}
}

// mapTotals: con bloque presente, bruto y descuentos valen 0.00 por defecto; sin bloque todo es N/A.
func mapTotals(n xmltree.Node) entity.Totals {
	na := facturae.NotAvailable
	if !n.Found() {
		return entity.Totals{
			GrossAmount: na, GeneralDiscounts: na, TaxableBase: na, TaxOutputs: na,
			TaxesWithheld: na, InvoiceTotal: na, OutstandingAmount: na, ExecutableAmount: na,
		}
	}
	return entity.Totals{
		GrossAmount:       n.FindText("TotalGrossAmount", facturae.ZeroAmount),
		GeneralDiscounts:  n.FindText("TotalGeneralDiscounts", facturae.ZeroAmount),
		TaxableBase:       n.FindText("TotalGrossAmountBeforeTaxes", na),
		TaxOutputs:        n.FindText("TotalTaxOutputs", na),
		TaxesWithheld:     n.FindText("TotalTaxesWithheld", na),
		InvoiceTotal:      n.FindText("InvoiceTotal", na),
		OutstandingAmount: n.FindText("TotalOutstandingAmount", na),
		ExecutableAmount:  n.FindText("TotalExecutableAmount", na),
	}
}

// mapItems respeta el orden del documento; no reordena ni convierte importes.
func mapItems(invoiceNode xmltree.Node) []entity.LineItem {
	lines := invoiceNode.FindNodes(".//Items/InvoiceLine")
	items := make([]entity.LineItem, 0, len(lines))
	na := facturae.NotAvailable
	for _, l := range lines {
		items = append(items, entity.LineItem{
			Description: l.FindText("ItemDescription", na),
			Quantity:    l.FindText("Quantity", na),
			UnitPrice:   l.FindText("UnitPriceWithoutTax", na),
			LineTotal:   l.FindText("TotalCost", na),
		})
	}
	return items
}

// NonBlank recorta cada texto y descarta los vacíos, conservando el orden.
func NonBlank(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func textsOf(nodes []xmltree.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Text())
	}
	return out
}
