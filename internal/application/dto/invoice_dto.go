package dto

import (
	"time"

	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
	"github.com/jhoicas/xsig-pdf/pkg/facturae"
)

// InvoiceResponse factura extraída del XSIG para POST /api/invoices/inspect.
type InvoiceResponse struct {
	Number          string             `json:"number"`
	IssueDate       string             `json:"issue_date"`
	DocumentType    string             `json:"document_type"`
	Currency        string             `json:"currency"`
	Class           string             `json:"class"`
	Emitter         PartyResponse      `json:"emitter"`
	Receiver        ReceiverResponse   `json:"receiver"`
	Items           []LineItemResponse `json:"items"`
	Totals          []TotalResponse    `json:"totals"`
	AdditionalInfo  string             `json:"additional_info,omitempty"`
	LegalReferences []string           `json:"legal_references,omitempty"`
	Signature       SignatureResponse  `json:"signature"`
}

// PartyResponse emisor en respuestas.
type PartyResponse struct {
	Name     string `json:"name"`
	TaxID    string `json:"tax_id"`
	Address  string `json:"address"`
	Town     string `json:"town"`
	PostCode string `json:"post_code"`
	Province string `json:"province"`
}

// ReceiverResponse receptor con sus centros DIR3.
type ReceiverResponse struct {
	PartyResponse
	AccountingOffice string `json:"accounting_office"`
	ManagingBody     string `json:"managing_body"`
	ProcessingUnit   string `json:"processing_unit"`
}

// LineItemResponse línea de detalle (texto tal como viene en el XML).
type LineItemResponse struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// TotalResponse importe de totales con su etiqueta.
type TotalResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SignatureResponse datos del certificado de firma. Si found es false solo se informa diagnostic.
type SignatureResponse struct {
	Found             bool   `json:"found"`
	SignerName        string `json:"signer_name,omitempty"`
	TaxID             string `json:"tax_id,omitempty"`
	HashAlgorithm     string `json:"hash_algorithm,omitempty"`
	SigningTime       string `json:"signing_time,omitempty"`
	ValidFrom         string `json:"valid_from,omitempty"`
	ValidUntil        string `json:"valid_until,omitempty"`
	Issuer            string `json:"issuer,omitempty"`
	CurrentValidity   string `json:"current_validity,omitempty"`
	ValidityAtSigning string `json:"validity_at_signing,omitempty"`
	Diagnostic        string `json:"diagnostic,omitempty"`
}

// NewInvoiceResponse convierte el modelo de dominio a su vista JSON.
func NewInvoiceResponse(inv entity.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		Number:       inv.Number,
		IssueDate:    inv.IssueDate,
		DocumentType: inv.DocumentType,
		Currency:     inv.Currency,
		Class:        inv.ClassDescription,
		Emitter:      newPartyResponse(inv.Emitter),
		Receiver: ReceiverResponse{
			PartyResponse:    newPartyResponse(inv.Receiver.Party),
			AccountingOffice: inv.Receiver.AccountingOffice,
			ManagingBody:     inv.Receiver.ManagingBody,
			ProcessingUnit:   inv.Receiver.ProcessingUnit,
		},
		Items:           make([]LineItemResponse, 0, len(inv.Items)),
		AdditionalInfo:  inv.AdditionalInfo,
		LegalReferences: inv.LegalReferences,
		Signature:       newSignatureResponse(inv.Signature),
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, LineItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	for _, f := range inv.Totals.Fields() {
		resp.Totals = append(resp.Totals, TotalResponse{Label: f.Label, Value: f.Value})
	}
	return resp
}

func newPartyResponse(p entity.Party) PartyResponse {
	return PartyResponse{
		Name:     p.Name,
		TaxID:    p.TaxID,
		Address:  p.Address,
		Town:     p.Town,
		PostCode: p.PostCode,
		Province: p.Province,
	}
}

func newSignatureResponse(s entity.SignatureInfo) SignatureResponse {
	if !s.Found {
		return SignatureResponse{Found: false, Diagnostic: s.Diagnostic}
	}
	return SignatureResponse{
		Found:             true,
		SignerName:        s.SignerName,
		TaxID:             s.TaxID,
		HashAlgorithm:     s.HashAlgorithm,
		SigningTime:       s.SigningTime,
		ValidFrom:         formatCertDate(s.ValidFrom),
		ValidUntil:        formatCertDate(s.ValidUntil),
		Issuer:            s.Issuer,
		CurrentValidity:   s.CurrentValidityText(),
		ValidityAtSigning: s.SigningValidityText(),
		Diagnostic:        s.Diagnostic,
	}
}

func formatCertDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(facturae.CertificateDateLayout)
}
