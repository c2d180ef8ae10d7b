package entity

import (
	"time"

	"github.com/jhoicas/xsig-pdf/pkg/facturae"
)

// CertificateValidity estado del certificado respecto al instante de evaluación.
type CertificateValidity int

const (
	CertificateValid CertificateValidity = iota
	CertificateNotYetValid
	CertificateExpired
)

// SigningValidity estado del certificado en la fecha declarada de firma.
type SigningValidity int

const (
	SigningIndeterminate SigningValidity = iota
	ValidAtSigning
	InvalidAtSigning
)

// SignatureInfo datos del certificado de firma embebido en el .xsig.
// Con Found=false solo Diagnostic tiene contenido.
type SignatureInfo struct {
	Found             bool
	SignerName        string
	TaxID             string
	HashAlgorithm     string
	SigningTime       string // texto de xades:SigningTime, sin garantía de formato
	ValidFrom         time.Time
	ValidUntil        time.Time
	CurrentValidity   CertificateValidity
	ValidityAtSigning SigningValidity
	Issuer            string
	// Diagnostic motivo de Found=false, o error al interpretar la fecha de firma.
	Diagnostic string
}

// ClassifyValidity compara un instante con la ventana [from, until] (inclusiva).
func ClassifyValidity(from, until, at time.Time) CertificateValidity {
	switch {
	case at.Before(from):
		return CertificateNotYetValid
	case at.After(until):
		return CertificateExpired
	default:
		return CertificateValid
	}
}

// CurrentValidityText literal del estado actual del certificado.
func (s SignatureInfo) CurrentValidityText() string {
	switch s.CurrentValidity {
	case CertificateNotYetValid:
		return facturae.CertNotYetValid
	case CertificateExpired:
		return facturae.CertExpired
	default:
		return facturae.CertCurrentlyValid
	}
}

// SigningValidityText literal de la validez en la fecha de firma; si no se pudo determinar, el diagnóstico.
func (s SignatureInfo) SigningValidityText() string {
	switch s.ValidityAtSigning {
	case ValidAtSigning:
		return facturae.CertValidAtSigning
	case InvalidAtSigning:
		return facturae.CertInvalidAtSigning
	}
	if s.Diagnostic != "" {
		return s.Diagnostic
	}
	return facturae.SigningTimeUnverifiable
}
