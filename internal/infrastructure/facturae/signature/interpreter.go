// Package signature interpreta el certificado X.509 y la fecha de firma XAdES
// incluidos en una factura firmada. Solo lee datos para mostrarlos: no verifica
// la firma contra el digest del documento.
package signature

import (
	"crypto/x509"
	"encoding/asn1"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/xmltree"
	"github.com/jhoicas/xsig-pdf/pkg/facturae"
)

// oidSerialNumber atributo serialNumber del sujeto (2.5.4.5): NIF/NIE del firmante en certificados FNMT.
var oidSerialNumber = asn1.ObjectIdentifier{2, 5, 4, 5}

// Interpreter extrae SignatureInfo de un documento parseado.
type Interpreter struct {
	now func() time.Time
}

// NewInterpreter construye el intérprete. now es el reloj de evaluación (nil = time.Now).
func NewInterpreter(now func() time.Time) *Interpreter {
	if now == nil {
		now = time.Now
	}
	return &Interpreter{now: now}
}

// Interpret nunca falla: cualquier problema se refleja en Found/Diagnostic.
func (i *Interpreter) Interpret(doc *xmltree.Document) entity.SignatureInfo {
	root := doc.Root()

	certB64 := root.FindTextNS(facturae.NamespaceDS, "X509Certificate", "")
	if strings.TrimSpace(certB64) == "" {
		return entity.SignatureInfo{Diagnostic: facturae.SignatureNotFound}
	}

	cert, err := parseCertificate(certB64)
	if err != nil {
		return entity.SignatureInfo{
			Diagnostic: fmt.Sprintf("%s: %v", facturae.SignatureExtractionError, err),
		}
	}

	info := entity.SignatureInfo{
		Found:         true,
		SignerName:    nonEmpty(cert.Subject.CommonName, facturae.NotAvailable),
		TaxID:         subjectSerialNumber(cert),
		HashAlgorithm: hashAlgorithmName(cert.SignatureAlgorithm),
		Issuer:        nonEmpty(cert.Issuer.CommonName, facturae.IssuerNotAvailable),
		ValidFrom:     naive(cert.NotBefore.UTC()),
		ValidUntil:    naive(cert.NotAfter.UTC()),
	}
	info.CurrentValidity = entity.ClassifyValidity(info.ValidFrom, info.ValidUntil, naive(i.now().UTC()))

	info.SigningTime = signingTimeText(root)
	signedAt, err := cast.ToTimeE(strings.TrimSpace(info.SigningTime))
	if err != nil {
		info.ValidityAtSigning = entity.SigningIndeterminate
		info.Diagnostic = fmt.Sprintf("%s: %v", facturae.SigningTimeUnverifiable, err)
		return info
	}
	// Se descarta el desfase horario y se compara la hora de pared con la ventana UTC.
	if entity.ClassifyValidity(info.ValidFrom, info.ValidUntil, naive(signedAt)) == entity.CertificateValid {
		info.ValidityAtSigning = entity.ValidAtSigning
	} else {
		info.ValidityAtSigning = entity.InvalidAtSigning
	}
	return info
}

func parseCertificate(b64 string) (*x509.Certificate, error) {
	der, err := base64.StdEncoding.DecodeString(stripSpaces(b64))
	if err != nil {
		return nil, fmt.Errorf("decodificar base64: %w", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("parsear certificado: %w", err)
	}
	return cert, nil
}

func signingTimeText(root xmltree.Node) string {
	for _, ns := range []string{facturae.NamespaceXAdES, facturae.NamespaceXAdES141} {
		if n := root.FindNodeNS(ns, "SigningTime"); n.Found() {
			return n.Text()
		}
	}
	return facturae.SigningTimeNotPresent
}

func subjectSerialNumber(cert *x509.Certificate) string {
	for _, atv := range cert.Subject.Names {
		if !atv.Type.Equal(oidSerialNumber) {
			continue
		}
		if s, ok := atv.Value.(string); ok && s != "" {
			return s
		}
	}
	return facturae.NotAvailable
}

// hashAlgorithmName nombre del hash del algoritmo de firma del certificado ("SHA256", "SHA1"...).
func hashAlgorithmName(alg x509.SignatureAlgorithm) string {
	switch alg {
	case x509.MD2WithRSA:
		return "MD2"
	case x509.MD5WithRSA:
		return "MD5"
	case x509.SHA1WithRSA, x509.DSAWithSHA1, x509.ECDSAWithSHA1:
		return "SHA1"
	case x509.SHA256WithRSA, x509.SHA256WithRSAPSS, x509.DSAWithSHA256, x509.ECDSAWithSHA256:
		return "SHA256"
	case x509.SHA384WithRSA, x509.SHA384WithRSAPSS, x509.ECDSAWithSHA384:
		return "SHA384"
	case x509.SHA512WithRSA, x509.SHA512WithRSAPSS, x509.ECDSAWithSHA512:
		return "SHA512"
	default:
		// Ed25519 y algoritmos desconocidos no tienen hash separado.
		return facturae.NotAvailable
	}
}

// naive conserva la hora de pared y fija la zona a UTC.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
