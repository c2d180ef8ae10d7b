// Package facturaetest genera facturas Facturae firmadas para tests:
// certificados de prueba, firma XAdES y envoltorio .xsig.
package facturaetest

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/xsig-pdf/internal/infrastructure/facturae/signer"
	"github.com/jhoicas/xsig-pdf/pkg/facturae"
)

// Valores por defecto de los certificados de prueba.
var (
	DefaultNotBefore = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	DefaultNotAfter  = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
)

const (
	DefaultSignerName = "GARCIA LOPEZ MARIA - 12345678Z"
	DefaultTaxID      = "IDCES-12345678Z"
	DefaultIssuer     = "AC FNMT Usuarios"
)

// CertOptions datos del certificado de firma. Los campos vacíos toman los valores por defecto;
// OmitCommonName y OmitTaxID dejan el sujeto sin esos atributos.
type CertOptions struct {
	CommonName     string
	TaxID          string
	Issuer         string
	NotBefore      time.Time
	NotAfter       time.Time
	RSA            bool
	OmitCommonName bool
	OmitTaxID      bool
}

// NewCertificate genera una CA y un certificado de firmante emitido por ella.
func NewCertificate(tb testing.TB, opts CertOptions) tls.Certificate {
	tb.Helper()
	if opts.NotBefore.IsZero() {
		opts.NotBefore = DefaultNotBefore
	}
	if opts.NotAfter.IsZero() {
		opts.NotAfter = DefaultNotAfter
	}

	caKey := newKey(tb, opts.RSA)
	caTemplate := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: nonEmpty(opts.Issuer, DefaultIssuer), Organization: []string{"FNMT-RCM"}, Country: []string{"ES"}},
		NotBefore:             opts.NotBefore.AddDate(-1, 0, 0),
		NotAfter:              opts.NotAfter.AddDate(1, 0, 0),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	caDER, err := x509.CreateCertificate(rand.Reader, caTemplate, caTemplate, caKey.Public(), caKey)
	require.NoError(tb, err, "debe generarse la CA de prueba")
	caCert, err := x509.ParseCertificate(caDER)
	require.NoError(tb, err)

	subject := pkix.Name{Country: []string{"ES"}}
	if !opts.OmitCommonName {
		subject.CommonName = nonEmpty(opts.CommonName, DefaultSignerName)
	}
	if !opts.OmitTaxID {
		subject.SerialNumber = nonEmpty(opts.TaxID, DefaultTaxID)
	}

	leafKey := newKey(tb, opts.RSA)
	leafTemplate := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      subject,
		NotBefore:    opts.NotBefore,
		NotAfter:     opts.NotAfter,
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageContentCommitment,
	}
	leafDER, err := x509.CreateCertificate(rand.Reader, leafTemplate, caCert, leafKey.Public(), caKey)
	require.NoError(tb, err, "debe generarse el certificado de firmante")
	leaf, err := x509.ParseCertificate(leafDER)
	require.NoError(tb, err)

	return tls.Certificate{Certificate: [][]byte{leafDER}, PrivateKey: leafKey, Leaf: leaf}
}

func newKey(tb testing.TB, useRSA bool) crypto.Signer {
	tb.Helper()
	if useRSA {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(tb, err)
		return k
	}
	k, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(tb, err)
	return k
}

// Sign firma xml con el servicio de firma usando signingTime como xades:SigningTime.
func Sign(tb testing.TB, xml string, cert tls.Certificate, signingTime time.Time) []byte {
	tb.Helper()
	svc := signer.NewService(signer.WithClock(func() time.Time { return signingTime }))
	signed, err := svc.Sign([]byte(xml), cert)
	require.NoError(tb, err, "la firma de prueba no debe fallar")
	return signed
}

// Container envuelve el XML firmado con bytes ajenos antes y después, como un .xsig real
// con cabecera binaria y relleno final.
func Container(signed []byte) []byte {
	out := []byte("\x00\x01BINARY-HEADER\r\n")
	out = append(out, signed...)
	return append(out, []byte("\r\n\x00 trailing")...)
}

// CertificateBase64 DER del certificado en base64 partido en líneas de 64 caracteres.
func CertificateBase64(cert tls.Certificate) string {
	b64 := base64.StdEncoding.EncodeToString(cert.Certificate[0])
	var sb strings.Builder
	for len(b64) > 64 {
		sb.WriteString(b64[:64])
		sb.WriteString("\n")
		b64 = b64[64:]
	}
	sb.WriteString(b64)
	return sb.String()
}

// SignatureBlock bloque ds:Signature mínimo con el certificado y, si signingTime no es vacío,
// un xades:SigningTime en el namespace xadesNS.
func SignatureBlock(certB64, xadesNS, signingTime string) string {
	var sb strings.Builder
	sb.WriteString(`<ds:Signature xmlns:ds="` + facturae.NamespaceDS + `" xmlns:xades="` + xadesNS + `">`)
	sb.WriteString(`<ds:KeyInfo><ds:X509Data><ds:X509Certificate>` + certB64 + `</ds:X509Certificate></ds:X509Data></ds:KeyInfo>`)
	if signingTime != "" {
		sb.WriteString(`<ds:Object><xades:QualifyingProperties><xades:SignedProperties><xades:SignedSignatureProperties>`)
		sb.WriteString(`<xades:SigningTime>` + signingTime + `</xades:SigningTime>`)
		sb.WriteString(`</xades:SignedSignatureProperties></xades:SignedProperties></xades:QualifyingProperties></ds:Object>`)
	}
	sb.WriteString(`</ds:Signature>`)
	return sb.String()
}

// WithSignature inserta block como último hijo de la raíz de xml.
func WithSignature(xml, block string) string {
	i := strings.LastIndex(xml, "</")
	if i < 0 {
		return xml + block
	}
	return xml[:i] + block + xml[i:]
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
