package signer_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/xsig-pdf/internal/infrastructure/facturae/facturaetest"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/facturae/signer"
)

var signedAt = time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))

func signAndParse(t *testing.T, cert tls.Certificate) *etree.Document {
	t.Helper()
	svc := signer.NewService(signer.WithClock(func() time.Time { return signedAt }))
	out, err := svc.Sign([]byte(facturaetest.InvoiceXML), cert)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "<?xml"), "el resultado conserva o añade el prólogo XML")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	return doc
}

func TestSign_Estructura(t *testing.T) {
	tests := []struct {
		name    string
		rsa     bool
		alg     string
		sigSize int
	}{
		{"ECDSA P-256", false, signer.AlgECDSASHA256, 64},
		{"RSA 2048", true, signer.AlgRSASHA256, 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cert := facturaetest.NewCertificate(t, facturaetest.CertOptions{RSA: tt.rsa})
			doc := signAndParse(t, cert)

			children := doc.Root().ChildElements()
			require.NotEmpty(t, children)
			sig := children[len(children)-1]
			assert.Equal(t, "Signature", sig.Tag, "la firma es el último hijo de la raíz")
			assert.Equal(t, signer.NamespaceDS, sig.NamespaceURI())

			method := sig.FindElement("./ds:SignedInfo/ds:SignatureMethod")
			require.NotNil(t, method)
			assert.Equal(t, tt.alg, method.SelectAttrValue("Algorithm", ""))

			ref := sig.FindElement("./ds:SignedInfo/ds:Reference")
			require.NotNil(t, ref)
			assert.Equal(t, "", ref.SelectAttrValue("URI", "-"), "firma enveloped sobre el documento completo")

			value, err := base64.StdEncoding.DecodeString(sig.FindElement("./ds:SignatureValue").Text())
			require.NoError(t, err)
			assert.Len(t, value, tt.sigSize)

			raw, err := base64.StdEncoding.DecodeString(sig.FindElement(".//ds:X509Certificate").Text())
			require.NoError(t, err)
			assert.Equal(t, cert.Certificate[0], raw)

			assert.Equal(t, "2025-03-01T10:00:00+01:00", sig.FindElement(".//xades:SigningTime").Text())
			assert.Equal(t, signer.SignaturePolicyURL, sig.FindElement(".//xades:SigPolicyId/xades:Identifier").Text())
			assert.Equal(t, signer.SigPolicyHashDigest, sig.FindElement(".//xades:SigPolicyHash/ds:DigestValue").Text())

			leaf, err := x509.ParseCertificate(cert.Certificate[0])
			require.NoError(t, err)
			assert.Equal(t, leaf.SerialNumber.String(), sig.FindElement(".//ds:X509SerialNumber").Text())
		})
	}
}

// El contenido original de la factura no cambia al firmar.
func TestSign_ConservaFactura(t *testing.T) {
	doc := signAndParse(t, facturaetest.NewCertificate(t, facturaetest.CertOptions{}))

	assert.Equal(t, "B12345678", doc.FindElement("//SellerParty//TaxIdentificationNumber").Text())
	assert.Equal(t, "1512.50", doc.FindElement("//InvoiceTotals/InvoiceTotal").Text())
	assert.Len(t, doc.FindElements("//ds:Signature"), 1)
}

func TestSign_Errores(t *testing.T) {
	cert := facturaetest.NewCertificate(t, facturaetest.CertOptions{})
	_, edKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	tests := []struct {
		name string
		xml  string
		cert tls.Certificate
		want string
	}{
		{"XML vacío", "", cert, "XML vacío"},
		{"sin certificado", facturaetest.InvoiceXML, tls.Certificate{}, "certificado vacío"},
		{"certificado corrupto", facturaetest.InvoiceXML, tls.Certificate{Certificate: [][]byte{{0x30, 0x01}}, PrivateKey: cert.PrivateKey}, "parsear certificado"},
		{"llave no soportada", facturaetest.InvoiceXML, tls.Certificate{Certificate: cert.Certificate, PrivateKey: edKey}, "no soportado"},
		{"XML mal formado", "<Facturae><sin-cerrar>", cert, "parsear XML"},
		{"sin raíz", "<?xml version=\"1.0\"?>", cert, "sin raíz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.NewService().Sign([]byte(tt.xml), tt.cert)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromPEM(t *testing.T) {
	cert := facturaetest.NewCertificate(t, facturaetest.CertOptions{})
	keyDER, err := x509.MarshalPKCS8PrivateKey(cert.PrivateKey)
	require.NoError(t, err)

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Certificate[0]})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})

	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")
	combined := filepath.Join(dir, "combinado.pem")
	require.NoError(t, os.WriteFile(certPath, certPEM, 0o600))
	require.NoError(t, os.WriteFile(keyPath, keyPEM, 0o600))
	require.NoError(t, os.WriteFile(combined, append(append([]byte{}, certPEM...), keyPEM...), 0o600))

	loaded, err := signer.LoadFromPEM(certPath, keyPath)
	require.NoError(t, err)
	assert.Equal(t, cert.Certificate[0], loaded.Certificate[0])

	loaded, err = signer.LoadFromPEM(combined, "")
	require.NoError(t, err)
	assert.Equal(t, cert.Certificate[0], loaded.Certificate[0])

	_, err = signer.LoadFromPEM(filepath.Join(dir, "no-existe.pem"), "")
	assert.Error(t, err)
}

func TestLoadFromP12_Errores(t *testing.T) {
	_, err := signer.LoadFromP12(filepath.Join(t.TempDir(), "no-existe.p12"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leer p12")

	_, err = signer.DecodeP12([]byte("no es pkcs12"), "clave")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decodificar p12")
}
