// Firma XAdES-EPES enveloped de ficheros Facturae: añade <ds:Signature> como
// último hijo del elemento raíz. Pensado para generar ficheros .xsig de prueba;
// la firma no se verifica en ningún punto del servicio.

package signer

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/ucarion/c14n"
)

// Service firma documentos Facturae.
type Service struct {
	now func() time.Time
}

// Option configura el servicio.
type Option func(*Service)

// WithClock fija el reloj usado para xades:SigningTime.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService crea el servicio con el reloj del sistema.
func NewService(opts ...Option) *Service {
	s := &Service{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sign firma el XML con el certificado (llave RSA o ECDSA) y devuelve el documento firmado.
func (s *Service) Sign(xmlBytes []byte, cert tls.Certificate) ([]byte, error) {
	if len(xmlBytes) == 0 {
		return nil, fmt.Errorf("signer: XML vacío")
	}
	if len(cert.Certificate) == 0 {
		return nil, fmt.Errorf("signer: certificado vacío")
	}
	x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return nil, fmt.Errorf("signer: parsear certificado: %w", err)
	}
	signatureMethod, err := signatureMethodFor(cert.PrivateKey)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("signer: parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("signer: documento sin raíz")
	}

	// 1) Digest del documento sin firma (transformación enveloped + C14N)
	canonicalDoc, err := canonicalizeXML(xmlBytes)
	if err != nil {
		canonicalDoc = xmlBytes
	}
	docDigest := sha256.Sum256(canonicalDoc)

	// 2) SignedInfo
	id := uuid.NewString()
	signedInfoXML := buildSignedInfo(signatureMethod, base64.StdEncoding.EncodeToString(docDigest[:]))
	canonicalSignedInfo, err := canonicalizeXML([]byte(signedInfoXML))
	if err != nil {
		canonicalSignedInfo = []byte(signedInfoXML)
	}
	signatureValue, err := signDigest(cert.PrivateKey, canonicalSignedInfo)
	if err != nil {
		return nil, err
	}

	// 3) Signature completa con KeyInfo y QualifyingProperties
	certDigest, issuerName, serial := certDigestAndIssuerSerial(x509Cert)
	signatureXML := buildSignature(signatureParts{
		ID:             id,
		SignedInfo:     signedInfoXML,
		SignatureValue: base64.StdEncoding.EncodeToString(signatureValue),
		Certificate:    base64.StdEncoding.EncodeToString(x509Cert.Raw),
		SigningTime:    s.now().Format(SigningTimeLayout),
		CertDigest:     certDigest,
		IssuerName:     issuerName,
		Serial:         serial,
	})

	// 4) Inyectar como último hijo de la raíz
	sigDoc := etree.NewDocument()
	if err := sigDoc.ReadFromString(signatureXML); err != nil {
		return nil, fmt.Errorf("signer: parsear Signature: %w", err)
	}
	root.AddChild(sigDoc.Root())

	var out bytes.Buffer
	if !hasProlog(doc) {
		out.WriteString(xmlHeader)
	}
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("signer: serializar: %w", err)
	}
	return out.Bytes(), nil
}

func hasProlog(doc *etree.Document) bool {
	for _, t := range doc.Child {
		if pi, ok := t.(*etree.ProcInst); ok && pi.Target == "xml" {
			return true
		}
	}
	return false
}

func signatureMethodFor(key crypto.PrivateKey) (string, error) {
	switch key.(type) {
	case *rsa.PrivateKey:
		return AlgRSASHA256, nil
	case *ecdsa.PrivateKey:
		return AlgECDSASHA256, nil
	default:
		return "", fmt.Errorf("signer: tipo de llave privada no soportado %T", key)
	}
}

// signDigest firma SHA-256(data). ECDSA se codifica como r||s (XMLDSig), no ASN.1.
func signDigest(key crypto.PrivateKey, data []byte) ([]byte, error) {
	h := sha256.Sum256(data)
	switch k := key.(type) {
	case *rsa.PrivateKey:
		sig, err := rsa.SignPKCS1v15(rand.Reader, k, crypto.SHA256, h[:])
		if err != nil {
			return nil, fmt.Errorf("signer: firmar SignedInfo: %w", err)
		}
		return sig, nil
	case *ecdsa.PrivateKey:
		r, sv, err := ecdsa.Sign(rand.Reader, k, h[:])
		if err != nil {
			return nil, fmt.Errorf("signer: firmar SignedInfo: %w", err)
		}
		size := (k.Curve.Params().BitSize + 7) / 8
		sig := make([]byte, 2*size)
		r.FillBytes(sig[:size])
		sv.FillBytes(sig[size:])
		return sig, nil
	}
	return nil, fmt.Errorf("signer: tipo de llave privada no soportado %T", key)
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

func buildSignedInfo(signatureMethod, docDigestB64 string) string {
	var sb strings.Builder
	sb.WriteString(`<ds:SignedInfo xmlns:ds="` + NamespaceDS + `">`)
	sb.WriteString(`<ds:CanonicalizationMethod Algorithm="` + AlgC14N + `"/>`)
	sb.WriteString(`<ds:SignatureMethod Algorithm="` + signatureMethod + `"/>`)
	sb.WriteString(`<ds:Reference URI="">`)
	sb.WriteString(`<ds:Transforms><ds:Transform Algorithm="` + TransformEnveloped + `"/></ds:Transforms>`)
	sb.WriteString(`<ds:DigestMethod Algorithm="` + AlgSHA256 + `"/>`)
	sb.WriteString(`<ds:DigestValue>` + docDigestB64 + `</ds:DigestValue>`)
	sb.WriteString(`</ds:Reference>`)
	sb.WriteString(`</ds:SignedInfo>`)
	return sb.String()
}

type signatureParts struct {
	ID             string
	SignedInfo     string
	SignatureValue string
	Certificate    string
	SigningTime    string
	CertDigest     string
	IssuerName     string
	Serial         string
}

func buildSignature(p signatureParts) string {
	var sb strings.Builder
	sb.WriteString(`<ds:Signature xmlns:ds="` + NamespaceDS + `" xmlns:xades="` + NamespaceXAdES + `" Id="Signature-` + p.ID + `">`)
	sb.WriteString(p.SignedInfo)
	sb.WriteString(`<ds:SignatureValue>` + p.SignatureValue + `</ds:SignatureValue>`)
	sb.WriteString(`<ds:KeyInfo><ds:X509Data><ds:X509Certificate>` + p.Certificate + `</ds:X509Certificate></ds:X509Data></ds:KeyInfo>`)
	sb.WriteString(`<ds:Object><xades:QualifyingProperties Target="#Signature-` + p.ID + `">`)
	sb.WriteString(`<xades:SignedProperties Id="SignedProperties-` + p.ID + `">`)
	sb.WriteString(`<xades:SignedSignatureProperties>`)
	sb.WriteString(`<xades:SigningTime>` + p.SigningTime + `</xades:SigningTime>`)
	sb.WriteString(`<xades:SigningCertificate><xades:Cert><xades:CertDigest><ds:DigestMethod Algorithm="` + AlgSHA256 + `"/>`)
	sb.WriteString(`<ds:DigestValue>` + p.CertDigest + `</ds:DigestValue></xades:CertDigest>`)
	sb.WriteString(`<xades:IssuerSerial><ds:X509IssuerName>` + escapeXML(p.IssuerName) + `</ds:X509IssuerName>`)
	sb.WriteString(`<ds:X509SerialNumber>` + p.Serial + `</ds:X509SerialNumber></xades:IssuerSerial></xades:Cert></xades:SigningCertificate>`)
	sb.WriteString(`<xades:SignaturePolicyIdentifier><xades:SignaturePolicyId><xades:SigPolicyId>`)
	sb.WriteString(`<xades:Identifier>` + SignaturePolicyURL + `</xades:Identifier></xades:SigPolicyId>`)
	sb.WriteString(`<xades:SigPolicyHash><ds:DigestMethod Algorithm="` + AlgSHA1 + `"/><ds:DigestValue>` + SigPolicyHashDigest + `</ds:DigestValue></xades:SigPolicyHash>`)
	sb.WriteString(`</xades:SignaturePolicyId></xades:SignaturePolicyIdentifier>`)
	sb.WriteString(`</xades:SignedSignatureProperties></xades:SignedProperties></xades:QualifyingProperties></ds:Object>`)
	sb.WriteString(`</ds:Signature>`)
	return sb.String()
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
