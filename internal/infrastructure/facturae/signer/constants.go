// Constantes para la firma XAdES-EPES de ficheros Facturae.

package signer

import "github.com/jhoicas/xsig-pdf/pkg/facturae"

// Política de firma Facturae v3.1.
const (
	SignaturePolicyURL = "http://www.facturae.es/politica_de_firma_formato_facturae/politica_de_firma_formato_facturae_v3_1.pdf"
	// SigPolicyHashDigest SHA-1 (Base64) del PDF de la política.
	SigPolicyHashDigest = "Ohixl6upD6av8N7pEvDABhEL6hM="
)

// Namespaces y algoritmos XMLDSig / XAdES.
const (
	NamespaceDS        = facturae.NamespaceDS
	NamespaceXAdES     = facturae.NamespaceXAdES
	AlgC14N            = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
	AlgRSASHA256       = "http://www.w3.org/2001/04/xmldsig-more#rsa-sha256"
	AlgECDSASHA256     = "http://www.w3.org/2001/04/xmldsig-more#ecdsa-sha256"
	AlgSHA1            = "http://www.w3.org/2000/09/xmldsig#sha1"
	AlgSHA256          = "http://www.w3.org/2001/04/xmlenc#sha256"
	TransformEnveloped = "http://www.w3.org/2000/09/xmldsig#enveloped-signature"
)

// SigningTimeLayout formato de xades:SigningTime (hora local con desplazamiento).
const SigningTimeLayout = "2006-01-02T15:04:05-07:00"

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
