package facturae

// Namespaces de la firma XAdES incluida en el .xsig.
const (
	NamespaceDS       = "http://www.w3.org/2000/09/xmldsig#"
	NamespaceXAdES    = "http://uri.etsi.org/01903/v1.3.2#"
	NamespaceXAdES141 = "http://uri.etsi.org/01903/v1.4.1#"
	// Facturae 3.2.2; el mapeo no depende de él (los hijos van sin calificar).
	NamespaceFacturae = "http://www.facturae.gob.es/formato/Versiones/Facturaev3_2_2.xml"
)

// XMLPrologMarker marca de inicio del XML dentro del contenedor firmado.
const XMLPrologMarker = "<?xml"
