// Package xsig aísla el XML de una factura firmada (.xsig) y lo parsea.
package xsig

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/jhoicas/xsig-pdf/internal/domain"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/xmltree"
	"github.com/jhoicas/xsig-pdf/pkg/facturae"
)

// ExtractXML devuelve el bloque entre la primera marca "<?xml" y el último '>' (inclusive).
// Si no hay marca, o el cierre no queda detrás, devuelve la entrada tal cual.
func ExtractXML(raw []byte) []byte {
	start := bytes.Index(raw, []byte(facturae.XMLPrologMarker))
	end := bytes.LastIndexByte(raw, '>') + 1
	if start != -1 && end > start {
		return raw[start:end]
	}
	return raw
}

// Parse extrae el XML del contenedor y construye el árbol.
// Errores: domain.ErrEmptyInput si no hay bytes; domain.ErrDocumentFormat si el XML no es válido.
func Parse(raw []byte) (*xmltree.Document, error) {
	if len(raw) == 0 {
		return nil, domain.ErrEmptyInput
	}
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(ExtractXML(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentFormat, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: documento sin elemento raíz", domain.ErrDocumentFormat)
	}
	if err := checkTopLevel(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentFormat, err)
	}
	return xmltree.NewDocument(doc), nil
}

// checkTopLevel exige un único elemento raíz y ningún texto fuera de él.
// etree lee hasta EOF y Root() devuelve el primer elemento, así que lo demás se revisa aquí.
func checkTopLevel(doc *etree.Document) error {
	roots := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
			if roots > 1 {
				return fmt.Errorf("contenido tras el elemento raíz: <%s>", t.FullTag())
			}
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return fmt.Errorf("texto fuera del elemento raíz: %q", t.Data)
			}
		}
	}
	return nil
}

// charsetReader permite XML declarados en ISO-8859-1, windows-1252, etc.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("codificación %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("codificación %q no soportada", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
