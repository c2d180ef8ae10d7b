// Package xmltree ofrece búsquedas tolerantes sobre un documento XML parseado:
// toda consulta devuelve un nodo vacío o un valor por defecto en lugar de fallar.
package xmltree

import (
	"github.com/beevik/etree"
)

// Document árbol XML inmutable tras el parseo.
type Document struct {
	doc *etree.Document
}

// NewDocument envuelve un documento etree ya parseado.
func NewDocument(doc *etree.Document) *Document {
	return &Document{doc: doc}
}

// Root devuelve el elemento raíz (vacío si el documento no tiene raíz).
func (d *Document) Root() Node {
	if d == nil || d.doc == nil {
		return Node{}
	}
	return Node{el: d.doc.Root()}
}

// Node elemento opcional. El valor cero representa "no encontrado" y admite todas las consultas.
type Node struct {
	el *etree.Element
}

// Found indica si el nodo existe en el documento.
func (n Node) Found() bool { return n.el != nil }

// Tag nombre local del elemento.
func (n Node) Tag() string {
	if n.el == nil {
		return ""
	}
	return n.el.Tag
}

// Text contenido de texto del elemento ("" si no existe).
func (n Node) Text() string {
	if n.el == nil {
		return ""
	}
	return n.el.Text()
}

// FindNode primer elemento que cumple la ruta etree (p. ej. ".//Invoices/Invoice").
// Los pasos sin prefijo coinciden con el nombre local en cualquier namespace.
func (n Node) FindNode(path string) Node {
	if n.el == nil {
		return Node{}
	}
	return Node{el: n.el.FindElement(path)}
}

// FindNodes todos los elementos que cumplen la ruta, en orden de documento.
func (n Node) FindNodes(path string) []Node {
	if n.el == nil {
		return nil
	}
	els := n.el.FindElements(path)
	out := make([]Node, 0, len(els))
	for _, el := range els {
		out = append(out, Node{el: el})
	}
	return out
}

// FindText texto del primer elemento de la ruta, o def si no existe.
// Un elemento presente pero vacío devuelve "" (no def).
func (n Node) FindText(path, def string) string {
	found := n.FindNode(path)
	if !found.Found() {
		return def
	}
	return found.Text()
}

// FindNodeNS primer descendiente con nombre local local cuyo namespace resuelto es uri.
func (n Node) FindNodeNS(uri, local string) Node {
	if n.el == nil {
		return Node{}
	}
	return Node{el: findDescendantNS(n.el, uri, local)}
}

// findDescendantNS recorrido en preorden (orden de documento), sin incluir e.
func findDescendantNS(e *etree.Element, uri, local string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == local && c.NamespaceURI() == uri {
			return c
		}
		if found := findDescendantNS(c, uri, local); found != nil {
			return found
		}
	}
	return nil
}

// FindTextNS como FindText para un descendiente calificado por namespace.
func (n Node) FindTextNS(uri, local, def string) string {
	found := n.FindNodeNS(uri, local)
	if !found.Found() {
		return def
	}
	return found.Text()
}
