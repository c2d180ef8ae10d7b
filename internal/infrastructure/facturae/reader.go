package facturae

import (
	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
	"github.com/jhoicas/xsig-pdf/internal/infrastructure/xsig"
)

// Reader implementa conversion.InvoiceReader: extrae el XML del contenedor,
// lo parsea y lo traduce al modelo.
type Reader struct {
	mapper *Mapper
}

// NewReader construye el lector sobre un Mapper.
func NewReader(mapper *Mapper) *Reader {
	return &Reader{mapper: mapper}
}

// Read devuelve domain.ErrEmptyInput o domain.ErrDocumentFormat si el contenedor no
// se puede parsear; a partir de ahí la traducción es tolerante y no falla.
func (r *Reader) Read(raw []byte) (entity.Invoice, error) {
	doc, err := xsig.Parse(raw)
	if err != nil {
		return entity.Invoice{}, err
	}
	return r.mapper.Map(doc), nil
}
