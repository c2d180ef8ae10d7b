package dto

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxFilenameLength longitud máxima (en bytes) del nombre de fichero sugerido.
const MaxFilenameLength = 128

var unsafeFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}_.\-]+`)

// SafeFilename elimina diacríticos, sustituye cada tramo de caracteres no permitidos
// por "_" y limita la longitud a MaxFilenameLength sin partir caracteres.
func SafeFilename(name string) string {
	name = strings.TrimSpace(name)
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, name); err == nil {
		name = folded
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if len(name) > MaxFilenameLength {
		name = name[:MaxFilenameLength]
		for !utf8.ValidString(name) {
			name = name[:len(name)-1]
		}
	}
	return name
}

// PDFFilename nombre del PDF generado: Factura_{rcf}_{aaaammdd_hhmm}.pdf, saneado.
func PDFFilename(accountingRecordNumber string, registeredAt time.Time) string {
	return SafeFilename(fmt.Sprintf("Factura_%s_%s.pdf", accountingRecordNumber, registeredAt.Format("20060102_1504")))
}
