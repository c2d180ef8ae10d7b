package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrEmptyInput     = errors.New("archivo vacío o no legible")
	ErrDocumentFormat = errors.New("el archivo no parece un XSIG/XML válido")
	ErrDuplicate      = errors.New("registro duplicado")
)
