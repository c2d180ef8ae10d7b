package entity

import "time"

// RegistryMetadata datos del Registro Contable de Facturas aportados por quien solicita la conversión.
// Llegan ya validados; aquí se tratan como texto opaco.
type RegistryMetadata struct {
	RegistryNumber         string
	EntryPoint             string
	AccountingRecordNumber string
	RegisteredAt           time.Time // con zona horaria civil (p. ej. Europe/Madrid)
}
