package dto_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/xsig-pdf/internal/application/dto"
	"github.com/jhoicas/xsig-pdf/internal/domain"
)

func TestRenderRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RenderRequest
		wantErr string
	}{
		{"completo", dto.RenderRequest{RegistryNumber: "REG-2025/001", EntryPoint: "FACe", AccountingRecordNumber: "RCF.7", RegisteredAt: "2025-03-05T12:30"}, ""},
		{"rcf por defecto", dto.RenderRequest{RegistryNumber: "REG-1", EntryPoint: "FACe"}, ""},
		{"con acentos", dto.RenderRequest{RegistryNumber: "Nº_Registro", EntryPoint: "Órgano"}, ""},
		{"sin registro", dto.RenderRequest{EntryPoint: "FACe"}, "registryNumber es obligatorio"},
		{"solo espacios", dto.RenderRequest{RegistryNumber: "   ", EntryPoint: "FACe"}, "registryNumber es obligatorio"},
		{"sin punto de entrada", dto.RenderRequest{RegistryNumber: "REG-1"}, "entryPoint es obligatorio"},
		{"espacio interior", dto.RenderRequest{RegistryNumber: "REG 1", EntryPoint: "FACe"}, "registryNumber: valor inválido"},
		{"demasiado largo", dto.RenderRequest{RegistryNumber: strings.Repeat("a", 51), EntryPoint: "FACe"}, "registryNumber: valor inválido"},
		{"rcf inválido", dto.RenderRequest{RegistryNumber: "REG-1", EntryPoint: "FACe", AccountingRecordNumber: "RCF#1"}, "accountingRecordNumber: valor inválido"},
		{"fecha inválida", dto.RenderRequest{RegistryNumber: "REG-1", EntryPoint: "FACe", RegisteredAt: "05/03/2025 12:30"}, "registeredAt debe tener el formato"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRenderRequest_Normalize(t *testing.T) {
	req := dto.RenderRequest{RegistryNumber: "  REG-1 ", EntryPoint: " FACe", RegisteredAt: " 2025-03-05T12:30 "}
	req.Normalize()

	assert.Equal(t, "REG-1", req.RegistryNumber)
	assert.Equal(t, "FACe", req.EntryPoint)
	assert.Equal(t, "REG-1", req.AccountingRecordNumber, "sin RCF se usa el número de registro")
	assert.Equal(t, "2025-03-05T12:30", req.RegisteredAt)
}

func TestRenderRequest_Metadata(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	now := time.Date(2025, 7, 1, 10, 45, 59, 0, time.UTC)

	t.Run("fecha informada en la zona del registro", func(t *testing.T) {
		req := dto.RenderRequest{RegistryNumber: "REG-1", EntryPoint: "FACe", AccountingRecordNumber: "RCF-1", RegisteredAt: "2025-03-05T12:30"}
		meta, err := req.Metadata(madrid, now)
		require.NoError(t, err)

		assert.Equal(t, "REG-1", meta.RegistryNumber)
		assert.Equal(t, "FACe", meta.EntryPoint)
		assert.Equal(t, "RCF-1", meta.AccountingRecordNumber)
		assert.True(t, meta.RegisteredAt.Equal(time.Date(2025, 3, 5, 11, 30, 0, 0, time.UTC)), "CET = UTC+1 en marzo")
		assert.Equal(t, madrid, meta.RegisteredAt.Location())
	})

	t.Run("sin fecha usa ahora truncado al minuto", func(t *testing.T) {
		req := dto.RenderRequest{RegistryNumber: "REG-1", EntryPoint: "FACe"}
		meta, err := req.Metadata(madrid, now)
		require.NoError(t, err)

		assert.Equal(t, "2025-07-01 12:45", meta.RegisteredAt.Format("2006-01-02 15:04"), "CEST = UTC+2 en julio")
		assert.Zero(t, meta.RegisteredAt.Second())
	})

	t.Run("sin zona se usa UTC", func(t *testing.T) {
		req := dto.RenderRequest{RegistryNumber: "REG-1", EntryPoint: "FACe", RegisteredAt: "2025-03-05T12:30"}
		meta, err := req.Metadata(nil, now)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, meta.RegisteredAt.Location())
	})

	t.Run("fecha ilegible", func(t *testing.T) {
		req := dto.RenderRequest{RegistryNumber: "REG-1", EntryPoint: "FACe", RegisteredAt: "ayer"}
		_, err := req.Metadata(madrid, now)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Factura_RCF-1_20250305_1230.pdf", "Factura_RCF-1_20250305_1230.pdf"},
		{"Factura_Nº 7/2025.pdf", "Factura_Nº_7_2025.pdf"},
		{"Órgano Gestión", "Organo_Gestion"},
		{"a  //  b", "a_b"},
		{"  recortado  ", "recortado"},
		{"año_niño", "ano_nino"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, dto.SafeFilename(tt.in))
		})
	}
}

func TestSafeFilename_Longitud(t *testing.T) {
	long := strings.Repeat("a", dto.MaxFilenameLength-1) + "漢漢"
	got := dto.SafeFilename(long)

	assert.Equal(t, strings.Repeat("a", dto.MaxFilenameLength-1), got)
	assert.True(t, utf8.ValidString(got), "no se parte un carácter multibyte")
}

func TestPDFFilename(t *testing.T) {
	at := time.Date(2025, 3, 5, 9, 7, 0, 0, time.UTC)
	assert.Equal(t, "Factura_RCF-1_20250305_0907.pdf", dto.PDFFilename("RCF-1", at))
	assert.Equal(t, "Factura_2025_A_1_20250305_0907.pdf", dto.PDFFilename("2025/Á 1", at))
}

func TestPageRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		page dto.PageRequest
		ok   bool
	}{
		{"vacía", dto.PageRequest{}, true},
		{"límite máximo", dto.PageRequest{Limit: 100, Offset: 40}, true},
		{"límite excesivo", dto.PageRequest{Limit: 101}, false},
		{"límite negativo", dto.PageRequest{Limit: -1}, false},
		{"offset negativo", dto.PageRequest{Offset: -5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
