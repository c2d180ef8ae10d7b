package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/xsig-pdf/internal/domain"
)

// Cada error de dominio se reconoce con errors.Is aunque venga envuelto, y no se confunde con los demás.
func TestErroresDeDominio_Distintos(t *testing.T) {
	all := []error{
		domain.ErrInvalidInput,
		domain.ErrEmptyInput,
		domain.ErrDocumentFormat,
		domain.ErrDuplicate,
	}
	for i, sentinel := range all {
		wrapped := fmt.Errorf("capa: %w", sentinel)
		for j, other := range all {
			assert.Equal(t, i == j, errors.Is(wrapped, other), "%v frente a %v", sentinel, other)
		}
	}
}
