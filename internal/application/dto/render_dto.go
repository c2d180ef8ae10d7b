package dto

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/xsig-pdf/internal/domain"
	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
)

// RegisteredAtLayout formato de registeredAt (hora local de la zona del registro).
const RegisteredAtLayout = "2006-01-02T15:04"

// registryText: letras, dígitos, guion bajo, barra, punto o guion; entre 1 y 50 caracteres.
var registryText = regexp.MustCompile(`^[\p{L}\p{N}_/.\-]{1,50}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("registrytext", func(fl validator.FieldLevel) bool {
		return registryText.MatchString(fl.Field().String())
	})
	return v
}

// RenderRequest campos de formulario para POST /api/invoices/pdf.
// AccountingRecordNumber es opcional; si va vacío se usa RegistryNumber.
type RenderRequest struct {
	RegistryNumber         string `form:"registryNumber" json:"registryNumber" validate:"required,registrytext"`
	EntryPoint             string `form:"entryPoint" json:"entryPoint" validate:"required,registrytext"`
	AccountingRecordNumber string `form:"accountingRecordNumber" json:"accountingRecordNumber,omitempty" validate:"required,registrytext"`
	RegisteredAt           string `form:"registeredAt" json:"registeredAt,omitempty"`
}

// Normalize recorta espacios y aplica el valor por defecto del número RCF.
func (r *RenderRequest) Normalize() {
	r.RegistryNumber = strings.TrimSpace(r.RegistryNumber)
	r.EntryPoint = strings.TrimSpace(r.EntryPoint)
	r.AccountingRecordNumber = strings.TrimSpace(r.AccountingRecordNumber)
	r.RegisteredAt = strings.TrimSpace(r.RegisteredAt)
	if r.AccountingRecordNumber == "" {
		r.AccountingRecordNumber = r.RegistryNumber
	}
}

// Validate normaliza y valida la petición. Los errores envuelven domain.ErrInvalidInput
// e indican el campo afectado.
func (r *RenderRequest) Validate() error {
	r.Normalize()
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fieldMessage(verrs[0]))
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if r.RegisteredAt != "" {
		if _, err := time.Parse(RegisteredAtLayout, r.RegisteredAt); err != nil {
			return fmt.Errorf("%w: registeredAt debe tener el formato aaaa-mm-ddThh:mm", domain.ErrInvalidInput)
		}
	}
	return nil
}

// Metadata construye los metadatos del registro. registeredAt se interpreta en loc;
// si no se informó se usa now (en loc, truncado al minuto).
func (r RenderRequest) Metadata(loc *time.Location, now time.Time) (entity.RegistryMetadata, error) {
	if loc == nil {
		loc = time.UTC
	}
	registeredAt := now.In(loc).Truncate(time.Minute)
	if r.RegisteredAt != "" {
		t, err := time.ParseInLocation(RegisteredAtLayout, r.RegisteredAt, loc)
		if err != nil {
			return entity.RegistryMetadata{}, fmt.Errorf("%w: registeredAt: %v", domain.ErrInvalidInput, err)
		}
		registeredAt = t
	}
	return entity.RegistryMetadata{
		RegistryNumber:         r.RegistryNumber,
		EntryPoint:             r.EntryPoint,
		AccountingRecordNumber: r.AccountingRecordNumber,
		RegisteredAt:           registeredAt,
	}, nil
}

func fieldMessage(fe validator.FieldError) string {
	name := jsonName(fe.StructField())
	if fe.Tag() == "required" {
		return name + " es obligatorio"
	}
	return name + ": valor inválido. Usa letras, números, guiones, guiones bajos, barras o puntos (1-50)"
}

func jsonName(field string) string {
	switch field {
	case "RegistryNumber":
		return "registryNumber"
	case "EntryPoint":
		return "entryPoint"
	case "AccountingRecordNumber":
		return "accountingRecordNumber"
	}
	return field
}
