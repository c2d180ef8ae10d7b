package repository

import (
	"context"

	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
)

// ConversionLogRepository persistencia del registro de auditoría de conversiones.
type ConversionLogRepository interface {
	Create(ctx context.Context, log *entity.ConversionLog) error
	ListByRegistryNumber(ctx context.Context, registryNumber string, limit, offset int) ([]*entity.ConversionLog, error)
}
