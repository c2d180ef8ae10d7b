package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/xsig-pdf/internal/domain"
	"github.com/jhoicas/xsig-pdf/internal/domain/entity"
	"github.com/jhoicas/xsig-pdf/internal/domain/repository"
)

var _ repository.ConversionLogRepository = (*ConversionLogRepo)(nil)

// ConversionLogSchema DDL de la tabla de auditoría; EnsureSchema lo aplica al arrancar.
var ConversionLogSchema = []string{
	`CREATE TABLE IF NOT EXISTS conversion_log (
	id                        UUID PRIMARY KEY,
	correlation_id            TEXT        NOT NULL UNIQUE,
	registry_number           TEXT        NOT NULL,
	entry_point               TEXT        NOT NULL,
	accounting_record_number  TEXT        NOT NULL,
	invoice_number            TEXT        NOT NULL,
	emitter_tax_id            TEXT        NOT NULL,
	invoice_total             NUMERIC(18,2),
	signature_found           BOOLEAN     NOT NULL,
	created_at                TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_conversion_log_registry
	ON conversion_log (registry_number, created_at DESC)`,
}

// ConversionLogRepo implementa ConversionLogRepository sobre PostgreSQL.
type ConversionLogRepo struct {
	pool DB
	tx   *TxRunner
}

// NewConversionLogRepository construye el repositorio.
func NewConversionLogRepository(pool DB) *ConversionLogRepo {
	return &ConversionLogRepo{pool: pool, tx: NewTxRunner(pool)}
}

// EnsureSchema crea la tabla y el índice si no existen (en una sola transacción).
func (r *ConversionLogRepo) EnsureSchema(ctx context.Context) error {
	if err := r.tx.ExecAll(ctx, ConversionLogSchema...); err != nil {
		return fmt.Errorf("crear tabla conversion_log: %w", err)
	}
	return nil
}

// Create inserta la entrada; un correlation_id repetido devuelve domain.ErrDuplicate.
func (r *ConversionLogRepo) Create(ctx context.Context, l *entity.ConversionLog) error {
	const q = `
		INSERT INTO conversion_log
			(id, correlation_id, registry_number, entry_point, accounting_record_number,
			 invoice_number, emitter_tax_id, invoice_total, signature_found, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, q,
		l.ID, l.CorrelationID, l.RegistryNumber, l.EntryPoint, l.AccountingRecordNumber,
		l.InvoiceNumber, l.EmitterTaxID, l.InvoiceTotal, l.SignatureFound, l.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: correlation_id %s", domain.ErrDuplicate, l.CorrelationID)
		}
		return fmt.Errorf("insert conversion_log: %w", err)
	}
	return nil
}

// ListByRegistryNumber devuelve las entradas del registro, de la más reciente a la más antigua.
func (r *ConversionLogRepo) ListByRegistryNumber(ctx context.Context, registryNumber string, limit, offset int) ([]*entity.ConversionLog, error) {
	const q = `
		SELECT id, correlation_id, registry_number, entry_point, accounting_record_number,
		       invoice_number, emitter_tax_id, invoice_total, signature_found, created_at
		FROM conversion_log
		WHERE registry_number = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, q, registryNumber, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list conversion_log: %w", err)
	}
	defer rows.Close()

	var list []*entity.ConversionLog
	for rows.Next() {
		l, err := scanConversionLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversion_log: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanConversionLog(row pgx.Row) (*entity.ConversionLog, error) {
	var l entity.ConversionLog
	var total decimal.NullDecimal
	err := row.Scan(
		&l.ID, &l.CorrelationID, &l.RegistryNumber, &l.EntryPoint, &l.AccountingRecordNumber,
		&l.InvoiceNumber, &l.EmitterTaxID, &total, &l.SignatureFound, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if total.Valid {
		l.InvoiceTotal = &total.Decimal
	}
	return &l, nil
}

// NoopConversionLog registro de auditoría vacío para cuando no hay base de datos.
type NoopConversionLog struct{}

var _ repository.ConversionLogRepository = NoopConversionLog{}

func (NoopConversionLog) Create(context.Context, *entity.ConversionLog) error { return nil }

func (NoopConversionLog) ListByRegistryNumber(context.Context, string, int, int) ([]*entity.ConversionLog, error) {
	return []*entity.ConversionLog{}, nil
}
