package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hadirhq/hadir-backend-go/internal/domain/payroll"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

// CreateHistory implements payroll.PayrollRepository.
func (p *payrollRepository) CreateHistory(ctx context.Context, h payroll.PayrollHistory) (payroll.PayrollHistory, error) {
	q := GetQuerier(ctx, p.db)

	if h.ID == "" {
		h.ID = uuid.New().String()
	}

	recordsJSON, err := json.Marshal(h.Records)
	if err != nil {
		return payroll.PayrollHistory{}, fmt.Errorf("failed to marshal payroll records: %w", err)
	}

	query := `
		INSERT INTO payroll_history (
			id, period_month, period_year, generated_at, total_net_pay, records, narrative
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = q.Exec(ctx, query,
		h.ID, h.PeriodMonth, h.PeriodYear, h.GeneratedAt, h.TotalNetPay, recordsJSON, h.Narrative,
	)

	if err != nil {
		// The unique index on (period_year, period_month) is the arbiter:
		// the second disbursement for a period always loses, even under
		// concurrency.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.PayrollHistory{}, payroll.ErrAlreadyDisbursed
		}
		return payroll.PayrollHistory{}, fmt.Errorf("failed to create payroll history: %w", err)
	}

	return h, nil
}

const payrollHistoryColumns = `
	id, period_month, period_year, generated_at, total_net_pay, records, narrative
`

func scanPayrollHistory(row pgx.Row) (payroll.PayrollHistory, error) {
	var h payroll.PayrollHistory
	var recordsJSON []byte

	err := row.Scan(
		&h.ID, &h.PeriodMonth, &h.PeriodYear, &h.GeneratedAt,
		&h.TotalNetPay, &recordsJSON, &h.Narrative,
	)
	if err != nil {
		return payroll.PayrollHistory{}, err
	}

	if err := json.Unmarshal(recordsJSON, &h.Records); err != nil {
		return payroll.PayrollHistory{}, fmt.Errorf("failed to unmarshal payroll records: %w", err)
	}

	return h, nil
}

// GetHistory implements payroll.PayrollRepository.
func (p *payrollRepository) GetHistory(ctx context.Context, period payroll.Period) (payroll.PayrollHistory, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollHistoryColumns + `
		FROM payroll_history
		WHERE period_month = $1 AND period_year = $2
	`

	h, err := scanPayrollHistory(q.QueryRow(ctx, query, period.Month, period.Year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollHistory{}, payroll.ErrHistoryNotFound
		}
		return payroll.PayrollHistory{}, fmt.Errorf("failed to get payroll history: %w", err)
	}

	return h, nil
}

// ListHistory implements payroll.PayrollRepository.
func (p *payrollRepository) ListHistory(ctx context.Context) ([]payroll.PayrollHistory, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollHistoryColumns + `
		FROM payroll_history
		ORDER BY period_year DESC, period_month DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll history: %w", err)
	}
	defer rows.Close()

	var history []payroll.PayrollHistory
	for rows.Next() {
		h, err := scanPayrollHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll history: %w", err)
		}
		history = append(history, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll history: %w", err)
	}

	return history, nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
