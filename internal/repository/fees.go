/**
 * @description
 * Data access layer for fee history, backed by PostgreSQL. The fee ledger is
 * written by the core-banking fee engine; this repository only reads it.
 */
package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/atharibank/backoffice-service/internal/domain"
)

// FeeRepository handles database operations for fee history.
type FeeRepository struct {
	db *pgxpool.Pool
}

// NewFeeRepository creates a new FeeRepository.
func NewFeeRepository(db *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{db: db}
}

// feeFilterClause builds the WHERE clause shared by ListFees and CountFees.
func feeFilterClause(opts domain.FeeListOptions) (string, []any) {
	var conditions []string
	var args []any

	if opts.AccountID != "" {
		args = append(args, opts.AccountID)
		conditions = append(conditions, fmt.Sprintf("account_id = $%d", len(args)))
	}
	if opts.FeeType != "" {
		args = append(args, opts.FeeType)
		conditions = append(conditions, fmt.Sprintf("fee_type = $%d", len(args)))
	}
	if !opts.From.IsZero() {
		args = append(args, opts.From)
		conditions = append(conditions, fmt.Sprintf("charged_at >= $%d", len(args)))
	}
	if !opts.To.IsZero() {
		args = append(args, opts.To)
		conditions = append(conditions, fmt.Sprintf("charged_at < $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// ListFees returns one page of fee records, most recent first.
func (r *FeeRepository) ListFees(ctx context.Context, opts domain.FeeListOptions) ([]domain.FeeRecord, error) {
	where, args := feeFilterClause(opts)
	args = append(args, opts.Limit, opts.Offset)
	query := fmt.Sprintf(`
		SELECT id, account_id, fee_type, amount, currency, COALESCE(description, ''), charged_at
		FROM account_fees%s
		ORDER BY charged_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []domain.FeeRecord
	for rows.Next() {
		var fee domain.FeeRecord
		if err := rows.Scan(&fee.ID, &fee.AccountID, &fee.FeeType, &fee.Amount,
			&fee.Currency, &fee.Description, &fee.ChargedAt); err != nil {
			return nil, err
		}
		fees = append(fees, fee)
	}
	return fees, rows.Err()
}

// CountFees returns the number of records matching the options.
func (r *FeeRepository) CountFees(ctx context.Context, opts domain.FeeListOptions) (int, error) {
	where, args := feeFilterClause(opts)
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM account_fees"+where, args...).Scan(&count)
	return count, err
}

// FeeTotalsByCurrency sums charged fees per currency over [from, to).
func (r *FeeRepository) FeeTotalsByCurrency(ctx context.Context, from, to time.Time) ([]domain.CurrencyTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT currency, COALESCE(SUM(amount), 0)
		FROM account_fees
		WHERE charged_at >= $1 AND charged_at < $2
		GROUP BY currency
		ORDER BY currency`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []domain.CurrencyTotal
	for rows.Next() {
		var total domain.CurrencyTotal
		var amount decimal.Decimal
		if err := rows.Scan(&total.Currency, &amount); err != nil {
			return nil, err
		}
		total.Total = amount
		totals = append(totals, total)
	}
	return totals, rows.Err()
}
