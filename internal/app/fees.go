/**
 * @description
 * Business logic for fee history browsing. The back-office is read-only over
 * the fee ledger the core-banking fee engine writes.
 */
package app

import (
	"context"
	"time"

	"github.com/atharibank/backoffice-service/internal/domain"
)

const (
	defaultFeePageSize = 30
	maxFeePageSize     = 200
)

// FeeRepository defines the persistence operations fee browsing needs.
type FeeRepository interface {
	ListFees(ctx context.Context, opts domain.FeeListOptions) ([]domain.FeeRecord, error)
	CountFees(ctx context.Context, opts domain.FeeListOptions) (int, error)
	FeeTotalsByCurrency(ctx context.Context, from, to time.Time) ([]domain.CurrencyTotal, error)
}

// FeePage is one page of fee history plus its total row count.
type FeePage struct {
	Items  []domain.FeeRecord `json:"items"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

// FeeService provides fee history browsing.
type FeeService struct {
	repo FeeRepository
}

// NewFeeService creates a new FeeService.
func NewFeeService(repo FeeRepository) *FeeService {
	return &FeeService{repo: repo}
}

// ListFees returns one page of fee records matching the options.
func (s *FeeService) ListFees(ctx context.Context, opts domain.FeeListOptions) (*FeePage, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultFeePageSize
	}
	if opts.Limit > maxFeePageSize {
		opts.Limit = maxFeePageSize
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	items, err := s.repo.ListFees(ctx, opts)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountFees(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &FeePage{Items: items, Total: total, Limit: opts.Limit, Offset: opts.Offset}, nil
}

// FeeTotalsByCurrency aggregates charged fees per currency over a window for
// the dashboard widgets.
func (s *FeeService) FeeTotalsByCurrency(ctx context.Context, from, to time.Time) ([]domain.CurrencyTotal, error) {
	return s.repo.FeeTotalsByCurrency(ctx, from, to)
}
