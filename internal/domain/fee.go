/**
 * @description
 * Domain models for fee history browsing. Fee records are written by the
 * core-banking fee engine; the back-office only reads them.
 */
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeRecord is a single fee charged against an account.
type FeeRecord struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	FeeType     string          `json:"fee_type"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	ChargedAt   time.Time       `json:"charged_at"`
}

// FeeListOptions narrows a fee history query. Zero values mean no constraint.
type FeeListOptions struct {
	AccountID string
	FeeType   string
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}

// CurrencyTotal is an aggregate of amounts within a single currency.
type CurrencyTotal struct {
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
}
