/**
 * @description
 * This file defines the core domain model for a bank Account as administered
 * through the back-office. It mirrors the shape returned by the core-banking
 * API so that fetched payloads decode directly into it.
 *
 * @notes
 * - Balances use shopspring/decimal to avoid float drift on aggregation.
 * - Type and status values are the wire values used by the core-banking API;
 *   the back-office does not validate status transitions (the core is the
 *   authority on lifecycle rules).
 */
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies the commercial product an account belongs to.
type AccountType string

const (
	TypeCurrent         AccountType = "courant"
	TypeSavings         AccountType = "epargne"
	TypeBlockedSavings  AccountType = "bloque"
	TypeBoostedSavings  AccountType = "epargne_boostee"
	TypeDailyCollection AccountType = "collecte_journaliere"
	TypeSalary          AccountType = "salaire"
	TypeIslamic         AccountType = "islamique"
	TypeAssociation     AccountType = "association"
	TypeCorporate       AccountType = "entreprise"
)

// AccountStatus is the lifecycle state of an account. Exactly one holds at a time.
type AccountStatus string

const (
	StatusActive  AccountStatus = "active"
	StatusPending AccountStatus = "pending"
	StatusBlocked AccountStatus = "blocked"
	StatusClosed  AccountStatus = "closed"
)

// Restrictions carries the optional operation locks an agent can place on an account.
type Restrictions struct {
	NoDebit    bool   `json:"no_debit"`
	NoCredit   bool   `json:"no_credit"`
	NoTransfer bool   `json:"no_transfer"`
	Reason     string `json:"reason,omitempty"`
}

// Account represents a customer account record administered through the dashboard.
type Account struct {
	ID               string          `json:"id"`
	AccountNumber    string          `json:"account_number"`
	ClientID         string          `json:"client_id"`
	ClientName       string          `json:"client_name"`
	Type             AccountType     `json:"account_type"`
	Currency         string          `json:"currency"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	Status           AccountStatus   `json:"status"`
	BranchID         string          `json:"branch_id"`
	OpenedAt         time.Time       `json:"opened_at"`
	Restrictions     *Restrictions   `json:"restrictions,omitempty"`
}

// AccountFilters is the active filter record of the accounts screen.
// A zero value on any dimension means "no constraint on that dimension".
type AccountFilters struct {
	Types      []AccountType    `json:"types,omitempty"`
	Statuses   []AccountStatus  `json:"statuses,omitempty"`
	BranchID   string           `json:"branch_id,omitempty"`
	MinBalance *decimal.Decimal `json:"min_balance,omitempty"`
	MaxBalance *decimal.Decimal `json:"max_balance,omitempty"`
	Search     string           `json:"search,omitempty"`
}

// IsZero reports whether no dimension carries a constraint.
func (f AccountFilters) IsZero() bool {
	return len(f.Types) == 0 &&
		len(f.Statuses) == 0 &&
		f.BranchID == "" &&
		f.MinBalance == nil &&
		f.MaxBalance == nil &&
		f.Search == ""
}

// AccountFiltersPatch is a partial filter update. Nil fields keep their prior value.
type AccountFiltersPatch struct {
	Types      *[]AccountType   `json:"types,omitempty"`
	Statuses   *[]AccountStatus `json:"statuses,omitempty"`
	BranchID   *string          `json:"branch_id,omitempty"`
	MinBalance *decimal.Decimal `json:"min_balance,omitempty"`
	MaxBalance *decimal.Decimal `json:"max_balance,omitempty"`
	Search     *string          `json:"search,omitempty"`
}

// Pagination is the page bookkeeping of the accounts screen.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// PaginationPatch is a partial pagination update. Nil fields keep their prior value.
type PaginationPatch struct {
	Page     *int `json:"page,omitempty"`
	PageSize *int `json:"page_size,omitempty"`
	Total    *int `json:"total,omitempty"`
}

// CreateAccountPayload is the body accepted when opening an account.
type CreateAccountPayload struct {
	AccountNumber string          `json:"account_number,omitempty"`
	ClientID      string          `json:"client_id"`
	ClientName    string          `json:"client_name"`
	Type          AccountType     `json:"account_type"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	BranchID      string          `json:"branch_id"`
}

// UpdateAccountPayload is the body accepted when editing an account. The core
// treats it as a partial document; absent fields are left untouched server-side.
type UpdateAccountPayload struct {
	ClientName   *string       `json:"client_name,omitempty"`
	BranchID     *string       `json:"branch_id,omitempty"`
	Restrictions *Restrictions `json:"restrictions,omitempty"`
}
