/**
 * @description
 * This file implements the derived view engine: read-only projections computed
 * from an account store snapshot. Each projection is a pure function of its
 * declared inputs, cached until the input version changes, and recomputed in
 * full when it does (collections are hundreds of rows, not millions, so
 * incremental updates are not worth their complexity).
 *
 * Projections:
 * - FilteredAccounts: the subsequence satisfying every active filter dimension.
 * - GroupedByType: partition of the collection by account type in source order.
 * - TotalBalance: numeric sum of balances over the whole collection.
 * - TotalBalanceByCurrency: the same sum split per currency.
 * - ActiveAccounts: the active-status subset.
 * - Summary: the dashboard widget tuple.
 *
 * @notes
 * - TotalBalance sums across currencies as plain numbers, matching what the
 *   dashboard has always shown. TotalBalanceByCurrency is the aggregate the
 *   widgets should prefer for multi-currency branches.
 */
package views

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/atharibank/backoffice-service/internal/domain"
	"github.com/atharibank/backoffice-service/internal/store"
)

// Summary is the dashboard statistics tuple.
type Summary struct {
	Total          int             `json:"total"`
	Active         int             `json:"active"`
	Blocked        int             `json:"blocked"`
	TotalBalance   decimal.Decimal `json:"total_balance"`
	AverageBalance decimal.Decimal `json:"average_balance"`
}

// Engine memoizes projections over store snapshots. It is safe for concurrent
// use; recomputation happens at most once per input version.
type Engine struct {
	mu sync.Mutex

	filteredKey [2]uint64
	filtered    []domain.Account

	groupedVersion uint64
	grouped        map[domain.AccountType][]domain.Account

	totalsVersion    uint64
	totalBalance     decimal.Decimal
	totalsByCurrency []domain.CurrencyTotal

	activeVersion uint64
	active        []domain.Account

	summaryVersion uint64
	summaryCached  bool
	summary        Summary
}

// NewEngine returns an engine with empty caches.
func NewEngine() *Engine {
	return &Engine{}
}

// FilteredAccounts returns the accounts satisfying every active predicate, in
// source order. Depends on the accounts collection and the filter record.
func (e *Engine) FilteredAccounts(state *store.AccountState) []domain.Account {
	key := [2]uint64{state.AccountsVersion, state.FiltersVersion}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.filtered != nil && e.filteredKey == key {
		return e.filtered
	}

	e.filtered = FilterAccounts(state.Accounts, state.Filters)
	e.filteredKey = key
	return e.filtered
}

// GroupedByType partitions the collection by account type. Source order is
// preserved within each group; absent types get no entry.
func (e *Engine) GroupedByType(state *store.AccountState) map[domain.AccountType][]domain.Account {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.grouped != nil && e.groupedVersion == state.AccountsVersion {
		return e.grouped
	}

	grouped := make(map[domain.AccountType][]domain.Account)
	for _, acc := range state.Accounts {
		grouped[acc.Type] = append(grouped[acc.Type], acc)
	}
	e.grouped = grouped
	e.groupedVersion = state.AccountsVersion
	return grouped
}

// TotalBalance sums balances over the whole collection, regardless of filters.
// Mixed currencies are summed as plain numbers.
func (e *Engine) TotalBalance(state *store.AccountState) decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recomputeTotalsLocked(state)
	return e.totalBalance
}

// TotalBalanceByCurrency splits the balance sum per currency code, ordered by
// first appearance in the collection.
func (e *Engine) TotalBalanceByCurrency(state *store.AccountState) []domain.CurrencyTotal {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recomputeTotalsLocked(state)
	return e.totalsByCurrency
}

func (e *Engine) recomputeTotalsLocked(state *store.AccountState) {
	if e.totalsByCurrency != nil && e.totalsVersion == state.AccountsVersion {
		return
	}

	total := decimal.Zero
	byCurrency := make([]domain.CurrencyTotal, 0, 2)
	index := make(map[string]int)
	for _, acc := range state.Accounts {
		total = total.Add(acc.Balance)
		i, seen := index[acc.Currency]
		if !seen {
			index[acc.Currency] = len(byCurrency)
			byCurrency = append(byCurrency, domain.CurrencyTotal{Currency: acc.Currency, Total: acc.Balance})
			continue
		}
		byCurrency[i].Total = byCurrency[i].Total.Add(acc.Balance)
	}
	e.totalBalance = total
	e.totalsByCurrency = byCurrency
	e.totalsVersion = state.AccountsVersion
}

// ActiveAccounts returns the accounts whose status is active, in source order.
func (e *Engine) ActiveAccounts(state *store.AccountState) []domain.Account {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil && e.activeVersion == state.AccountsVersion {
		return e.active
	}

	active := make([]domain.Account, 0, len(state.Accounts))
	for _, acc := range state.Accounts {
		if acc.Status == domain.StatusActive {
			active = append(active, acc)
		}
	}
	e.active = active
	e.activeVersion = state.AccountsVersion
	return active
}

// Summary computes the dashboard statistics tuple. The average is zero for an
// empty collection.
func (e *Engine) Summary(state *store.AccountState) Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.summaryCached && e.summaryVersion == state.AccountsVersion {
		return e.summary
	}
	e.recomputeTotalsLocked(state)
	totalBalance := e.totalBalance

	summary := Summary{
		Total:        len(state.Accounts),
		TotalBalance: totalBalance,
	}
	for _, acc := range state.Accounts {
		switch acc.Status {
		case domain.StatusActive:
			summary.Active++
		case domain.StatusBlocked:
			summary.Blocked++
		}
	}
	if summary.Total > 0 {
		summary.AverageBalance = totalBalance.Div(decimal.NewFromInt(int64(summary.Total)))
	} else {
		summary.AverageBalance = decimal.Zero
	}

	e.summary = summary
	e.summaryVersion = state.AccountsVersion
	e.summaryCached = true
	return summary
}

// FilterAccounts applies the filter record to a collection: logical AND across
// dimensions, stable subsequence of the input, no reordering or duplication.
func FilterAccounts(accounts []domain.Account, filters domain.AccountFilters) []domain.Account {
	if filters.IsZero() {
		return accounts
	}

	search := strings.ToLower(strings.TrimSpace(filters.Search))
	matched := make([]domain.Account, 0, len(accounts))
	for _, acc := range accounts {
		if len(filters.Types) > 0 && !containsType(filters.Types, acc.Type) {
			continue
		}
		if len(filters.Statuses) > 0 && !containsStatus(filters.Statuses, acc.Status) {
			continue
		}
		if filters.BranchID != "" && acc.BranchID != filters.BranchID {
			continue
		}
		if filters.MinBalance != nil && acc.Balance.LessThan(*filters.MinBalance) {
			continue
		}
		if filters.MaxBalance != nil && acc.Balance.GreaterThan(*filters.MaxBalance) {
			continue
		}
		if search != "" && !matchesSearch(acc, search) {
			continue
		}
		matched = append(matched, acc)
	}
	return matched
}

// matchesSearch checks the term against account number, client name and client
// id; a hit on any of the three keeps the account.
func matchesSearch(acc domain.Account, loweredTerm string) bool {
	return strings.Contains(strings.ToLower(acc.AccountNumber), loweredTerm) ||
		strings.Contains(strings.ToLower(acc.ClientName), loweredTerm) ||
		strings.Contains(strings.ToLower(acc.ClientID), loweredTerm)
}

func containsType(types []domain.AccountType, t domain.AccountType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func containsStatus(statuses []domain.AccountStatus, s domain.AccountStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
