/**
 * @description
 * This file implements the in-memory account store: the canonical client-side
 * copy of the account collection plus the transient request state the dashboard
 * screens render from (loading flags, error message, active filters, pagination,
 * selected account).
 *
 * Key features:
 * - Single writer discipline: every mutation is a named operation; there is no
 *   way to reach the fields from outside.
 * - Copy-on-write snapshots: each operation builds a fresh top-level state and
 *   swaps it under the lock, so a snapshot handed to a reader is never mutated
 *   after the fact.
 * - Version counters per input dimension (accounts, filters) give the derived
 *   view engine a cheap identity check for memoization.
 *
 * @notes
 * - Operations are pure data transforms and never fail; failure handling lives
 *   entirely in the app layer that drives them.
 * - Loading and submitting are independent flags; both may be true at once.
 * - Optimistic inserts racing an authoritative fetch are not merged here. The
 *   next SetAccounts replaces the collection wholesale and resolves any
 *   duplicate ids.
 */
package store

import (
	"sync"

	"github.com/atharibank/backoffice-service/internal/domain"
)

// AccountState is one immutable snapshot of the store. Readers must not mutate
// the slices or pointers it carries.
type AccountState struct {
	Accounts   []domain.Account
	Selected   *domain.Account
	Filters    domain.AccountFilters
	Pagination domain.Pagination
	Loading    bool
	Submitting bool
	Error      string

	// AccountsVersion and FiltersVersion increase whenever the respective
	// dimension actually changes. The view engine keys its caches on them.
	AccountsVersion uint64
	FiltersVersion  uint64
}

// AccountStore owns the dashboard's account state.
type AccountStore struct {
	mu    sync.RWMutex
	state *AccountState
}

// NewAccountStore returns a store in its initial empty state.
func NewAccountStore() *AccountStore {
	return &AccountStore{state: &AccountState{}}
}

// Snapshot returns the current immutable state.
func (s *AccountStore) Snapshot() *AccountState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// mutate applies fn to a shallow copy of the current state and swaps it in.
func (s *AccountStore) mutate(fn func(next *AccountState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := *s.state
	fn(&next)
	s.state = &next
}

// SetAccounts replaces the whole collection, as after an authoritative fetch.
// No merge with existing entries is attempted.
func (s *AccountStore) SetAccounts(accounts []domain.Account) {
	copied := make([]domain.Account, len(accounts))
	copy(copied, accounts)
	s.mutate(func(next *AccountState) {
		next.Accounts = copied
		next.AccountsVersion++
	})
}

// SetSelectedAccount sets the single-entity focus used by detail views.
// Passing nil clears the selection.
func (s *AccountStore) SetSelectedAccount(account *domain.Account) {
	var copied *domain.Account
	if account != nil {
		clone := *account
		copied = &clone
	}
	s.mutate(func(next *AccountState) {
		next.Selected = copied
	})
}

// SetFilters shallow-merges a partial filter update. Unset fields retain their
// prior values.
func (s *AccountStore) SetFilters(patch domain.AccountFiltersPatch) {
	s.mutate(func(next *AccountState) {
		f := next.Filters
		if patch.Types != nil {
			f.Types = append([]domain.AccountType(nil), (*patch.Types)...)
		}
		if patch.Statuses != nil {
			f.Statuses = append([]domain.AccountStatus(nil), (*patch.Statuses)...)
		}
		if patch.BranchID != nil {
			f.BranchID = *patch.BranchID
		}
		if patch.MinBalance != nil {
			min := *patch.MinBalance
			f.MinBalance = &min
		}
		if patch.MaxBalance != nil {
			max := *patch.MaxBalance
			f.MaxBalance = &max
		}
		if patch.Search != nil {
			f.Search = *patch.Search
		}
		next.Filters = f
		next.FiltersVersion++
	})
}

// ClearFilters resets the filter record to "no constraints".
func (s *AccountStore) ClearFilters() {
	s.mutate(func(next *AccountState) {
		next.Filters = domain.AccountFilters{}
		next.FiltersVersion++
	})
}

// SetPagination shallow-merges page/size/total bookkeeping.
func (s *AccountStore) SetPagination(patch domain.PaginationPatch) {
	s.mutate(func(next *AccountState) {
		p := next.Pagination
		if patch.Page != nil {
			p.Page = *patch.Page
		}
		if patch.PageSize != nil {
			p.PageSize = *patch.PageSize
		}
		if patch.Total != nil {
			p.Total = *patch.Total
		}
		next.Pagination = p
	})
}

// SetLoading toggles the list-fetch flag.
func (s *AccountStore) SetLoading(loading bool) {
	s.mutate(func(next *AccountState) {
		next.Loading = loading
	})
}

// SetSubmitting toggles the mutation-in-flight flag.
func (s *AccountStore) SetSubmitting(submitting bool) {
	s.mutate(func(next *AccountState) {
		next.Submitting = submitting
	})
}

// SetError records the surfaced error message. The empty string clears it.
func (s *AccountStore) SetError(message string) {
	s.mutate(func(next *AccountState) {
		next.Error = message
	})
}

// AddAccountOptimistic prepends an account to the collection, most recent first.
func (s *AccountStore) AddAccountOptimistic(account domain.Account) {
	s.mutate(func(next *AccountState) {
		updated := make([]domain.Account, 0, len(next.Accounts)+1)
		updated = append(updated, account)
		updated = append(updated, next.Accounts...)
		next.Accounts = updated
		next.AccountsVersion++
	})
}

// UpdateAccountOptimistic replaces the first entry whose id matches. When no
// entry matches the collection is left untouched and no version bump occurs.
func (s *AccountStore) UpdateAccountOptimistic(account domain.Account) {
	s.mutate(func(next *AccountState) {
		for i := range next.Accounts {
			if next.Accounts[i].ID == account.ID {
				updated := make([]domain.Account, len(next.Accounts))
				copy(updated, next.Accounts)
				updated[i] = account
				next.Accounts = updated
				next.AccountsVersion++
				return
			}
		}
	})
}

// DeleteAccountOptimistic removes every entry matching id.
func (s *AccountStore) DeleteAccountOptimistic(id string) {
	s.mutate(func(next *AccountState) {
		updated := make([]domain.Account, 0, len(next.Accounts))
		removed := false
		for _, acc := range next.Accounts {
			if acc.ID == id {
				removed = true
				continue
			}
			updated = append(updated, acc)
		}
		if !removed {
			return
		}
		next.Accounts = updated
		next.AccountsVersion++
	})
}

// Reset returns the store to its initial empty state, as on logout.
func (s *AccountStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.state
	s.state = &AccountState{
		AccountsVersion: prev.AccountsVersion + 1,
		FiltersVersion:  prev.FiltersVersion + 1,
	}
}
