package store

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/atharibank/backoffice-service/internal/domain"
)

func testAccount(id string, balance int64) domain.Account {
	return domain.Account{
		ID:            id,
		AccountNumber: "10011" + id,
		ClientID:      "cl-" + id,
		ClientName:    "Client " + id,
		Type:          domain.TypeCurrent,
		Currency:      "XAF",
		Balance:       decimal.NewFromInt(balance),
		Status:        domain.StatusActive,
		BranchID:      "br-01",
	}
}

func TestSetAccountsReplacesCollection(t *testing.T) {
	s := NewAccountStore()
	s.SetAccounts([]domain.Account{testAccount("1", 100)})
	s.SetAccounts([]domain.Account{testAccount("2", 200), testAccount("3", 300)})

	state := s.Snapshot()
	if len(state.Accounts) != 2 {
		t.Fatalf("expected replacement, got %d accounts", len(state.Accounts))
	}
	if state.Accounts[0].ID != "2" {
		t.Fatalf("expected account 2 first, got %s", state.Accounts[0].ID)
	}
}

func TestSnapshotIsImmutableAcrossMutations(t *testing.T) {
	s := NewAccountStore()
	s.SetAccounts([]domain.Account{testAccount("1", 100)})

	before := s.Snapshot()
	s.AddAccountOptimistic(testAccount("2", 200))

	if len(before.Accounts) != 1 {
		t.Fatalf("earlier snapshot mutated: has %d accounts", len(before.Accounts))
	}
	if len(s.Snapshot().Accounts) != 2 {
		t.Fatalf("expected 2 accounts after add, got %d", len(s.Snapshot().Accounts))
	}
}

func TestAddAccountOptimisticPrepends(t *testing.T) {
	s := NewAccountStore()
	s.SetAccounts([]domain.Account{testAccount("1", 100)})
	s.AddAccountOptimistic(testAccount("2", 200))

	state := s.Snapshot()
	if state.Accounts[0].ID != "2" || state.Accounts[1].ID != "1" {
		t.Fatalf("expected most-recent-first order, got %s, %s", state.Accounts[0].ID, state.Accounts[1].ID)
	}
}

func TestAddThenDeleteRestoresCollection(t *testing.T) {
	s := NewAccountStore()
	s.SetAccounts([]domain.Account{testAccount("1", 100), testAccount("2", 200)})
	before := s.Snapshot().Accounts

	s.AddAccountOptimistic(testAccount("9", 900))
	s.DeleteAccountOptimistic("9")

	after := s.Snapshot().Accounts
	if len(after) != len(before) {
		t.Fatalf("expected %d accounts, got %d", len(before), len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID {
			t.Fatalf("order changed at %d: expected %s, got %s", i, before[i].ID, after[i].ID)
		}
	}
}

func TestUpdateAccountOptimisticReplacesFirstMatch(t *testing.T) {
	s := NewAccountStore()
	s.SetAccounts([]domain.Account{testAccount("1", 100), testAccount("2", 200)})

	updated := testAccount("2", 999)
	updated.ClientName = "Renamed"
	s.UpdateAccountOptimistic(updated)

	state := s.Snapshot()
	if state.Accounts[1].ClientName != "Renamed" {
		t.Fatalf("expected in-place replacement, got %q", state.Accounts[1].ClientName)
	}
	if state.Accounts[0].ID != "1" {
		t.Fatal("unrelated entries must keep their position")
	}
}

func TestUpdateAccountOptimisticIsNoOpWhenAbsent(t *testing.T) {
	s := NewAccountStore()
	s.SetAccounts([]domain.Account{testAccount("1", 100)})
	versionBefore := s.Snapshot().AccountsVersion

	s.UpdateAccountOptimistic(testAccount("missing", 0))

	state := s.Snapshot()
	if len(state.Accounts) != 1 || state.Accounts[0].ID != "1" {
		t.Fatal("collection changed on update of absent id")
	}
	if state.AccountsVersion != versionBefore {
		t.Fatal("version bumped on a no-op update")
	}
}

func TestDeleteAccountOptimisticRemovesAllMatches(t *testing.T) {
	s := NewAccountStore()
	s.SetAccounts([]domain.Account{testAccount("1", 100), testAccount("dup", 1), testAccount("dup", 2)})

	s.DeleteAccountOptimistic("dup")

	state := s.Snapshot()
	if len(state.Accounts) != 1 || state.Accounts[0].ID != "1" {
		t.Fatalf("expected only account 1 to remain, got %d entries", len(state.Accounts))
	}
}

func TestSetFiltersMergesPartially(t *testing.T) {
	s := NewAccountStore()
	branch := "br-07"
	s.SetFilters(domain.AccountFiltersPatch{BranchID: &branch})

	search := "999"
	s.SetFilters(domain.AccountFiltersPatch{Search: &search})

	filters := s.Snapshot().Filters
	if filters.BranchID != "br-07" {
		t.Fatalf("prior filter dimension lost: branch %q", filters.BranchID)
	}
	if filters.Search != "999" {
		t.Fatalf("new filter dimension missing: search %q", filters.Search)
	}
}

func TestClearFiltersResetsToNoConstraints(t *testing.T) {
	s := NewAccountStore()
	min := decimal.NewFromInt(500)
	statuses := []domain.AccountStatus{domain.StatusActive}
	s.SetFilters(domain.AccountFiltersPatch{MinBalance: &min, Statuses: &statuses})

	s.ClearFilters()

	if !s.Snapshot().Filters.IsZero() {
		t.Fatal("expected empty filter record after clear")
	}
}

func TestSetPaginationMergesPartially(t *testing.T) {
	s := NewAccountStore()
	page, size := 2, 25
	s.SetPagination(domain.PaginationPatch{Page: &page, PageSize: &size})

	total := 120
	s.SetPagination(domain.PaginationPatch{Total: &total})

	p := s.Snapshot().Pagination
	if p.Page != 2 || p.PageSize != 25 || p.Total != 120 {
		t.Fatalf("unexpected pagination %+v", p)
	}
}

func TestLoadingAndSubmittingAreIndependent(t *testing.T) {
	s := NewAccountStore()
	s.SetLoading(true)
	s.SetSubmitting(true)

	state := s.Snapshot()
	if !state.Loading || !state.Submitting {
		t.Fatal("both flags must be allowed to hold simultaneously")
	}
}

func TestResetReturnsToInitialState(t *testing.T) {
	s := NewAccountStore()
	s.SetAccounts([]domain.Account{testAccount("1", 100)})
	s.SetError("boom")
	s.SetLoading(true)
	selected := testAccount("1", 100)
	s.SetSelectedAccount(&selected)

	s.Reset()

	state := s.Snapshot()
	if len(state.Accounts) != 0 || state.Error != "" || state.Loading || state.Selected != nil {
		t.Fatalf("expected initial empty state, got %+v", state)
	}
	if !state.Filters.IsZero() {
		t.Fatal("expected cleared filters after reset")
	}
}

func TestVersionsTrackTheirDimension(t *testing.T) {
	s := NewAccountStore()
	base := s.Snapshot()

	s.SetLoading(true)
	if s.Snapshot().AccountsVersion != base.AccountsVersion {
		t.Fatal("flag mutations must not bump the accounts version")
	}

	s.SetAccounts([]domain.Account{testAccount("1", 100)})
	afterAccounts := s.Snapshot()
	if afterAccounts.AccountsVersion == base.AccountsVersion {
		t.Fatal("SetAccounts must bump the accounts version")
	}
	if afterAccounts.FiltersVersion != base.FiltersVersion {
		t.Fatal("SetAccounts must not bump the filters version")
	}

	branch := "br-01"
	s.SetFilters(domain.AccountFiltersPatch{BranchID: &branch})
	if s.Snapshot().FiltersVersion == afterAccounts.FiltersVersion {
		t.Fatal("SetFilters must bump the filters version")
	}
}
