package app

import (
	"errors"
	"testing"

	"github.com/atharibank/backoffice-service/internal/domain"
)

func TestRefreshAccountsJobReplacesTheCollection(t *testing.T) {
	client := &coreClientStub{accounts: []domain.Account{{ID: "1"}, {ID: "2"}, {ID: "3"}}}
	service := newTestService(client)
	service.Store().SetAccounts([]domain.Account{{ID: "stale"}})
	jobs := NewJobs(service, service.logger)

	jobs.RefreshAccounts()

	state := service.Store().Snapshot()
	if len(state.Accounts) != 3 {
		t.Fatalf("expected the refreshed list, got %d accounts", len(state.Accounts))
	}
}

func TestRefreshAccountsJobKeepsStateOnFailure(t *testing.T) {
	client := &coreClientStub{listErr: errors.New("core unreachable")}
	service := newTestService(client)
	service.Store().SetAccounts([]domain.Account{{ID: "1"}})
	jobs := NewJobs(service, service.logger)

	jobs.RefreshAccounts()

	state := service.Store().Snapshot()
	if len(state.Accounts) != 1 || state.Accounts[0].ID != "1" {
		t.Fatal("a failed refresh must leave the collection untouched")
	}
	if state.Error == "" {
		t.Fatal("a failed refresh must surface an error message")
	}
}
