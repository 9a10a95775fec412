package app

import (
	"encoding/json"
	"testing"

	"github.com/atharibank/backoffice-service/internal/domain"
)

func TestHandleAccountUpsertedAppliesAuthoritativeRecord(t *testing.T) {
	service := newTestService(&coreClientStub{})
	service.Store().SetAccounts([]domain.Account{{ID: "1", ClientName: "stale"}})
	handler := NewAccountEventHandler(service)

	body, _ := json.Marshal(domain.AccountUpsertedEvent{
		Account: domain.Account{ID: "1", ClientName: "fresh"},
	})
	if !handler.HandleAccountUpserted(body) {
		t.Fatal("expected ack")
	}

	if got := service.Store().Snapshot().Accounts[0].ClientName; got != "fresh" {
		t.Fatalf("expected authoritative record applied, got %q", got)
	}
}

func TestHandleAccountUpsertedAcksMalformedPayload(t *testing.T) {
	service := newTestService(&coreClientStub{})
	handler := NewAccountEventHandler(service)

	if !handler.HandleAccountUpserted([]byte("{not json")) {
		t.Fatal("malformed messages must be acked, not requeued forever")
	}
	if !handler.HandleAccountUpserted([]byte(`{"account":{}}`)) {
		t.Fatal("events without an account id must be acked")
	}
	if len(service.Store().Snapshot().Accounts) != 0 {
		t.Fatal("nothing should have been applied")
	}
}

func TestUpsertRoutingKeysCoverCreatedAndUpdated(t *testing.T) {
	keys := map[string]bool{}
	for _, key := range AccountUpsertRoutingKeys {
		keys[key] = true
	}
	if !keys["account.created"] || !keys["account.updated"] {
		t.Fatalf("upsert subscription must cover both publish keys, got %v", AccountUpsertRoutingKeys)
	}
	if keys[RoutingKeyAccountClosed] {
		t.Fatal("closed events have their own queue and handler")
	}
}

func TestHandleAccountClosedRemovesAccount(t *testing.T) {
	service := newTestService(&coreClientStub{})
	service.Store().SetAccounts([]domain.Account{{ID: "1"}, {ID: "2"}})
	handler := NewAccountEventHandler(service)

	body, _ := json.Marshal(domain.AccountClosedEvent{AccountID: "1"})
	if !handler.HandleAccountClosed(body) {
		t.Fatal("expected ack")
	}

	state := service.Store().Snapshot()
	if len(state.Accounts) != 1 || state.Accounts[0].ID != "2" {
		t.Fatalf("expected account 1 removed, got %+v", state.Accounts)
	}
}
