package corebank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atharibank/backoffice-service/internal/domain"
)

func TestListAccountsDecodesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/accounts" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "key-123" {
			t.Fatalf("missing api key header, got %q", r.Header.Get("x-api-key"))
		}
		json.NewEncoder(w).Encode([]domain.Account{{ID: "1"}, {ID: "2"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-123")
	accounts, err := client.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 || accounts[0].ID != "1" {
		t.Fatalf("unexpected accounts %+v", accounts)
	}
}

func TestServerMessageIsExtractedFromErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Solde insuffisant"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-123")
	_, err := client.CreateAccount(context.Background(), domain.CreateAccountPayload{})
	if err == nil {
		t.Fatal("expected an error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Message != "Solde insuffisant" {
		t.Fatalf("unexpected APIError %+v", apiErr)
	}
}

func TestLegacyErrorFieldIsAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Type de compte inconnu"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-123")
	_, err := client.GetAccount(context.Background(), "1")

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "Type de compte inconnu" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
}

func TestIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-123")
	_, err := client.GetAccount(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("expected IsNotFound, got %v", err)
	}

	if IsNotFound(nil) {
		t.Fatal("nil is not a not-found error")
	}
}

func TestUpdateAccountStatusSendsPatchBody(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody struct {
		Status domain.AccountStatus `json:"status"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(domain.Account{ID: "1", Status: domain.StatusBlocked})
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-123")
	account, err := client.UpdateAccountStatus(context.Background(), "1", domain.StatusBlocked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/accounts/1/status" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotBody.Status != domain.StatusBlocked || account.Status != domain.StatusBlocked {
		t.Fatal("status not round-tripped")
	}
}

func TestDeleteAccountAcceptsNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-123")
	if err := client.DeleteAccount(context.Background(), "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
