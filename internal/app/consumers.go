/**
 * @description
 * This file defines the event handler that keeps the in-memory account store
 * aligned with the core-banking ledger between full refreshes. The core
 * publishes per-account events on a topic exchange; the handler applies them
 * as authoritative store updates.
 *
 * @dependencies
 * - encoding/json, log: Standard Go libraries.
 * - The service's internal packages for domain models and the account service.
 */
package app

import (
	"encoding/json"
	"log"

	"github.com/atharibank/backoffice-service/internal/domain"
)

// Routing keys the core publishes account events under. Created and updated
// events carry the same full-record payload and share one handler.
const (
	RoutingKeyAccountCreated = "account.created"
	RoutingKeyAccountUpdated = "account.updated"
	RoutingKeyAccountClosed  = "account.closed"
)

// AccountUpsertRoutingKeys lists every key whose payload is an upsert.
var AccountUpsertRoutingKeys = []string{RoutingKeyAccountCreated, RoutingKeyAccountUpdated}

// AccountEventHandler handles account events from the message broker.
type AccountEventHandler struct {
	service *AccountService
}

// NewAccountEventHandler creates a new instance of AccountEventHandler.
func NewAccountEventHandler(service *AccountService) *AccountEventHandler {
	return &AccountEventHandler{service: service}
}

// HandleAccountUpserted processes account.created and account.updated events.
func (h *AccountEventHandler) HandleAccountUpserted(body []byte) bool {
	var event domain.AccountUpsertedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Error unmarshaling account upsert event: %v", err)
		return true // Acknowledge malformed message.
	}

	if event.Account.ID == "" {
		log.Printf("account upsert event missing account id; acking")
		return true
	}

	h.service.ApplyAccountUpserted(event.Account)
	return true
}

// HandleAccountClosed processes account.closed events.
func (h *AccountEventHandler) HandleAccountClosed(body []byte) bool {
	var event domain.AccountClosedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Error unmarshaling account.closed event: %v", err)
		return true
	}

	if event.AccountID == "" {
		log.Printf("account.closed event missing account id; acking")
		return true
	}

	h.service.ApplyAccountClosed(event.AccountID)
	return true
}
