/**
 * @description
 * This file defines the domain models for events consumed by the back-office
 * service. These structs are the contract for messages received from the
 * message broker (RabbitMQ) on the core-banking account topic.
 */
package domain

// AccountUpsertedEvent is published by the core when an account is opened or
// any of its fields change. The payload carries the full authoritative record.
type AccountUpsertedEvent struct {
	Account Account `json:"account"`
}

// AccountClosedEvent is published by the core when an account is permanently
// removed and should disappear from dashboards.
type AccountClosedEvent struct {
	AccountID string  `json:"account_id"`
	Reason    *string `json:"reason,omitempty"`
}
