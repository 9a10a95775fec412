/**
 * @description
 * Scheduled jobs for the back-office service. The only job today is the
 * periodic authoritative refresh of the account collection, which bounds how
 * long any unreconciled optimistic mutation or missed broker event can stay
 * visible on dashboards.
 */
package app

import (
	"context"
	"log/slog"
	"time"
)

// Jobs holds the scheduled job implementations.
type Jobs struct {
	service *AccountService
	logger  *slog.Logger
}

// NewJobs creates a new Jobs instance.
func NewJobs(service *AccountService, logger *slog.Logger) *Jobs {
	return &Jobs{service: service, logger: logger}
}

// RefreshAccounts refetches the full account list from the core and replaces
// the store collection.
func (j *Jobs) RefreshAccounts() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := j.service.RefreshAccounts(ctx); err != nil {
		j.logger.Error("scheduled account refresh failed", "error", err)
		return
	}
	j.logger.Info("scheduled account refresh completed",
		"accounts", len(j.service.Store().Snapshot().Accounts))
}
