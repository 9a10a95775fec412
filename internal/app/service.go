/**
 * @description
 * Core orchestration for the accounts screen. AccountService drives the remote
 * account CRUD against the core-banking API and feeds every outcome back into
 * the in-memory account store: optimistic mutations on dispatch, authoritative
 * replacements on success, surfaced error messages on failure.
 *
 * Key features:
 * - Optimistic create/update/delete with a follow-up authoritative refetch
 *   when the remote call fails, so a failed mutation never lingers on screen.
 * - Error taxonomy per the dashboard contract: transport failures surface a
 *   generic message, server-reported failures surface the server message
 *   verbatim, and a missing detail record is an empty state rather than an
 *   error.
 * - No remote-call error escapes to the HTTP layer unclassified; handlers read
 *   the surfaced message from the store state.
 */
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/atharibank/backoffice-service/internal/domain"
	"github.com/atharibank/backoffice-service/internal/store"
	"github.com/atharibank/backoffice-service/pkg/corebank"
)

// GenericErrorMessage is shown when the core gives no usable message body.
const GenericErrorMessage = "Une erreur est survenue. Veuillez réessayer."

// ErrAccountNotFound marks a detail fetch for an id the core does not know.
var ErrAccountNotFound = errors.New("account not found")

// CoreBankClient defines the remote operations the service needs.
type CoreBankClient interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	CreateAccount(ctx context.Context, payload domain.CreateAccountPayload) (*domain.Account, error)
	UpdateAccount(ctx context.Context, id string, payload domain.UpdateAccountPayload) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	UpdateAccountStatus(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error)
}

// AccountService glues the core-banking client to the account store.
type AccountService struct {
	client CoreBankClient
	store  *store.AccountStore
	logger *slog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(client CoreBankClient, accountStore *store.AccountStore, logger *slog.Logger) *AccountService {
	return &AccountService{client: client, store: accountStore, logger: logger}
}

// Store exposes the underlying account store for read access.
func (s *AccountService) Store() *store.AccountStore {
	return s.store
}

// RefreshAccounts replaces the collection with the core's authoritative list.
func (s *AccountService) RefreshAccounts(ctx context.Context) error {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	accounts, err := s.client.ListAccounts(ctx)
	if err != nil {
		s.surfaceError(err)
		return err
	}

	s.store.SetAccounts(accounts)
	total := len(accounts)
	s.store.SetPagination(domain.PaginationPatch{Total: &total})
	s.store.SetError("")
	return nil
}

// GetAccount fetches one account and selects it for the detail view. A 404 is
// an empty state, not an error: the selection is cleared and no message is
// surfaced.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	account, err := s.client.GetAccount(ctx, id)
	if err != nil {
		if corebank.IsNotFound(err) {
			s.store.SetSelectedAccount(nil)
			return nil, ErrAccountNotFound
		}
		s.surfaceError(err)
		return nil, err
	}

	s.store.SetSelectedAccount(account)
	s.store.SetError("")
	return account, nil
}

// CreateAccount opens an account through the core. A provisional record is
// inserted immediately so the new row shows up without waiting on the network;
// on success it is swapped for the authoritative record, on failure the
// collection is re-fetched.
func (s *AccountService) CreateAccount(ctx context.Context, payload domain.CreateAccountPayload) (*domain.Account, error) {
	s.store.SetSubmitting(true)
	defer s.store.SetSubmitting(false)

	provisional := domain.Account{
		ID:               "pending-" + uuid.NewString(),
		AccountNumber:    payload.AccountNumber,
		ClientID:         payload.ClientID,
		ClientName:       payload.ClientName,
		Type:             payload.Type,
		Currency:         payload.Currency,
		Balance:          payload.Balance,
		AvailableBalance: payload.Balance,
		Status:           domain.StatusPending,
		BranchID:         payload.BranchID,
	}
	s.store.AddAccountOptimistic(provisional)

	created, err := s.client.CreateAccount(ctx, payload)
	if err != nil {
		s.surfaceError(err)
		s.reconcile(ctx)
		return nil, err
	}

	s.store.DeleteAccountOptimistic(provisional.ID)
	s.store.AddAccountOptimistic(*created)
	s.store.SetError("")
	return created, nil
}

// UpdateAccount edits an account. The local copy is patched in place before
// the call; the core's response replaces it on success.
func (s *AccountService) UpdateAccount(ctx context.Context, id string, payload domain.UpdateAccountPayload) (*domain.Account, error) {
	s.store.SetSubmitting(true)
	defer s.store.SetSubmitting(false)

	if current, ok := s.findAccount(id); ok {
		patched := current
		if payload.ClientName != nil {
			patched.ClientName = *payload.ClientName
		}
		if payload.BranchID != nil {
			patched.BranchID = *payload.BranchID
		}
		if payload.Restrictions != nil {
			restrictions := *payload.Restrictions
			patched.Restrictions = &restrictions
		}
		s.store.UpdateAccountOptimistic(patched)
	}

	updated, err := s.client.UpdateAccount(ctx, id, payload)
	if err != nil {
		if corebank.IsNotFound(err) {
			s.reconcile(ctx)
			return nil, ErrAccountNotFound
		}
		s.surfaceError(err)
		s.reconcile(ctx)
		return nil, err
	}

	s.store.UpdateAccountOptimistic(*updated)
	s.store.SetError("")
	return updated, nil
}

// DeleteAccount closes out an account. The row disappears immediately; if the
// core refuses, the refetch brings it back.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	s.store.SetSubmitting(true)
	defer s.store.SetSubmitting(false)

	s.store.DeleteAccountOptimistic(id)

	if err := s.client.DeleteAccount(ctx, id); err != nil {
		if corebank.IsNotFound(err) {
			// Already gone remotely; the optimistic removal stands.
			s.store.SetError("")
			return nil
		}
		s.surfaceError(err)
		s.reconcile(ctx)
		return err
	}

	s.store.SetError("")
	return nil
}

// UpdateAccountStatus transitions an account's lifecycle status. The store
// accepts whatever status the core returns; transition rules live server-side.
func (s *AccountService) UpdateAccountStatus(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error) {
	s.store.SetSubmitting(true)
	defer s.store.SetSubmitting(false)

	if current, ok := s.findAccount(id); ok {
		current.Status = status
		s.store.UpdateAccountOptimistic(current)
	}

	updated, err := s.client.UpdateAccountStatus(ctx, id, status)
	if err != nil {
		if corebank.IsNotFound(err) {
			s.reconcile(ctx)
			return nil, ErrAccountNotFound
		}
		s.surfaceError(err)
		s.reconcile(ctx)
		return nil, err
	}

	s.store.UpdateAccountOptimistic(*updated)
	s.store.SetError("")
	return updated, nil
}

// ApplyAccountUpserted applies an authoritative per-account event from the
// broker: replace when known, prepend when new.
func (s *AccountService) ApplyAccountUpserted(account domain.Account) {
	if _, ok := s.findAccount(account.ID); ok {
		s.store.UpdateAccountOptimistic(account)
		return
	}
	s.store.AddAccountOptimistic(account)
}

// ApplyAccountClosed removes an account reported closed by the broker.
func (s *AccountService) ApplyAccountClosed(id string) {
	s.store.DeleteAccountOptimistic(id)
}

// findAccount looks up an account in the current snapshot by id.
func (s *AccountService) findAccount(id string) (domain.Account, bool) {
	for _, acc := range s.store.Snapshot().Accounts {
		if acc.ID == id {
			return acc, true
		}
	}
	return domain.Account{}, false
}

// surfaceError converts a remote failure into the store's error message:
// server messages verbatim when present, a generic fallback otherwise.
func (s *AccountService) surfaceError(err error) {
	var apiErr *corebank.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		s.store.SetError(apiErr.Message)
		return
	}
	s.logger.Error("core-banking call failed", "error", err)
	s.store.SetError(GenericErrorMessage)
}

// reconcile refetches the authoritative list after a failed optimistic
// mutation so the store does not drift from the core.
func (s *AccountService) reconcile(ctx context.Context) {
	accounts, err := s.client.ListAccounts(ctx)
	if err != nil {
		s.logger.Error("post-failure reconciliation fetch failed", "error", err)
		return
	}
	s.store.SetAccounts(accounts)
	total := len(accounts)
	s.store.SetPagination(domain.PaginationPatch{Total: &total})
}
