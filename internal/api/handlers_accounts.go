/**
 * @description
 * HTTP handlers for the accounts screens: filtered listing, detail, CRUD,
 * status transitions and the dashboard summary. Handlers parse requests, drive
 * the account service and render the store's derived views; they never talk to
 * the core-banking API directly.
 *
 * @dependencies
 * - Standard Go libraries for HTTP, JSON, etc.
 * - Chi router for URL parameter handling.
 * - The service's internal packages for app logic, store state and views.
 */
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/atharibank/backoffice-service/internal/app"
	"github.com/atharibank/backoffice-service/internal/domain"
	"github.com/atharibank/backoffice-service/internal/views"
)

// AccountHandler holds the dependencies for account-related handlers.
type AccountHandler struct {
	service *app.AccountService
	views   *views.Engine
	fees    *app.FeeService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *app.AccountService, viewEngine *views.Engine, fees *app.FeeService) *AccountHandler {
	return &AccountHandler{service: service, views: viewEngine, fees: fees}
}

// AccountListResponse is the payload of the accounts listing endpoint.
type AccountListResponse struct {
	Items      []domain.Account      `json:"items"`
	Filtered   int                   `json:"filtered"`
	Pagination domain.Pagination     `json:"pagination"`
	Filters    domain.AccountFilters `json:"filters"`
	Loading    bool                  `json:"loading"`
	Submitting bool                  `json:"submitting"`
	Error      string                `json:"error,omitempty"`
}

// ListAccounts renders the filtered account collection. Query parameters merge
// into the active filter record; absent parameters keep the prior constraints.
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	patch, err := filtersPatchFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch != nil {
		h.service.Store().SetFilters(*patch)
	}

	state := h.service.Store().Snapshot()
	filtered := h.views.FilteredAccounts(state)

	writeJSON(w, http.StatusOK, AccountListResponse{
		Items:      filtered,
		Filtered:   len(filtered),
		Pagination: state.Pagination,
		Filters:    state.Filters,
		Loading:    state.Loading,
		Submitting: state.Submitting,
		Error:      state.Error,
	})
}

// ClearFilters resets the active filter record to "no constraints".
func (h *AccountHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	h.service.Store().ClearFilters()
	w.WriteHeader(http.StatusNoContent)
}

// SummaryResponse is the payload of the dashboard summary endpoint.
type SummaryResponse struct {
	Summary          views.Summary              `json:"summary"`
	TotalsByCurrency []domain.CurrencyTotal     `json:"totals_by_currency"`
	CountsByType     map[domain.AccountType]int `json:"counts_by_type"`
	FeesThisMonth    []domain.CurrencyTotal     `json:"fees_this_month,omitempty"`
}

// Summary renders the dashboard statistics widgets.
func (h *AccountHandler) Summary(w http.ResponseWriter, r *http.Request) {
	state := h.service.Store().Snapshot()

	counts := make(map[domain.AccountType]int)
	for accountType, group := range h.views.GroupedByType(state) {
		counts[accountType] = len(group)
	}

	response := SummaryResponse{
		Summary:          h.views.Summary(state),
		TotalsByCurrency: h.views.TotalBalanceByCurrency(state),
		CountsByType:     counts,
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	feeTotals, err := h.fees.FeeTotalsByCurrency(r.Context(), monthStart, now)
	if err != nil {
		// The accounts widgets are still worth rendering without fee totals.
		log.Printf("level=warn component=api endpoint=summary msg=\"fee totals unavailable\" err=%v", err)
	} else {
		response.FeesThisMonth = feeTotals
	}

	writeJSON(w, http.StatusOK, response)
}

// GetAccount renders one account's detail view. A missing id is an empty
// state, not a failure the dashboard should alert on.
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	account, err := h.service.GetAccount(r.Context(), id)
	if err != nil {
		if errors.Is(err, app.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "Account not found.")
			return
		}
		writeError(w, http.StatusBadGateway, h.surfacedMessage())
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// CreateAccount opens a new account.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var payload domain.CreateAccountPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if payload.ClientID == "" || payload.Type == "" || payload.Currency == "" {
		writeError(w, http.StatusBadRequest, "client_id, account_type and currency are required.")
		return
	}

	account, err := h.service.CreateAccount(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusBadGateway, h.surfacedMessage())
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

// UpdateAccount applies a partial edit to an account.
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload domain.UpdateAccountPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	account, err := h.service.UpdateAccount(r.Context(), id, payload)
	if err != nil {
		if errors.Is(err, app.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "Account not found.")
			return
		}
		writeError(w, http.StatusBadGateway, h.surfacedMessage())
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// DeleteAccount removes an account.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteAccount(r.Context(), id); err != nil {
		writeError(w, http.StatusBadGateway, h.surfacedMessage())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatusRequest is the body of the status transition endpoint.
type UpdateStatusRequest struct {
	Status domain.AccountStatus `json:"status"`
}

// UpdateAccountStatus transitions an account's lifecycle status.
func (h *AccountHandler) UpdateAccountStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if payload.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required.")
		return
	}

	account, err := h.service.UpdateAccountStatus(r.Context(), id, payload.Status)
	if err != nil {
		if errors.Is(err, app.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "Account not found.")
			return
		}
		writeError(w, http.StatusBadGateway, h.surfacedMessage())
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// RefreshAccounts forces an authoritative refetch of the collection.
func (h *AccountHandler) RefreshAccounts(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RefreshAccounts(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, h.surfacedMessage())
		return
	}

	state := h.service.Store().Snapshot()
	writeJSON(w, http.StatusOK, map[string]int{"accounts": len(state.Accounts)})
}

// surfacedMessage reads the error message the service recorded in the store.
func (h *AccountHandler) surfacedMessage() string {
	if message := h.service.Store().Snapshot().Error; message != "" {
		return message
	}
	return app.GenericErrorMessage
}

// filtersPatchFromQuery maps listing query parameters onto a filter patch.
// It returns nil when no filter parameter is present.
func filtersPatchFromQuery(r *http.Request) (*domain.AccountFiltersPatch, error) {
	query := r.URL.Query()
	patch := domain.AccountFiltersPatch{}
	present := false

	if raw, ok := query["types"]; ok {
		types := make([]domain.AccountType, 0, len(raw))
		for _, value := range splitCSV(raw) {
			types = append(types, domain.AccountType(value))
		}
		patch.Types = &types
		present = true
	}
	if raw, ok := query["statuses"]; ok {
		statuses := make([]domain.AccountStatus, 0, len(raw))
		for _, value := range splitCSV(raw) {
			statuses = append(statuses, domain.AccountStatus(value))
		}
		patch.Statuses = &statuses
		present = true
	}
	if query.Has("branch_id") {
		branchID := query.Get("branch_id")
		patch.BranchID = &branchID
		present = true
	}
	if query.Has("min_balance") {
		min, err := decimal.NewFromString(query.Get("min_balance"))
		if err != nil {
			return nil, errors.New("invalid min_balance")
		}
		patch.MinBalance = &min
		present = true
	}
	if query.Has("max_balance") {
		max, err := decimal.NewFromString(query.Get("max_balance"))
		if err != nil {
			return nil, errors.New("invalid max_balance")
		}
		patch.MaxBalance = &max
		present = true
	}
	if query.Has("q") {
		search := query.Get("q")
		patch.Search = &search
		present = true
	}

	if !present {
		return nil, nil
	}
	return &patch, nil
}

// splitCSV flattens repeated query values and comma-separated lists, dropping
// empty entries.
func splitCSV(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
