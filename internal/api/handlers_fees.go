/**
 * @description
 * HTTP handlers for fee history browsing.
 */
package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/atharibank/backoffice-service/internal/app"
	"github.com/atharibank/backoffice-service/internal/domain"
)

// FeeHandler holds the dependencies for fee history handlers.
type FeeHandler struct {
	service *app.FeeService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(service *app.FeeService) *FeeHandler {
	return &FeeHandler{service: service}
}

// ListFees renders one page of fee history, filtered by optional account id,
// fee type and charged-at window.
func (h *FeeHandler) ListFees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := parseOptionalPositiveInt(query.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid limit")
		return
	}
	offset, err := parseOptionalPositiveInt(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid offset")
		return
	}

	opts := domain.FeeListOptions{
		AccountID: query.Get("account_id"),
		FeeType:   query.Get("fee_type"),
		Limit:     limit,
		Offset:    offset,
	}
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date")
			return
		}
		opts.From = from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date")
			return
		}
		opts.To = to
	}

	page, err := h.service.ListFees(r.Context(), opts)
	if err != nil {
		log.Printf("level=error component=api endpoint=list_fees outcome=failed err=%v", err)
		writeError(w, http.StatusInternalServerError, "Could not retrieve fee history.")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// parseOptionalPositiveInt parses a non-negative integer query parameter,
// falling back to a default when absent.
func parseOptionalPositiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		if err == nil {
			err = strconv.ErrRange
		}
		return 0, err
	}
	return value, nil
}
