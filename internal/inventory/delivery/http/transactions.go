package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/stockledger/internal/inventory/usecase/command"
	"github.com/tair/stockledger/internal/inventory/usecase/query"
)

// transactionQuery reads the month/days/years filters shared by ledger listings
func transactionQuery(w http.ResponseWriter, r *http.Request, itemID string) (query.ListTransactionsQuery, bool) {
	q := query.ListTransactionsQuery{ItemID: itemID, Month: r.URL.Query().Get("month")}
	for name, dst := range map[string]*int{"days": &q.Days, "years": &q.Years} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid " + name + " parameter",
			})
			return q, false
		}
		*dst = n
	}
	return q, true
}

func (h *InventoryHandler) listTransactions(w http.ResponseWriter, r *http.Request, itemID string) {
	q, ok := transactionQuery(w, r, itemID)
	if !ok {
		return
	}

	txs, err := h.queries.ListTransactions.Handle(q)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    txs,
	})
}

// ListTransactions handles GET /api/transactions
func (h *InventoryHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	h.listTransactions(w, r, "")
}

// ListItemTransactions handles GET /api/inventory/{id}/transactions
func (h *InventoryHandler) ListItemTransactions(w http.ResponseWriter, r *http.Request) {
	h.listTransactions(w, r, mux.Vars(r)["id"])
}

// ClearItemHistory handles DELETE /api/inventory/{id}/transactions
func (h *InventoryHandler) ClearItemHistory(w http.ResponseWriter, r *http.Request) {
	removed, err := h.commands.ClearItemHistory.Handle(r.Context(), command.ClearItemHistoryCommand{ItemID: mux.Vars(r)["id"]})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item history cleared",
		Data:    map[string]int{"removed": removed},
	})
}

// RecordTransaction handles POST /api/transactions
func (h *InventoryHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req command.RecordTransactionCommand
	if !decodeJSON(w, r, &req) {
		return
	}

	tx, err := h.commands.RecordTransaction.Handle(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Transaction recorded successfully",
		Data:    tx,
	})
}

// UpdateTransaction handles PATCH /api/transactions/{id}
func (h *InventoryHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req command.UpdateTransactionCommand
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = mux.Vars(r)["id"]

	tx, err := h.commands.UpdateTransaction.Handle(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Transaction updated successfully",
		Data:    tx,
	})
}

// DeleteTransaction handles DELETE /api/transactions/{id}
func (h *InventoryHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.commands.DeleteTransaction.Handle(r.Context(), command.DeleteTransactionCommand{ID: mux.Vars(r)["id"]}); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Transaction deleted successfully",
	})
}

// ListDepartments handles GET /api/departments
func (h *InventoryHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    h.queries.ListDepartments.Handle(),
	})
}
