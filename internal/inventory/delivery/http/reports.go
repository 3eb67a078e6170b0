package http

import (
	"net/http"

	"github.com/tair/stockledger/internal/inventory/usecase/command"
	"github.com/tair/stockledger/internal/inventory/usecase/query"
)

// MonthlyReport handles GET /api/reports/monthly
func (h *InventoryHandler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.MonthlyReport.Handle(query.MonthlyReportQuery{Month: r.URL.Query().Get("month")})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    rows,
	})
}

// StatusReport handles GET /api/reports/status
func (h *InventoryHandler) StatusReport(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    h.queries.StatusReport.Handle(),
	})
}

// Fields handles GET /api/fields
func (h *InventoryHandler) Fields(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    h.queries.Fields.Handle(),
	})
}

// Export handles GET /api/export
func (h *InventoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="stockledger-export.json"`)
	respondJSON(w, http.StatusOK, h.queries.Export.Handle())
}

// Restore handles POST /api/restore
func (h *InventoryHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req command.RestoreCommand
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.commands.Restore.Handle(r.Context(), req); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Snapshot restored",
		Data:    map[string]int{"items": len(req.Inventory), "transactions": len(req.Transactions)},
	})
}
