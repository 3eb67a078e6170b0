package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/stockledger/internal/excel"
	"github.com/tair/stockledger/internal/history"
	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/usecase/command"
	"github.com/tair/stockledger/internal/inventory/usecase/query"
	"github.com/tair/stockledger/internal/inventory/workspace"
	"github.com/tair/stockledger/internal/report"
	"github.com/tair/stockledger/pkg/logger"
)

// Commands bundles the write-side handlers
type Commands struct {
	CreateItem        *command.CreateItemHandler
	UpdateItem        *command.UpdateItemHandler
	DeleteItem        *command.DeleteItemHandler
	RecordTransaction *command.RecordTransactionHandler
	UpdateTransaction *command.UpdateTransactionHandler
	DeleteTransaction *command.DeleteTransactionHandler
	ClearItemHistory  *command.ClearItemHistoryHandler
	UploadItems       *command.UploadItemsHandler
	SetMapping        *command.SetMappingHandler
	PreviewItems      *command.PreviewItemsHandler
	CommitItems       *command.CommitItemsHandler
	UploadHistory     *command.UploadHistoryHandler
	CommitHistory     *command.CommitHistoryHandler
	Restore           *command.RestoreHandler
}

// Queries bundles the read-side handlers
type Queries struct {
	GetItem          *query.GetItemHandler
	ListInventory    *query.ListInventoryHandler
	ListTransactions *query.ListTransactionsHandler
	ListDepartments  *query.ListDepartmentsHandler
	MonthlyReport    *query.MonthlyReportHandler
	StatusReport     *query.StatusReportHandler
	Export           *query.ExportHandler
	Fields           *query.FieldsHandler
}

// InventoryHandler handles HTTP requests for inventory
type InventoryHandler struct {
	commands    Commands
	queries     Queries
	uploadLimit func(http.Handler) http.Handler
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(commands Commands, queries Queries) *InventoryHandler {
	return &InventoryHandler{commands: commands, queries: queries}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// UseUploadLimiter guards the upload routes with mw. Call before RegisterRoutes.
func (h *InventoryHandler) UseUploadLimiter(mw func(http.Handler) http.Handler) {
	h.uploadLimit = mw
}

func (h *InventoryHandler) limited(f http.HandlerFunc) http.Handler {
	if h.uploadLimit == nil {
		return f
	}
	return h.uploadLimit(f)
}

// HealthCheck reports whether the backing store is reachable
type HealthCheck func(ctx context.Context) error

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/inventory", h.ListInventory).Methods("GET")
	api.HandleFunc("/inventory", h.CreateItem).Methods("POST")
	api.HandleFunc("/inventory/{id}", h.GetItem).Methods("GET")
	api.HandleFunc("/inventory/{id}", h.UpdateItem).Methods("PUT")
	api.HandleFunc("/inventory/{id}", h.DeleteItem).Methods("DELETE")
	api.HandleFunc("/inventory/{id}/transactions", h.ListItemTransactions).Methods("GET")
	api.HandleFunc("/inventory/{id}/transactions", h.ClearItemHistory).Methods("DELETE")

	api.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	api.HandleFunc("/transactions", h.RecordTransaction).Methods("POST")
	api.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PATCH")
	api.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	api.HandleFunc("/departments", h.ListDepartments).Methods("GET")

	api.Handle("/imports", h.limited(h.UploadItems)).Methods("POST")
	api.HandleFunc("/imports/{id}/mapping", h.SetMapping).Methods("PUT")
	api.HandleFunc("/imports/{id}/preview", h.PreviewItems).Methods("POST")
	api.HandleFunc("/imports/{id}/commit", h.CommitItems).Methods("POST")
	api.Handle("/history-imports", h.limited(h.UploadHistory)).Methods("POST")
	api.HandleFunc("/history-imports/{id}/commit", h.CommitHistory).Methods("POST")

	api.HandleFunc("/reports/monthly", h.MonthlyReport).Methods("GET")
	api.HandleFunc("/reports/status", h.StatusReport).Methods("GET")
	api.HandleFunc("/fields", h.Fields).Methods("GET")
	api.HandleFunc("/export", h.Export).Methods("GET")
	api.HandleFunc("/restore", h.Restore).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint. A nil check always passes.
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, check HealthCheck) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Health check failed")
				respondJSON(w, http.StatusServiceUnavailable, Response{
					Success: false,
					Error:   "Store unavailable",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// decodeJSON reads the request body into v, answering 400 itself on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return false
	}
	return true
}

var badRequestErrors = []error{
	domain.ErrInvalidInput,
	domain.ErrInvalidQuantity,
	domain.ErrInvalidTransactionType,
	domain.ErrInvalidDate,
	excel.ErrWorkbookRead,
	excel.ErrUnsupportedFormat,
	excel.ErrHeaderNotFound,
	excel.ErrRequiredColumnMissing,
	excel.ErrUnknownField,
	excel.ErrUnknownHeader,
	history.ErrHistoryHeaderNotFound,
	history.ErrHistoryColumnsMissing,
	history.ErrInvalidMonth,
	report.ErrInvalidMonth,
}

var notFoundErrors = []error{
	domain.ErrItemNotFound,
	domain.ErrTransactionNotFound,
	domain.ErrSessionNotFound,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// respondError maps a use case error onto a status code
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var missing *excel.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		respondJSON(w, http.StatusUnprocessableEntity, Response{
			Success: false,
			Error:   err.Error(),
			Data:    map[string][]string{"missing": missing.Labels},
		})
	case isAny(err, notFoundErrors):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
	case isAny(err, badRequestErrors):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case errors.Is(err, workspace.ErrNotLoaded):
		respondJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Inventory not loaded"})
	default:
		logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Request failed")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Internal server error"})
	}
}
