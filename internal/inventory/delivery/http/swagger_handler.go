package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for the inventory ledger
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListInventory godoc
// @Summary List inventory items
// @Description Items ordered by category, name, standard, model and manufacturer
// @Tags Inventory
// @Produce json
// @Param category query string false "Exact category"
// @Param q query string false "Search in name, standard, model, manufacturer and location"
// @Success 200 {object} object{success=bool,data=[]domain.Item}
// @Router /api/inventory [get]
func (h *InventoryHandler) ListInventoryDoc() {}

// CreateItem godoc
// @Summary Create inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body command.ItemFields true "Item fields"
// @Success 201 {object} object{success=bool,message=string,data=domain.Item}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/inventory [post]
func (h *InventoryHandler) CreateItemDoc() {}

// GetItem godoc
// @Summary Get inventory item
// @Tags Inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} object{success=bool,data=domain.Item}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{id} [get]
func (h *InventoryHandler) GetItemDoc() {}

// UpdateItem godoc
// @Summary Edit inventory item
// @Description Replaces every editable field. A new stock figure re-anchors the item's ledger snapshots.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body command.ItemFields true "Item fields"
// @Success 200 {object} object{success=bool,message=string,data=domain.Item}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{id} [put]
func (h *InventoryHandler) UpdateItemDoc() {}

// DeleteItem godoc
// @Summary Delete inventory item
// @Description The item's transactions stay in the ledger
// @Tags Inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{id} [delete]
func (h *InventoryHandler) DeleteItemDoc() {}

// ListItemTransactions godoc
// @Summary Item ledger
// @Tags Transactions
// @Produce json
// @Param id path string true "Item ID"
// @Param month query string false "YYYY-MM, takes precedence over days/years"
// @Param days query int false "Rolling window in days"
// @Param years query int false "Rolling window in years"
// @Success 200 {object} object{success=bool,data=[]domain.Transaction}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{id}/transactions [get]
func (h *InventoryHandler) ListItemTransactionsDoc() {}

// ClearItemHistory godoc
// @Summary Clear item history
// @Description Removes every transaction of the item without changing its stock
// @Tags Transactions
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} object{success=bool,message=string,data=object{removed=int}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/{id}/transactions [delete]
func (h *InventoryHandler) ClearItemHistoryDoc() {}

// ListTransactions godoc
// @Summary Whole ledger
// @Tags Transactions
// @Produce json
// @Param month query string false "YYYY-MM, takes precedence over days/years"
// @Param days query int false "Rolling window in days"
// @Param years query int false "Rolling window in years"
// @Success 200 {object} object{success=bool,data=[]domain.Transaction}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/transactions [get]
func (h *InventoryHandler) ListTransactionsDoc() {}

// RecordTransaction godoc
// @Summary Record an IN or OUT movement
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body command.RecordTransactionCommand true "Movement"
// @Success 201 {object} object{success=bool,message=string,data=domain.Transaction}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/transactions [post]
func (h *InventoryHandler) RecordTransactionDoc() {}

// UpdateTransaction godoc
// @Summary Edit a transaction
// @Description Omitted fields are kept. Stock moves by the difference in impact.
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body command.UpdateTransactionCommand true "Changes"
// @Success 200 {object} object{success=bool,message=string,data=domain.Transaction}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/transactions/{id} [patch]
func (h *InventoryHandler) UpdateTransactionDoc() {}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Description Reverses the transaction's impact on stock
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/transactions/{id} [delete]
func (h *InventoryHandler) DeleteTransactionDoc() {}

// ListDepartments godoc
// @Summary Department suggestions
// @Tags Transactions
// @Produce json
// @Success 200 {object} object{success=bool,data=[]string}
// @Router /api/departments [get]
func (h *InventoryHandler) ListDepartmentsDoc() {}

// UploadItems godoc
// @Summary Upload an inventory workbook
// @Description Legacy sheets return a preview; standard sheets return headers and a guessed mapping
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx, xls or csv"
// @Success 201 {object} object{success=bool,data=command.ImportState}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/imports [post]
func (h *InventoryHandler) UploadItemsDoc() {}

// SetMapping godoc
// @Summary Override the column mapping
// @Description An empty header unmaps a field. Answers 422 while required fields are unmapped.
// @Tags Imports
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body object{mapping=map[string]string} true "field -> header"
// @Success 200 {object} object{success=bool,data=command.ImportState}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string,data=command.ImportState}
// @Router /api/imports/{id}/mapping [put]
func (h *InventoryHandler) SetMappingDoc() {}

// PreviewItems godoc
// @Summary Preview an import
// @Tags Imports
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} object{success=bool,data=excel.Preview}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string,data=object{missing=[]string}}
// @Router /api/imports/{id}/preview [post]
func (h *InventoryHandler) PreviewItemsDoc() {}

// CommitItems godoc
// @Summary Commit an import
// @Tags Imports
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} object{success=bool,message=string,data=object{count=int}}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string,data=object{missing=[]string}}
// @Router /api/imports/{id}/commit [post]
func (h *InventoryHandler) CommitItemsDoc() {}

// UploadHistory godoc
// @Summary Upload a monthly in/out summary
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx, xls or csv"
// @Param month formData string true "YYYY-MM"
// @Success 201 {object} object{success=bool,data=command.HistoryImportState}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/history-imports [post]
func (h *InventoryHandler) UploadHistoryDoc() {}

// CommitHistory godoc
// @Summary Commit a history import
// @Tags Imports
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} object{success=bool,message=string,data=object{count=int}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/history-imports/{id}/commit [post]
func (h *InventoryHandler) CommitHistoryDoc() {}

// MonthlyReport godoc
// @Summary Monthly reconciliation
// @Tags Reports
// @Produce json
// @Param month query string true "YYYY-MM"
// @Success 200 {object} object{success=bool,data=[]report.MonthlyRow}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/reports/monthly [get]
func (h *InventoryHandler) MonthlyReportDoc() {}

// StatusReport godoc
// @Summary Stock status analysis
// @Tags Reports
// @Produce json
// @Success 200 {object} object{success=bool,data=report.Status}
// @Router /api/reports/status [get]
func (h *InventoryHandler) StatusReportDoc() {}

// Fields godoc
// @Summary Field label configuration
// @Tags Imports
// @Produce json
// @Success 200 {object} object{success=bool,data=excel.FieldLabelConfig}
// @Router /api/fields [get]
func (h *InventoryHandler) FieldsDoc() {}

// Export godoc
// @Summary Export inventory and ledger
// @Tags Migration
// @Produce json
// @Success 200 {object} query.ExportDocument
// @Router /api/export [get]
func (h *InventoryHandler) ExportDoc() {}

// Restore godoc
// @Summary Restore inventory and ledger
// @Description Replaces inventory and transactions wholesale. Users are kept.
// @Tags Migration
// @Accept json
// @Produce json
// @Param request body query.ExportDocument true "Exported document"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/restore [post]
func (h *InventoryHandler) RestoreDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and store connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *InventoryHandler) HealthCheckDoc() {}
