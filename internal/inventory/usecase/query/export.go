package query

import (
	"github.com/tair/stockledger/internal/excel"
	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
)

// ExportDocument is the migration shape accepted back by restore
type ExportDocument struct {
	Inventory    []domain.Item        `json:"inventory"`
	Transactions []domain.Transaction `json:"transactions"`
}

// ExportHandler handles export query
type ExportHandler struct {
	ws *workspace.Workspace
}

// NewExportHandler creates a new export handler
func NewExportHandler(ws *workspace.Workspace) *ExportHandler {
	return &ExportHandler{ws: ws}
}

// Handle returns a copy of the inventory and the whole ledger
func (h *ExportHandler) Handle() ExportDocument {
	s := h.ws.Snapshot()
	return ExportDocument{Inventory: s.Inventory, Transactions: s.Transactions}
}

// FieldsHandler serves the field label configuration
type FieldsHandler struct {
	fields excel.FieldLabelConfig
}

// NewFieldsHandler creates a new fields handler
func NewFieldsHandler(fields excel.FieldLabelConfig) *FieldsHandler {
	return &FieldsHandler{fields: fields}
}

// Handle returns the configured field definitions
func (h *FieldsHandler) Handle() excel.FieldLabelConfig {
	return h.fields
}
