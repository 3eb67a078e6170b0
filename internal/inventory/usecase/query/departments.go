package query

import (
	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
	"github.com/tair/stockledger/internal/ledger"
)

// ListDepartmentsHandler returns department suggestions for the transaction form
type ListDepartmentsHandler struct {
	ws *workspace.Workspace
}

// NewListDepartmentsHandler creates a new list departments handler
func NewListDepartmentsHandler(ws *workspace.Workspace) *ListDepartmentsHandler {
	return &ListDepartmentsHandler{ws: ws}
}

// Handle returns the defaults merged with every department seen in the ledger
func (h *ListDepartmentsHandler) Handle() []string {
	var out []string
	h.ws.View(func(s *domain.Snapshot) {
		out = ledger.Departments(s.Transactions)
	})
	return out
}
