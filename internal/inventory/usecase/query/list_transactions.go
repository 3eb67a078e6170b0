package query

import (
	"fmt"
	"time"

	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
	"github.com/tair/stockledger/internal/ledger"
)

// ListTransactionsQuery represents the query to list ledger entries.
// Month (YYYY-MM) wins over the rolling Days/Years window.
type ListTransactionsQuery struct {
	ItemID string
	Month  string
	Days   int
	Years  int
}

// ListTransactionsHandler handles list transactions query
type ListTransactionsHandler struct {
	ws    *workspace.Workspace
	clock domain.Clock
}

// NewListTransactionsHandler creates a new list transactions handler
func NewListTransactionsHandler(ws *workspace.Workspace, clock domain.Clock) *ListTransactionsHandler {
	return &ListTransactionsHandler{ws: ws, clock: clock}
}

// Handle executes the list transactions query, newest first. An item id
// that matches neither an item nor a retained transaction is not found.
func (h *ListTransactionsHandler) Handle(query ListTransactionsQuery) ([]domain.Transaction, error) {
	if query.Month != "" {
		if _, err := time.Parse("2006-01", query.Month); err != nil {
			return nil, fmt.Errorf("%w: month must be YYYY-MM", domain.ErrInvalidInput)
		}
	}
	if query.Days < 0 || query.Years < 0 {
		return nil, fmt.Errorf("%w: days and years must not be negative", domain.ErrInvalidInput)
	}

	var out []domain.Transaction
	known := true
	h.ws.View(func(s *domain.Snapshot) {
		if query.ItemID != "" && s.FindItem(query.ItemID) < 0 {
			known = false
			for _, tx := range s.Transactions {
				if tx.ItemID == query.ItemID {
					known = true
					break
				}
			}
		}
		out = ledger.Filter(s.Transactions, ledger.Query{
			ItemID: query.ItemID,
			Month:  query.Month,
			Days:   query.Days,
			Years:  query.Years,
			Now:    h.clock.Now(),
		})
	})
	if !known {
		return nil, domain.ErrItemNotFound
	}
	return out, nil
}
