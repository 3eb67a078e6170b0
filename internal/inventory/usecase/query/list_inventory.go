package query

import (
	"strings"

	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
)

// ListInventoryQuery represents the query to list inventory items.
// Empty filters match everything.
type ListInventoryQuery struct {
	Category string
	Search   string
}

func (q ListInventoryQuery) matches(it domain.Item) bool {
	if q.Category != "" && it.Category != q.Category {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, v := range []string{it.Name, it.Standard, it.Model, it.Manufacturer, it.Location} {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// ListInventoryHandler handles list inventory query
type ListInventoryHandler struct {
	ws *workspace.Workspace
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(ws *workspace.Workspace) *ListInventoryHandler {
	return &ListInventoryHandler{ws: ws}
}

// Handle executes the list inventory query. Items come back in display order.
func (h *ListInventoryHandler) Handle(query ListInventoryQuery) []domain.Item {
	out := make([]domain.Item, 0)
	h.ws.View(func(s *domain.Snapshot) {
		for _, it := range s.Inventory {
			if query.matches(it) {
				out = append(out, it)
			}
		}
	})
	domain.SortItems(out)
	return out
}
