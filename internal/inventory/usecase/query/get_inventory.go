package query

import (
	"fmt"

	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
)

// GetItemQuery represents the query to get an inventory item
type GetItemQuery struct {
	ID string
}

// GetItemHandler handles get item query
type GetItemHandler struct {
	ws *workspace.Workspace
}

// NewGetItemHandler creates a new get item handler
func NewGetItemHandler(ws *workspace.Workspace) *GetItemHandler {
	return &GetItemHandler{ws: ws}
}

// Handle executes the get item query
func (h *GetItemHandler) Handle(query GetItemQuery) (domain.Item, error) {
	if query.ID == "" {
		return domain.Item{}, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}

	var item domain.Item
	found := false
	h.ws.View(func(s *domain.Snapshot) {
		if idx := s.FindItem(query.ID); idx >= 0 {
			item, found = s.Inventory[idx], true
		}
	})
	if !found {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return item, nil
}
