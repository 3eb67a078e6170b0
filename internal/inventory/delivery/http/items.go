package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/stockledger/internal/inventory/usecase/command"
	"github.com/tair/stockledger/internal/inventory/usecase/query"
)

// ListInventory handles GET /api/inventory
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	items := h.queries.ListInventory.Handle(query.ListInventoryQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
	})

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    items,
	})
}

// CreateItem handles POST /api/inventory
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req command.ItemFields
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.commands.CreateItem.Handle(r.Context(), command.CreateItemCommand{ItemFields: req})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Item created successfully",
		Data:    item,
	})
}

// GetItem handles GET /api/inventory/{id}
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.queries.GetItem.Handle(query.GetItemQuery{ID: mux.Vars(r)["id"]})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    item,
	})
}

// UpdateItem handles PUT /api/inventory/{id}
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req command.ItemFields
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.commands.UpdateItem.Handle(r.Context(), command.UpdateItemCommand{
		ID:         mux.Vars(r)["id"],
		ItemFields: req,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item updated successfully",
		Data:    item,
	})
}

// DeleteItem handles DELETE /api/inventory/{id}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.commands.DeleteItem.Handle(r.Context(), command.DeleteItemCommand{ID: mux.Vars(r)["id"]}); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item deleted successfully",
	})
}
