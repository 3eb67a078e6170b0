package command

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
	"github.com/tair/stockledger/internal/ledger"
	"github.com/tair/stockledger/pkg/logger"
)

// ItemFields are the editable fields of an inventory item
type ItemFields struct {
	Category     string `json:"category"`
	Name         string `json:"name" validate:"notblank"`
	Standard     string `json:"standard"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	Unit         string `json:"unit"`
	CurrentStock int    `json:"currentStock"`
	SafeStock    int    `json:"safeStock" validate:"gte=0"`
	Location     string `json:"location"`
	Note         string `json:"note"`
}

// apply copies the fields onto item, trimming text and defaulting blanks
func (f ItemFields) apply(item *domain.Item, today string) {
	item.Category = strings.TrimSpace(f.Category)
	if item.Category == "" {
		item.Category = domain.DefaultCategory
	}
	item.Name = strings.TrimSpace(f.Name)
	item.Standard = strings.TrimSpace(f.Standard)
	item.Model = strings.TrimSpace(f.Model)
	item.Manufacturer = strings.TrimSpace(f.Manufacturer)
	item.Unit = strings.TrimSpace(f.Unit)
	if item.Unit == "" {
		item.Unit = domain.DefaultUnit
	}
	item.CurrentStock = f.CurrentStock
	item.SafeStock = f.SafeStock
	if item.SafeStock < 1 {
		item.SafeStock = 1
	}
	item.Location = strings.TrimSpace(f.Location)
	item.Note = strings.TrimSpace(f.Note)
	item.LastUpdated = today
}

// CreateItemCommand represents the command to create an inventory item
type CreateItemCommand struct {
	ItemFields
}

// CreateItemHandler handles create item command
type CreateItemHandler struct {
	ws    *workspace.Workspace
	clock domain.Clock
}

// NewCreateItemHandler creates a new create item handler
func NewCreateItemHandler(ws *workspace.Workspace, clock domain.Clock) *CreateItemHandler {
	return &CreateItemHandler{ws: ws, clock: clock}
}

// Handle executes the create item command
func (h *CreateItemHandler) Handle(ctx context.Context, cmd CreateItemCommand) (domain.Item, error) {
	if err := validateStruct(cmd); err != nil {
		return domain.Item{}, err
	}

	item := domain.Item{ID: uuid.NewString()}
	cmd.apply(&item, h.clock.Today())

	err := h.ws.Mutate(ctx, "item.created", func(s *domain.Snapshot) error {
		s.Inventory = append([]domain.Item{item}, s.Inventory...)
		domain.SortItems(s.Inventory)
		return nil
	})
	if err != nil {
		return domain.Item{}, err
	}

	logger.Info(ctx).
		Str("item_id", item.ID).
		Str("name", item.Name).
		Int("current_stock", item.CurrentStock).
		Msg("Inventory item created")
	return item, nil
}

// UpdateItemCommand represents the command to edit every field of an item
type UpdateItemCommand struct {
	ID string `validate:"required"`
	ItemFields
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	ws    *workspace.Workspace
	clock domain.Clock
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(ws *workspace.Workspace, clock domain.Clock) *UpdateItemHandler {
	return &UpdateItemHandler{ws: ws, clock: clock}
}

// Handle executes the update item command. A changed stock figure becomes
// the new anchor for the item's ledger snapshots.
func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (domain.Item, error) {
	if err := validateStruct(cmd); err != nil {
		return domain.Item{}, err
	}

	var updated domain.Item
	err := h.ws.Mutate(ctx, "item.updated", func(s *domain.Snapshot) error {
		idx := s.FindItem(cmd.ID)
		if idx < 0 {
			return domain.ErrItemNotFound
		}
		cmd.apply(&s.Inventory[idx], h.clock.Today())
		updated = s.Inventory[idx]
		ledger.New(s).Rederive(cmd.ID)
		domain.SortItems(s.Inventory)
		return nil
	})
	if err != nil {
		return domain.Item{}, err
	}

	logger.Info(ctx).
		Str("item_id", updated.ID).
		Int("current_stock", updated.CurrentStock).
		Msg("Inventory item updated")
	return updated, nil
}

// DeleteItemCommand represents the command to delete an item. Its
// transactions stay in the ledger under the old item id.
type DeleteItemCommand struct {
	ID string `validate:"required"`
}

// DeleteItemHandler handles delete item command
type DeleteItemHandler struct {
	ws *workspace.Workspace
}

// NewDeleteItemHandler creates a new delete item handler
func NewDeleteItemHandler(ws *workspace.Workspace) *DeleteItemHandler {
	return &DeleteItemHandler{ws: ws}
}

// Handle executes the delete item command
func (h *DeleteItemHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	if err := validateStruct(cmd); err != nil {
		return err
	}

	orphaned := 0
	err := h.ws.Mutate(ctx, "item.deleted", func(s *domain.Snapshot) error {
		idx := s.FindItem(cmd.ID)
		if idx < 0 {
			return domain.ErrItemNotFound
		}
		s.Inventory = append(s.Inventory[:idx:idx], s.Inventory[idx+1:]...)
		for _, tx := range s.Transactions {
			if tx.ItemID == cmd.ID {
				orphaned++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx).
		Str("item_id", cmd.ID).
		Int("retained_transactions", orphaned).
		Msg("Inventory item deleted")
	return nil
}
