package command

import (
	"context"
	"strings"

	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
	"github.com/tair/stockledger/internal/ledger"
	"github.com/tair/stockledger/pkg/logger"
)

// RecordTransactionCommand represents the command to register an IN or OUT movement
type RecordTransactionCommand struct {
	ItemID     string `json:"itemId" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=IN OUT"`
	Quantity   int    `json:"quantity" validate:"gt=0"`
	Date       string `json:"date" validate:"omitempty,calendardate"`
	Worker     string `json:"worker"`
	Department string `json:"department"`
	Reason     string `json:"reason"`
}

// RecordTransactionHandler handles record transaction command
type RecordTransactionHandler struct {
	ws    *workspace.Workspace
	clock domain.Clock
}

// NewRecordTransactionHandler creates a new record transaction handler
func NewRecordTransactionHandler(ws *workspace.Workspace, clock domain.Clock) *RecordTransactionHandler {
	return &RecordTransactionHandler{ws: ws, clock: clock}
}

// Handle executes the record transaction command. Date defaults to today.
func (h *RecordTransactionHandler) Handle(ctx context.Context, cmd RecordTransactionCommand) (domain.Transaction, error) {
	if err := validateStruct(cmd); err != nil {
		return domain.Transaction{}, err
	}
	if cmd.Date == "" {
		cmd.Date = h.clock.Today()
	}

	var tx domain.Transaction
	var stock int
	err := h.ws.Mutate(ctx, "transaction.recorded", func(s *domain.Snapshot) error {
		var err error
		tx, err = ledger.New(s).Record(ledger.Entry{
			ItemID:     cmd.ItemID,
			Type:       domain.TransactionType(cmd.Type),
			Quantity:   cmd.Quantity,
			Date:       cmd.Date,
			Worker:     strings.TrimSpace(cmd.Worker),
			Department: strings.TrimSpace(cmd.Department),
			Reason:     strings.TrimSpace(cmd.Reason),
		})
		if err != nil {
			return err
		}
		stock = s.Inventory[s.FindItem(cmd.ItemID)].CurrentStock
		return nil
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	logger.Info(ctx).
		Str("transaction_id", tx.ID).
		Str("item_id", tx.ItemID).
		Str("type", string(tx.Type)).
		Int("quantity", tx.Quantity).
		Int("current_stock", stock).
		Msg("Transaction recorded")
	return tx, nil
}

// UpdateTransactionCommand represents the command to edit a transaction.
// Nil fields are left unchanged.
type UpdateTransactionCommand struct {
	ID         string  `json:"-" validate:"required"`
	Type       *string `json:"type" validate:"omitempty,oneof=IN OUT"`
	Quantity   *int    `json:"quantity" validate:"omitempty,gt=0"`
	Date       *string `json:"date" validate:"omitempty,calendardate"`
	Worker     *string `json:"worker"`
	Department *string `json:"department"`
	Reason     *string `json:"reason"`
}

// UpdateTransactionHandler handles update transaction command
type UpdateTransactionHandler struct {
	ws *workspace.Workspace
}

// NewUpdateTransactionHandler creates a new update transaction handler
func NewUpdateTransactionHandler(ws *workspace.Workspace) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{ws: ws}
}

// Handle executes the update transaction command
func (h *UpdateTransactionHandler) Handle(ctx context.Context, cmd UpdateTransactionCommand) (domain.Transaction, error) {
	if err := validateStruct(cmd); err != nil {
		return domain.Transaction{}, err
	}

	changes := ledger.Changes{
		Quantity:   cmd.Quantity,
		Date:       cmd.Date,
		Worker:     cmd.Worker,
		Department: cmd.Department,
		Reason:     cmd.Reason,
	}
	if cmd.Type != nil {
		t := domain.TransactionType(*cmd.Type)
		changes.Type = &t
	}

	var tx domain.Transaction
	err := h.ws.Mutate(ctx, "transaction.updated", func(s *domain.Snapshot) error {
		var err error
		tx, err = ledger.New(s).Update(cmd.ID, changes)
		return err
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	logger.Info(ctx).
		Str("transaction_id", tx.ID).
		Str("item_id", tx.ItemID).
		Str("type", string(tx.Type)).
		Int("quantity", tx.Quantity).
		Msg("Transaction updated")
	return tx, nil
}

// DeleteTransactionCommand represents the command to delete a transaction
type DeleteTransactionCommand struct {
	ID string `validate:"required"`
}

// DeleteTransactionHandler handles delete transaction command
type DeleteTransactionHandler struct {
	ws *workspace.Workspace
}

// NewDeleteTransactionHandler creates a new delete transaction handler
func NewDeleteTransactionHandler(ws *workspace.Workspace) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{ws: ws}
}

// Handle executes the delete transaction command
func (h *DeleteTransactionHandler) Handle(ctx context.Context, cmd DeleteTransactionCommand) error {
	if err := validateStruct(cmd); err != nil {
		return err
	}

	var tx domain.Transaction
	err := h.ws.Mutate(ctx, "transaction.deleted", func(s *domain.Snapshot) error {
		var err error
		tx, err = ledger.New(s).Delete(cmd.ID)
		return err
	})
	if err != nil {
		return err
	}

	logger.Info(ctx).
		Str("transaction_id", tx.ID).
		Str("item_id", tx.ItemID).
		Msg("Transaction deleted")
	return nil
}

// ClearItemHistoryCommand represents the command to wipe an item's ledger.
// Stock is not changed.
type ClearItemHistoryCommand struct {
	ItemID string `validate:"required"`
}

// ClearItemHistoryHandler handles clear history command
type ClearItemHistoryHandler struct {
	ws *workspace.Workspace
}

// NewClearItemHistoryHandler creates a new clear history handler
func NewClearItemHistoryHandler(ws *workspace.Workspace) *ClearItemHistoryHandler {
	return &ClearItemHistoryHandler{ws: ws}
}

// Handle executes the clear history command and returns how many entries were removed
func (h *ClearItemHistoryHandler) Handle(ctx context.Context, cmd ClearItemHistoryCommand) (int, error) {
	if err := validateStruct(cmd); err != nil {
		return 0, err
	}

	removed := 0
	err := h.ws.Mutate(ctx, "history.cleared", func(s *domain.Snapshot) error {
		removed = ledger.New(s).ClearItem(cmd.ItemID)
		if removed == 0 && s.FindItem(cmd.ItemID) < 0 {
			return domain.ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info(ctx).
		Str("item_id", cmd.ItemID).
		Int("removed", removed).
		Msg("Item history cleared")
	return removed, nil
}
