package command

import (
	"context"
	"fmt"

	"github.com/tair/stockledger/internal/inventory/domain"
	"github.com/tair/stockledger/internal/inventory/workspace"
	"github.com/tair/stockledger/pkg/logger"
)

// RestoreCommand carries an exported inventory and ledger
type RestoreCommand struct {
	Inventory    []domain.Item        `json:"inventory"`
	Transactions []domain.Transaction `json:"transactions"`
}

// RestoreHandler handles restore command
type RestoreHandler struct {
	ws *workspace.Workspace
}

// NewRestoreHandler creates a new restore handler
func NewRestoreHandler(ws *workspace.Workspace) *RestoreHandler {
	return &RestoreHandler{ws: ws}
}

// Handle replaces inventory and transactions wholesale. Users are kept.
func (h *RestoreHandler) Handle(ctx context.Context, cmd RestoreCommand) error {
	seen := make(map[string]struct{}, len(cmd.Inventory))
	for _, it := range cmd.Inventory {
		if it.ID == "" {
			return fmt.Errorf("%w: item without id", domain.ErrInvalidInput)
		}
		if _, ok := seen[it.ID]; ok {
			return fmt.Errorf("%w: duplicate item id %q", domain.ErrInvalidInput, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	for _, tx := range cmd.Transactions {
		if tx.ID == "" || !tx.Type.Valid() {
			return fmt.Errorf("%w: malformed transaction %q", domain.ErrInvalidInput, tx.ID)
		}
	}

	err := h.ws.Mutate(ctx, "snapshot.restored", func(s *domain.Snapshot) error {
		s.Inventory = append([]domain.Item{}, cmd.Inventory...)
		s.Transactions = append([]domain.Transaction{}, cmd.Transactions...)
		domain.SortItems(s.Inventory)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx).
		Int("items", len(cmd.Inventory)).
		Int("transactions", len(cmd.Transactions)).
		Msg("Snapshot restored")
	return nil
}
