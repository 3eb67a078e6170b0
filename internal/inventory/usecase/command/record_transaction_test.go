package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/stockledger/internal/inventory/domain"
)

func TestRecordTransactionHandler_Handle(t *testing.T) {
	tests := []struct {
		name      string
		cmd       RecordTransactionCommand
		wantStock int
		wantDate  string
		wantErr   error
	}{
		{
			name:      "inbound defaults date to today",
			cmd:       RecordTransactionCommand{ItemID: "item-1", Type: "IN", Quantity: 4, Worker: " 김 "},
			wantStock: 14,
			wantDate:  "2024-03-15",
		},
		{
			name:      "outbound may overdraw",
			cmd:       RecordTransactionCommand{ItemID: "item-1", Type: "OUT", Quantity: 12, Date: "2024-03-10"},
			wantStock: -2,
			wantDate:  "2024-03-10",
		},
		{
			name:    "zero quantity",
			cmd:     RecordTransactionCommand{ItemID: "item-1", Type: "IN", Quantity: 0},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "unknown type",
			cmd:     RecordTransactionCommand{ItemID: "item-1", Type: "MOVE", Quantity: 1},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "malformed date",
			cmd:     RecordTransactionCommand{ItemID: "item-1", Type: "IN", Quantity: 1, Date: "2024/03/01"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "unknown item",
			cmd:     RecordTransactionCommand{ItemID: "nope", Type: "IN", Quantity: 1},
			wantErr: domain.ErrItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			ws, repo := newWorkspace(t, domain.Snapshot{Inventory: []domain.Item{breaker(10)}})
			h := NewRecordTransactionHandler(ws, fixedClock)

			// Execute
			tx, err := h.Handle(context.Background(), tt.cmd)

			// Assert
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, repo.saves)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, tx.Date)
			assert.Equal(t, tt.wantStock, tx.CurrentStockSnapshot)
			assert.Equal(t, "차단기", tx.ItemName)
			assert.Equal(t, tt.wantStock, repo.snap.Inventory[0].CurrentStock)
			assert.Equal(t, tx, repo.snap.Transactions[0])
		})
	}
}

func TestRecordTransactionHandler_TrimsText(t *testing.T) {
	// Setup
	ws, _ := newWorkspace(t, domain.Snapshot{Inventory: []domain.Item{breaker(0)}})
	h := NewRecordTransactionHandler(ws, fixedClock)

	// Execute
	tx, err := h.Handle(context.Background(), RecordTransactionCommand{
		ItemID: "item-1", Type: "IN", Quantity: 1, Worker: " 김철수 ", Department: "관리팀 ", Reason: " 구매",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "김철수", tx.Worker)
	assert.Equal(t, "관리팀", tx.Department)
	assert.Equal(t, "구매", tx.Reason)
}

func ledgerFixture() domain.Snapshot {
	return domain.Snapshot{
		Inventory: []domain.Item{breaker(8)},
		Transactions: []domain.Transaction{
			{ID: "t2", ItemID: "item-1", Date: "2024-03-05", Type: domain.TransactionOut, Quantity: 2, CurrentStockSnapshot: 8},
			{ID: "t1", ItemID: "item-1", Date: "2024-03-01", Type: domain.TransactionIn, Quantity: 10, CurrentStockSnapshot: 10},
		},
	}
}

func TestUpdateTransactionHandler_Handle(t *testing.T) {
	t.Run("quantity change moves stock by the difference", func(t *testing.T) {
		// Setup
		ws, repo := newWorkspace(t, ledgerFixture())
		h := NewUpdateTransactionHandler(ws)
		qty := 5

		// Execute
		tx, err := h.Handle(context.Background(), UpdateTransactionCommand{ID: "t2", Quantity: &qty})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, tx.Quantity)
		assert.Equal(t, 5, repo.snap.Inventory[0].CurrentStock)
		assert.Equal(t, 5, repo.snap.Transactions[0].CurrentStockSnapshot)
		assert.Equal(t, 10, repo.snap.Transactions[1].CurrentStockSnapshot)
	})

	t.Run("type flip", func(t *testing.T) {
		// Setup
		ws, repo := newWorkspace(t, ledgerFixture())
		h := NewUpdateTransactionHandler(ws)
		in := "IN"

		// Execute
		_, err := h.Handle(context.Background(), UpdateTransactionCommand{ID: "t2", Type: &in})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 12, repo.snap.Inventory[0].CurrentStock)
	})

	t.Run("invalid change is rejected", func(t *testing.T) {
		// Setup
		ws, repo := newWorkspace(t, ledgerFixture())
		h := NewUpdateTransactionHandler(ws)
		zero := 0

		// Execute
		_, err := h.Handle(context.Background(), UpdateTransactionCommand{ID: "t2", Quantity: &zero})

		// Assert
		assert.Error(t, err)
		assert.Zero(t, repo.saves)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		// Setup
		ws, _ := newWorkspace(t, ledgerFixture())
		h := NewUpdateTransactionHandler(ws)

		// Execute
		_, err := h.Handle(context.Background(), UpdateTransactionCommand{ID: "nope"})

		// Assert
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})
}

func TestDeleteTransactionHandler_ReversesImpact(t *testing.T) {
	// Setup
	ws, repo := newWorkspace(t, ledgerFixture())
	h := NewDeleteTransactionHandler(ws)

	// Execute
	err := h.Handle(context.Background(), DeleteTransactionCommand{ID: "t1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, -2, repo.snap.Inventory[0].CurrentStock)
	require.Len(t, repo.snap.Transactions, 1)
	assert.Equal(t, -2, repo.snap.Transactions[0].CurrentStockSnapshot)
	assert.ErrorIs(t, h.Handle(context.Background(), DeleteTransactionCommand{ID: "t1"}), domain.ErrTransactionNotFound)
}

func TestClearItemHistoryHandler_Handle(t *testing.T) {
	// Setup
	ws, repo := newWorkspace(t, ledgerFixture())
	h := NewClearItemHistoryHandler(ws)

	// Execute
	removed, err := h.Handle(context.Background(), ClearItemHistoryCommand{ItemID: "item-1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, repo.snap.Transactions)
	assert.Equal(t, 8, repo.snap.Inventory[0].CurrentStock)

	removed, err = h.Handle(context.Background(), ClearItemHistoryCommand{ItemID: "item-1"})
	require.NoError(t, err)
	assert.Zero(t, removed)

	_, err = h.Handle(context.Background(), ClearItemHistoryCommand{ItemID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
