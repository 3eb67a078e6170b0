package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/stockledger/internal/inventory/domain"
)

func TestRestoreHandler_Handle(t *testing.T) {
	// Setup
	ws, repo := newWorkspace(t, domain.Snapshot{
		Inventory: []domain.Item{breaker(1)},
		Users:     []domain.User{{ID: "u1", Name: "관리자", Role: domain.RoleAdmin}},
	})
	h := NewRestoreHandler(ws)
	cmd := RestoreCommand{
		Inventory: []domain.Item{
			{ID: "b", Category: "전기", Name: "전선"},
			{ID: "a", Category: "기계", Name: "볼트"},
		},
		Transactions: []domain.Transaction{{ID: "t1", ItemID: "a", Type: domain.TransactionIn, Quantity: 1, Date: "2024-01-01"}},
	}

	// Execute
	err := h.Handle(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{cmd.Inventory[1], cmd.Inventory[0]}, repo.snap.Inventory)
	assert.Equal(t, cmd.Transactions, repo.snap.Transactions)
	assert.Len(t, repo.snap.Users, 1)
}

func TestRestoreHandler_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		cmd  RestoreCommand
	}{
		{name: "item without id", cmd: RestoreCommand{Inventory: []domain.Item{{Name: "x"}}}},
		{name: "duplicate id", cmd: RestoreCommand{Inventory: []domain.Item{{ID: "a"}, {ID: "a"}}}},
		{name: "bad transaction type", cmd: RestoreCommand{Transactions: []domain.Transaction{{ID: "t", Type: "MOVE"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			ws, repo := newWorkspace(t, domain.Snapshot{})

			// Execute
			err := NewRestoreHandler(ws).Handle(context.Background(), tt.cmd)

			// Assert
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, repo.saves)
		})
	}
}
