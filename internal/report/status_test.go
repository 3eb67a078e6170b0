package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tair/stockledger/internal/inventory/domain"
)

func names(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestAnalyze(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	items := []domain.Item{
		{ID: "short-half", CurrentStock: 5, SafeStock: 10},
		{ID: "short-zero", CurrentStock: 0, SafeStock: 2},
		{ID: "over", CurrentStock: 40, SafeStock: 10},
		{ID: "over-big", CurrentStock: 90, SafeStock: 1},
		{ID: "busy", CurrentStock: 3, SafeStock: 1},
		{ID: "none", CurrentStock: 0, SafeStock: 0},
	}
	txs := []domain.Transaction{
		tx("busy", domain.TransactionOut, 7, "2024-06-01"),
		tx("over", domain.TransactionOut, 2, "2023-09-01"),
		tx("over", domain.TransactionIn, 100, "2024-06-01"),
		tx("short-half", domain.TransactionOut, 1, "2023-01-01"),
	}

	s := Analyze(items, txs, now)

	assert.Equal(t, []string{"short-zero", "short-half"}, names(s.Shortage))
	assert.Equal(t, []string{"over-big", "over"}, names(s.Overstock))
	assert.Equal(t, []string{"over-big", "over", "short-half"}, names(s.DeadStock))
	if assert.Len(t, s.TopTurnover, 2) {
		assert.Equal(t, "busy", s.TopTurnover[0].ID)
		assert.Equal(t, 7, s.TopTurnover[0].UsageQty)
		assert.Equal(t, 2, s.TopTurnover[1].UsageQty)
	}
}

func TestAnalyze_TopTurnoverCapped(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	var items []domain.Item
	var txs []domain.Transaction
	for i := 0; i < 15; i++ {
		id := fmt.Sprintf("i%02d", i)
		items = append(items, domain.Item{ID: id, SafeStock: 1})
		txs = append(txs, tx(id, domain.TransactionOut, i+1, "2024-06-01"))
	}

	s := Analyze(items, txs, now)

	assert.Len(t, s.TopTurnover, TopTurnoverLimit)
	assert.Equal(t, "i14", s.TopTurnover[0].ID)
}
