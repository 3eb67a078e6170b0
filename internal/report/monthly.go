// Package report derives read-only views over inventory and its ledger.
package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tair/stockledger/internal/inventory/domain"
)

// ErrInvalidMonth is returned for a month that is not YYYY-MM
var ErrInvalidMonth = errors.New("month must be YYYY-MM")

// Balance is the reconstructed movement of one item over one month.
type Balance struct {
	StartStock int `json:"startStock"`
	TotalIn    int `json:"totalIn"`
	TotalOut   int `json:"totalOut"`
	EndStock   int `json:"endStock"`
}

// IsZero reports whether nothing happened and nothing was held.
func (b Balance) IsZero() bool {
	return b == Balance{}
}

// MonthlyRow is an item annotated with its balance for the month.
type MonthlyRow struct {
	domain.Item
	Balance
}

// monthBounds returns the first day of month and of the following month.
func monthBounds(month string) (string, string, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	return start.Format("2006-01-02"), start.AddDate(0, 1, 0).Format("2006-01-02"), nil
}

// Reconstruct walks back from the item's live stock: every transaction after
// the month is reversed to get the closing balance, and the month's own
// movements are reversed again to get the opening balance.
func Reconstruct(item domain.Item, txs []domain.Transaction, month string) (Balance, error) {
	from, to, err := monthBounds(month)
	if err != nil {
		return Balance{}, err
	}
	return reconstruct(item, txs, from, to), nil
}

func reconstruct(item domain.Item, txs []domain.Transaction, from, to string) Balance {
	var b Balance
	b.EndStock = item.CurrentStock
	for _, tx := range txs {
		if tx.ItemID != item.ID {
			continue
		}
		switch {
		case tx.Date >= to:
			b.EndStock -= tx.Impact()
		case tx.Date >= from:
			if tx.Type == domain.TransactionIn {
				b.TotalIn += tx.Quantity
			} else {
				b.TotalOut += tx.Quantity
			}
		}
	}
	b.StartStock = b.EndStock - b.TotalIn + b.TotalOut
	return b
}

// Monthly reconstructs every item for month, drops all-zero rows and orders
// the rest by category then name.
func Monthly(items []domain.Item, txs []domain.Transaction, month string) ([]MonthlyRow, error) {
	from, to, err := monthBounds(month)
	if err != nil {
		return nil, err
	}

	byItem := make(map[string][]domain.Transaction)
	for _, tx := range txs {
		byItem[tx.ItemID] = append(byItem[tx.ItemID], tx)
	}

	rows := make([]MonthlyRow, 0, len(items))
	for _, it := range items {
		b := reconstruct(it, byItem[it.ID], from, to)
		if b.IsZero() {
			continue
		}
		rows = append(rows, MonthlyRow{Item: it, Balance: b})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}
