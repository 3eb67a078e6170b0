package report

import (
	"sort"
	"time"

	"github.com/tair/stockledger/internal/inventory/domain"
)

// TopTurnoverLimit caps the turnover ranking.
const TopTurnoverLimit = 10

// Usage is an item with its OUT quantity over the last year.
type Usage struct {
	domain.Item
	UsageQty int `json:"usageQty"`
}

// Status is the periodic stock health analysis.
type Status struct {
	Shortage    []domain.Item `json:"shortage"`
	Overstock   []domain.Item `json:"overstock"`
	DeadStock   []domain.Item `json:"deadStock"`
	TopTurnover []Usage       `json:"topTurnover"`
}

// Analyze classifies items as of now.
//
// Shortage is stock below safe stock, worst ratio first. Overstock is
// stock above three times safe stock. Dead stock is held stock with no OUT
// in the last six months. Turnover ranks OUT quantity over the last year.
func Analyze(items []domain.Item, txs []domain.Transaction, now time.Time) Status {
	sixMonthsAgo := now.AddDate(0, -6, 0).Format("2006-01-02")
	oneYearAgo := now.AddDate(-1, 0, 0).Format("2006-01-02")

	active := make(map[string]bool)
	usage := make(map[string]int)
	for _, tx := range txs {
		if tx.Type != domain.TransactionOut {
			continue
		}
		if tx.Date >= sixMonthsAgo {
			active[tx.ItemID] = true
		}
		if tx.Date >= oneYearAgo {
			usage[tx.ItemID] += tx.Quantity
		}
	}

	s := Status{
		Shortage:    []domain.Item{},
		Overstock:   []domain.Item{},
		DeadStock:   []domain.Item{},
		TopTurnover: []Usage{},
	}
	for _, it := range items {
		if it.SafeStock > 0 && it.CurrentStock < it.SafeStock {
			s.Shortage = append(s.Shortage, it)
		}
		if it.SafeStock > 0 && it.CurrentStock > it.SafeStock*3 {
			s.Overstock = append(s.Overstock, it)
		}
		if it.CurrentStock > 0 && !active[it.ID] {
			s.DeadStock = append(s.DeadStock, it)
		}
		if q := usage[it.ID]; q > 0 {
			s.TopTurnover = append(s.TopTurnover, Usage{Item: it, UsageQty: q})
		}
	}

	sort.SliceStable(s.Shortage, func(i, j int) bool {
		a, b := s.Shortage[i], s.Shortage[j]
		return float64(a.CurrentStock)/float64(a.SafeStock) < float64(b.CurrentStock)/float64(b.SafeStock)
	})
	byStockDesc := func(list []domain.Item) func(i, j int) bool {
		return func(i, j int) bool { return list[i].CurrentStock > list[j].CurrentStock }
	}
	sort.SliceStable(s.Overstock, byStockDesc(s.Overstock))
	sort.SliceStable(s.DeadStock, byStockDesc(s.DeadStock))
	sort.SliceStable(s.TopTurnover, func(i, j int) bool {
		return s.TopTurnover[i].UsageQty > s.TopTurnover[j].UsageQty
	})
	if len(s.TopTurnover) > TopTurnoverLimit {
		s.TopTurnover = s.TopTurnover[:TopTurnoverLimit]
	}
	return s
}
