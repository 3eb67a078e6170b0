package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/tair/stockledger/internal/inventory/domain"
)

// DefaultDepartments are always offered as department suggestions.
var DefaultDepartments = []string{
	"1단계 공정설비",
	"2단계 공정설비",
	"3단계 공정설비",
	"4단계 공정설비",
	"신설 통합침사지",
	"신설 1.5단계 공정설비",
	"신설 2단계 공정설비",
}

// Query selects transactions for display. Month (YYYY-MM) takes precedence
// over the rolling Days/Years window, which is anchored at Now.
type Query struct {
	ItemID string
	Month  string
	Days   int
	Years  int
	Now    time.Time
}

func (q Query) since() string {
	if q.Days <= 0 && q.Years <= 0 {
		return ""
	}
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	return now.AddDate(-q.Years, 0, -q.Days).Format(DateLayout)
}

// Filter returns the matching transactions newest first. Same-day entries
// keep their stored order, which is newest first as well.
func Filter(txs []domain.Transaction, q Query) []domain.Transaction {
	since := q.since()
	out := make([]domain.Transaction, 0)
	for _, tx := range txs {
		if q.ItemID != "" && tx.ItemID != q.ItemID {
			continue
		}
		switch {
		case q.Month != "":
			if !strings.HasPrefix(tx.Date, q.Month) {
				continue
			}
		case since != "":
			if tx.Date < since {
				continue
			}
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// Departments returns the distinct departments used in txs merged with the
// defaults, sorted.
func Departments(txs []domain.Transaction) []string {
	set := make(map[string]struct{}, len(DefaultDepartments))
	for _, d := range DefaultDepartments {
		set[d] = struct{}{}
	}
	for _, tx := range txs {
		if tx.Department != "" {
			set[tx.Department] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
