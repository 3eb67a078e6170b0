// Package history turns a monthly in/out summary sheet into ledger entries
// for items that already exist.
package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tair/stockledger/internal/excel"
	"github.com/tair/stockledger/internal/inventory/domain"
)

var (
	// ErrHistoryHeaderNotFound is returned when no row holds the name(spec), 입고 and 출고 headers
	ErrHistoryHeaderNotFound = errors.New("천안수질정화센터 양식(품목, 입고, 출고 포함)을 찾을 수 없습니다.")

	// ErrHistoryColumnsMissing is returned when a required column cannot be resolved
	ErrHistoryColumnsMissing = errors.New("필수 컬럼(품목, 입고, 출고)을 식별할 수 없습니다.")

	// ErrInvalidMonth is returned for a target month that is not YYYY-MM
	ErrInvalidMonth = errors.New("month must be YYYY-MM")
)

// UnmatchedReason is recorded for rows with no matching item.
const UnmatchedReason = "품목 미등록 (이름/규격 불일치)"

// Provenance of synthesized entries.
const (
	Worker        = "시스템"
	InDepartment  = "관리팀"
	OutDepartment = "현장"
	InReason      = "구매입고(이력복원)"
	OutReason     = "현장사용(이력복원)"
)

// FailedRecord describes a row that matched no item. RowIndex is 1-based.
type FailedRecord struct {
	RowIndex int    `json:"rowIndex"`
	Name     string `json:"name"`
	Standard string `json:"standard"`
	Reason   string `json:"reason"`
}

// Result is the outcome of one import, to be reviewed before commit.
type Result struct {
	Month        string               `json:"month"`
	Transactions []domain.Transaction `json:"transactions"`
	MatchedCount int                  `json:"matchedCount"`
	Failed       []FailedRecord       `json:"failed"`
}

// FailedCount returns the number of unmatched rows.
func (r *Result) FailedCount() int { return len(r.Failed) }

// ValidateMonth checks a YYYY-MM month selector.
func ValidateMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	return nil
}

// Import matches each data row to an existing item by whitespace-stripped
// name and standard and synthesizes an IN entry on the 1st and an OUT entry
// on the 28th of month for non-zero totals. Stock is not touched and
// snapshots are left at 0 for the ledger to re-derive on commit.
func Import(g excel.Grid, month string, inventory []domain.Item, batchID string) (*Result, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	headerRow := excel.FindHeaderRow(g, "품목(규격)", "입고", "출고")
	if headerRow < 0 {
		return nil, ErrHistoryHeaderNotFound
	}
	header := g[headerRow]
	nameSpecCol := excel.ColumnIndex(header, "품목(규격)", "품목")
	inCol := excel.ColumnIndex(header, "입고")
	outCol := excel.ColumnIndex(header, "출고")
	if nameSpecCol < 0 || inCol < 0 || outCol < 0 {
		return nil, ErrHistoryColumnsMissing
	}

	type key struct{ name, standard string }
	index := make(map[key]domain.Item, len(inventory))
	for _, it := range inventory {
		k := key{excel.StripSpace(it.Name), excel.StripSpace(it.Standard)}
		if _, ok := index[k]; !ok {
			index[k] = it
		}
	}

	res := &Result{Month: month, Transactions: []domain.Transaction{}, Failed: []FailedRecord{}}
	dateIn, dateOut := month+"-01", month+"-28"

	for i := headerRow + 1; i < len(g); i++ {
		if len(g[i]) == 0 {
			continue
		}
		nameSpec := strings.TrimSpace(g.Cell(i, nameSpecCol))
		if excel.SkipNameSpec(nameSpec) {
			continue
		}
		name, standard := excel.SplitNameSpec(nameSpec)

		item, ok := index[key{excel.StripSpace(name), excel.StripSpace(standard)}]
		if !ok {
			res.Failed = append(res.Failed, FailedRecord{
				RowIndex: i + 1,
				Name:     name,
				Standard: standard,
				Reason:   UnmatchedReason,
			})
			continue
		}
		res.MatchedCount++

		if q := excel.NormalizeString(g.Cell(i, inCol)); q > 0 {
			res.Transactions = append(res.Transactions, domain.Transaction{
				ID:         fmt.Sprintf("HIST-IN-%s-%d", batchID, i),
				ItemID:     item.ID,
				ItemName:   item.Name,
				Category:   item.Category,
				Date:       dateIn,
				Type:       domain.TransactionIn,
				Quantity:   q,
				Worker:     Worker,
				Department: InDepartment,
				Reason:     InReason,
			})
		}
		if q := excel.NormalizeString(g.Cell(i, outCol)); q > 0 {
			res.Transactions = append(res.Transactions, domain.Transaction{
				ID:         fmt.Sprintf("HIST-OUT-%s-%d", batchID, i),
				ItemID:     item.ID,
				ItemName:   item.Name,
				Category:   item.Category,
				Date:       dateOut,
				Type:       domain.TransactionOut,
				Quantity:   q,
				Worker:     Worker,
				Department: OutDepartment,
				Reason:     OutReason,
			})
		}
	}
	return res, nil
}
