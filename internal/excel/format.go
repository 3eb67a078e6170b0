package excel

import (
	"strings"

	"github.com/tair/stockledger/internal/inventory/domain"
)

// FormatKind names an upload layout.
type FormatKind string

const (
	FormatLegacy   FormatKind = "legacy"
	FormatStandard FormatKind = "standard"
)

// nameSpecMarker identifies the combined name(spec) header of legacy exports.
const nameSpecMarker = "품목(규격)"

// Stamp carries the values shared by every record of one upload.
type Stamp struct {
	BatchID string
	Today   string
}

// Format is one of the supported layouts. DetectFormat picks it once;
// callers only ever go through Parse.
type Format interface {
	Kind() FormatKind
	Parse(g Grid, stamp Stamp) (*Batch, error)
}

// Batch is a parsed upload. Legacy batches carry finished items; standard
// batches carry headers, rows and a guessed mapping awaiting review.
type Batch struct {
	Kind    FormatKind
	Headers []string
	Rows    [][]string
	Mapping Mapping
	Items   []domain.Item
	Stamp   Stamp
}

// NeedsMapping reports whether the batch must go through column mapping.
func (b *Batch) NeedsMapping() bool {
	return b.Kind == FormatStandard
}

// DetectFormat classifies a resolved grid. The header row is the first row
// holding a name(spec) cell; the layout is legacy when that row has no
// standalone spec column but does have a stock column.
func DetectFormat(g Grid) Format {
	idx := findHeaderRow(g, func(row []string) bool { return rowContains(row, nameSpecMarker) })
	if idx >= 0 {
		hasStandard, hasStock := false, false
		for _, c := range g[idx] {
			c = strings.TrimSpace(c)
			if c == "규격" {
				hasStandard = true
			}
			if strings.Contains(c, "재고") {
				hasStock = true
			}
		}
		if !hasStandard && hasStock {
			return LegacyFormat{HeaderRow: idx}
		}
	}
	return StandardFormat{}
}

// Parse detects the layout of g and parses it.
func Parse(g Grid, stamp Stamp) (*Batch, error) {
	return DetectFormat(g).Parse(g, stamp)
}
