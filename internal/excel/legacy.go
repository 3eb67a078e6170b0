package excel

import (
	"fmt"
	"strings"

	"github.com/tair/stockledger/internal/inventory/domain"
)

// LegacyFormat is the historical stock sheet with a combined name(spec)
// column and no separate spec column.
type LegacyFormat struct {
	HeaderRow int
}

func (LegacyFormat) Kind() FormatKind { return FormatLegacy }

// Parse builds items straight from the sheet. It fails without partial
// output when the name(spec) or stock column cannot be found.
func (f LegacyFormat) Parse(g Grid, stamp Stamp) (*Batch, error) {
	if f.HeaderRow < 0 || f.HeaderRow >= len(g) {
		return nil, ErrHeaderNotFound
	}
	header := g[f.HeaderRow]

	nameSpecCol := columnIndex(header, "품목(규격)", "품목")
	modelCol := columnIndex(header, "비고(품번)", "품번")
	makerCol := columnIndex(header, "제조사")
	stockCol := columnIndex(header, "재고", "현재고")

	if nameSpecCol < 0 {
		return nil, fmt.Errorf("%w: 품목(규격)", ErrRequiredColumnMissing)
	}
	if stockCol < 0 {
		return nil, fmt.Errorf("%w: 재고", ErrRequiredColumnMissing)
	}

	var items []domain.Item
	for i := f.HeaderRow + 1; i < len(g); i++ {
		row := g[i]
		if len(row) == 0 {
			continue
		}
		nameSpec := strings.TrimSpace(g.Cell(i, nameSpecCol))
		if SkipNameSpec(nameSpec) {
			continue
		}
		name, standard := SplitNameSpec(nameSpec)

		item := domain.Item{
			ID:           fmt.Sprintf("CHN-%s-%d", stamp.BatchID, i),
			Category:     domain.DefaultCategory,
			Name:         name,
			Standard:     standard,
			Unit:         domain.DefaultUnit,
			CurrentStock: NormalizeString(g.Cell(i, stockCol)),
			SafeStock:    1,
			LastUpdated:  stamp.Today,
		}
		if modelCol >= 0 {
			item.Model = strings.TrimSpace(g.Cell(i, modelCol))
		}
		if makerCol >= 0 {
			item.Manufacturer = strings.TrimSpace(g.Cell(i, makerCol))
		}
		items = append(items, item)
	}

	return &Batch{Kind: FormatLegacy, Items: items, Stamp: stamp}, nil
}
