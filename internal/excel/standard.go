package excel

import (
	"fmt"
	"strings"

	"github.com/tair/stockledger/internal/inventory/domain"
)

// StandardFormat is any sheet whose first row holds column headers.
type StandardFormat struct{}

func (StandardFormat) Kind() FormatKind { return FormatStandard }

// Parse splits off the header row and guesses a mapping. Blank rows are dropped.
func (StandardFormat) Parse(g Grid, stamp Stamp) (*Batch, error) {
	if len(g) == 0 {
		return nil, ErrHeaderNotFound
	}
	headers := make([]string, len(g[0]))
	copy(headers, g[0])
	if isBlankRow(headers) {
		return nil, ErrHeaderNotFound
	}

	rows := make([][]string, 0, len(g)-1)
	for _, r := range g[1:] {
		if isBlankRow(r) {
			continue
		}
		rows = append(rows, r)
	}

	return &Batch{
		Kind:    FormatStandard,
		Headers: headers,
		Rows:    rows,
		Mapping: GuessMapping(headers),
		Stamp:   stamp,
	}, nil
}

// Preview is the reviewed result of a batch, ready to be appended.
type Preview struct {
	Items []domain.Item `json:"items"`
	// Duplicates holds the ids of previewed items whose name and standard
	// already exist. They are still imported.
	Duplicates     []string `json:"duplicates"`
	DuplicateCount int      `json:"duplicateCount"`
}

// Preview builds the items of the batch and flags duplicates of existing.
// A standard batch fails with *MissingFieldsError while a required field is unmapped.
func (b *Batch) Preview(cfg FieldLabelConfig, existing []domain.Item) (*Preview, error) {
	items := b.Items
	if b.Kind == FormatStandard {
		if err := cfg.Check(b.Mapping); err != nil {
			return nil, err
		}
		items = b.buildItems()
	}

	type key struct{ name, standard string }
	seen := make(map[key]struct{}, len(existing))
	for _, it := range existing {
		seen[key{it.Name, it.Standard}] = struct{}{}
	}

	p := &Preview{Items: items, Duplicates: []string{}}
	for _, it := range items {
		if _, ok := seen[key{it.Name, it.Standard}]; ok {
			p.Duplicates = append(p.Duplicates, it.ID)
		}
	}
	p.DuplicateCount = len(p.Duplicates)
	return p, nil
}

func (b *Batch) buildItems() []domain.Item {
	col := make(map[Field]int, len(b.Mapping))
	for f, h := range b.Mapping {
		for i, header := range b.Headers {
			if header == h {
				col[f] = i
				break
			}
		}
	}
	value := func(row []string, f Field) string {
		i, ok := col[f]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	orDefault := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}

	items := make([]domain.Item, 0, len(b.Rows))
	for i, row := range b.Rows {
		safe := 1
		if v := value(row, FieldSafeStock); v != "" {
			safe = max(1, NormalizeString(v))
		}
		items = append(items, domain.Item{
			ID:           fmt.Sprintf("IMP-%s-%d", b.Stamp.BatchID, i),
			Category:     orDefault(value(row, FieldCategory), domain.DefaultCategory),
			Name:         orDefault(value(row, FieldName), domain.DefaultItemName),
			Standard:     value(row, FieldStandard),
			Model:        value(row, FieldModel),
			Manufacturer: value(row, FieldManufacturer),
			Unit:         orDefault(value(row, FieldUnit), domain.DefaultUnit),
			CurrentStock: NormalizeString(value(row, FieldCurrentStock)),
			SafeStock:    safe,
			Location:     value(row, FieldLocation),
			Note:         value(row, FieldNote),
			LastUpdated:  b.Stamp.Today,
		})
	}
	return items
}
