package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Workbook is the first sheet of an upload with its merge regions, unresolved.
type Workbook struct {
	Sheet  string
	Grid   Grid
	Merges []MergeRegion
}

// Resolved returns the sheet with merges applied.
func (w *Workbook) Resolved() Grid {
	return ResolveMerges(w.Grid, w.Merges)
}

// ReadWorkbook reads the first sheet of an upload. The format is sniffed from
// the content; filename is only consulted to recognise csv. Binary .xls
// sheets carry no merge regions.
func ReadWorkbook(r io.Reader, filename string) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookRead, err)
	}
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return readXLSX(data)
	case bytes.HasPrefix(data, oleMagic):
		return readXLS(data)
	case strings.EqualFold(filepath.Ext(filename), ".csv"):
		return readCSV(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func readXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookRead, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets found", ErrWorkbookRead)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookRead, err)
	}

	cells, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookRead, err)
	}
	merges := make([]MergeRegion, 0, len(cells))
	for _, mc := range cells {
		sc, sr, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			continue
		}
		ec, er, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			continue
		}
		merges = append(merges, MergeRegion{StartRow: sr - 1, StartCol: sc - 1, EndRow: er - 1, EndCol: ec - 1})
	}

	return &Workbook{Sheet: sheet, Grid: Grid(rows), Merges: merges}, nil
}

func readXLS(data []byte) (wb *Workbook, err error) {
	// the BIFF parser panics on some truncated streams
	defer func() {
		if r := recover(); r != nil {
			wb, err = nil, fmt.Errorf("%w: %v", ErrWorkbookRead, r)
		}
	}()

	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookRead, err)
	}
	if book.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: no sheets found", ErrWorkbookRead)
	}
	sheet := book.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%w: no sheets found", ErrWorkbookRead)
	}
	return &Workbook{Sheet: sheet.Name, Grid: collectRows(xlsSheet{sheet})}, nil
}

// rowSource is a sheet read row by row; a nil row is absent.
type rowSource interface {
	rowCount() int
	row(i int) []string
}

type xlsSheet struct{ sheet *xls.WorkSheet }

func (s xlsSheet) rowCount() int { return int(s.sheet.MaxRow) + 1 }

func (s xlsSheet) row(i int) []string {
	r := s.sheet.Row(i)
	if r == nil {
		return nil
	}
	cells := make([]string, r.LastCol()+1)
	for c := range cells {
		cells[c] = r.Col(c)
	}
	return cells
}

// collectRows builds a grid shaped like excelize GetRows output: trailing
// blank cells and trailing blank rows are dropped.
func collectRows(src rowSource) Grid {
	g := make(Grid, src.rowCount())
	last := -1
	for i := range g {
		cells := src.row(i)
		end := len(cells)
		for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
			end--
		}
		g[i] = cells[:end]
		if end > 0 {
			last = i
		}
	}
	return g[:last+1]
}

func readCSV(data []byte) (*Workbook, error) {
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookRead, err)
	}
	return &Workbook{Sheet: "csv", Grid: Grid(rows)}, nil
}
