package excel

import (
	"fmt"
	"strings"
)

// Mapping assigns a sheet header to each mapped field.
type Mapping map[Field]string

// Clone returns an independent copy.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var fieldKeywords = []struct {
	field    Field
	keywords []string
}{
	{FieldCategory, []string{"대분류"}},
	{FieldName, []string{"품목명", "품명", "품목(규격)", "품목"}},
	{FieldStandard, []string{"규격", "사양"}},
	{FieldModel, []string{"품번", "모델", "비고(품번)"}},
	{FieldManufacturer, []string{"제조사", "브랜드"}},
	{FieldCurrentStock, []string{"재고", "현재고", "잔량"}},
	{FieldUnit, []string{"단위", "관리단위"}},
	{FieldSafeStock, []string{"적정재고", "안전재고"}},
	{FieldLocation, []string{"보관장소", "위치"}},
	{FieldNote, []string{"비고", "기타사항"}},
}

// GuessMapping proposes a header for each field: the first header, in sheet
// order, equal to one of the field's keywords ignoring case and whitespace.
// Fields with no match are left out.
func GuessMapping(headers []string) Mapping {
	m := make(Mapping)
	for _, fk := range fieldKeywords {
		for _, h := range headers {
			if matchesKeyword(h, fk.keywords) {
				m[fk.field] = h
				break
			}
		}
	}
	return m
}

func matchesKeyword(header string, keywords []string) bool {
	h := stripSpace(header)
	if h == "" {
		return false
	}
	for _, k := range keywords {
		if strings.EqualFold(h, stripSpace(k)) {
			return true
		}
	}
	return false
}

// Apply overlays overrides onto m. An empty header unmaps the field.
// Every field must be canonical and every header must be one of headers.
func (m Mapping) Apply(headers []string, overrides map[string]string) (Mapping, error) {
	known := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		known[h] = struct{}{}
	}
	out := m.Clone()
	for k, h := range overrides {
		f := Field(k)
		if !f.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, k)
		}
		if h == "" {
			delete(out, f)
			continue
		}
		if _, ok := known[h]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownHeader, h)
		}
		out[f] = h
	}
	return out, nil
}
