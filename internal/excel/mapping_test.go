package excel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuessMapping(t *testing.T) {
	headers := []string{"대분류", "품 명", "규격", "비고(품번)", "제조사", "현재고", "단위", "적정재고", "위치", "비고"}

	m := GuessMapping(headers)

	assert.Equal(t, Mapping{
		FieldCategory:     "대분류",
		FieldName:         "품 명",
		FieldStandard:     "규격",
		FieldModel:        "비고(품번)",
		FieldManufacturer: "제조사",
		FieldCurrentStock: "현재고",
		FieldUnit:         "단위",
		FieldSafeStock:    "적정재고",
		FieldLocation:     "위치",
		FieldNote:         "비고",
	}, m)
}

func TestGuessMapping_FirstHeaderWins(t *testing.T) {
	m := GuessMapping([]string{"재고", "현재고"})

	assert.Equal(t, "재고", m[FieldCurrentStock])
}

func TestGuessMapping_IgnoresCase(t *testing.T) {
	m := GuessMapping([]string{"Model"})
	assert.Empty(t, m)

	m = GuessMapping([]string{"모 델"})
	assert.Equal(t, "모 델", m[FieldModel])
}

func TestGuessMapping_UnmatchedFieldsAbsent(t *testing.T) {
	m := GuessMapping([]string{"Foo", ""})

	assert.Empty(t, m)
}

func TestMapping_Apply(t *testing.T) {
	headers := []string{"A", "B"}
	base := Mapping{FieldName: "A"}

	got, err := base.Apply(headers, map[string]string{"currentStock": "B", "name": ""})
	require.NoError(t, err)
	assert.Equal(t, Mapping{FieldCurrentStock: "B"}, got)
	assert.Equal(t, "A", base[FieldName])

	_, err = base.Apply(headers, map[string]string{"color": "A"})
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = base.Apply(headers, map[string]string{"name": "Z"})
	assert.ErrorIs(t, err, ErrUnknownHeader)
}

func TestFieldLabelConfig_Check(t *testing.T) {
	cfg := DefaultFieldLabels()

	err := cfg.Check(Mapping{FieldName: "품명", FieldUnit: "단위"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMappingIncomplete))
	var mf *MissingFieldsError
	require.ErrorAs(t, err, &mf)
	assert.Equal(t, []string{"1. 대분류 (Category)", "6. 현재고 (수량)"}, mf.Labels)
	assert.Equal(t, "다음 필수 필드가 매핑되지 않았습니다: 1. 대분류 (Category), 6. 현재고 (수량)", err.Error())
}

func TestFieldLabelConfig_Merge(t *testing.T) {
	cfg := DefaultFieldLabels().Merge(FieldLabelConfig{Fields: []FieldDef{
		{Key: FieldCategory, Required: false},
		{Key: FieldLocation, Label: "창고", Required: true},
		{Key: "bogus", Label: "x"},
	}})

	assert.Equal(t, "창고", cfg.Label(FieldLocation))
	assert.Equal(t, "1. 대분류 (Category)", cfg.Label(FieldCategory))
	missing := cfg.Missing(Mapping{})
	keys := make([]Field, len(missing))
	for i, d := range missing {
		keys[i] = d.Key
	}
	assert.Equal(t, []Field{FieldName, FieldCurrentStock, FieldUnit, FieldLocation}, keys)
	assert.Len(t, cfg.Fields, len(Fields))
}
