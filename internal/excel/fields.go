package excel

// Field is a canonical inventory column an upload can be mapped onto.
type Field string

const (
	FieldCategory     Field = "category"
	FieldName         Field = "name"
	FieldStandard     Field = "standard"
	FieldModel        Field = "model"
	FieldManufacturer Field = "manufacturer"
	FieldCurrentStock Field = "currentStock"
	FieldUnit         Field = "unit"
	FieldSafeStock    Field = "safeStock"
	FieldLocation     Field = "location"
	FieldNote         Field = "note"
)

// Fields lists every canonical field in display order.
var Fields = []Field{
	FieldCategory, FieldName, FieldStandard, FieldModel, FieldManufacturer,
	FieldCurrentStock, FieldUnit, FieldSafeStock, FieldLocation, FieldNote,
}

// Valid reports whether f is a canonical field.
func (f Field) Valid() bool {
	for _, k := range Fields {
		if k == f {
			return true
		}
	}
	return false
}

// FieldDef is the display label and required flag of one field.
type FieldDef struct {
	Key      Field  `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	Required bool   `json:"required" yaml:"required"`
}

// FieldLabelConfig holds the field definitions used by the import flow.
// It is loaded once at start-up and passed to whoever needs it.
type FieldLabelConfig struct {
	Fields []FieldDef `json:"fields" yaml:"fields"`
}

// DefaultFieldLabels returns the stock field definitions.
func DefaultFieldLabels() FieldLabelConfig {
	return FieldLabelConfig{Fields: []FieldDef{
		{Key: FieldCategory, Label: "1. 대분류 (Category)", Required: true},
		{Key: FieldName, Label: "2. 품목명", Required: true},
		{Key: FieldStandard, Label: "3. 규격"},
		{Key: FieldModel, Label: "4. 품번 (비고)"},
		{Key: FieldManufacturer, Label: "5. 제조사"},
		{Key: FieldCurrentStock, Label: "6. 현재고 (수량)", Required: true},
		{Key: FieldUnit, Label: "7. 단위", Required: true},
		{Key: FieldSafeStock, Label: "적정재고"},
		{Key: FieldLocation, Label: "보관장소"},
		{Key: FieldNote, Label: "기타사항"},
	}}
}

// Label returns the configured label of f, falling back to its key.
func (c FieldLabelConfig) Label(f Field) string {
	for _, d := range c.Fields {
		if d.Key == f && d.Label != "" {
			return d.Label
		}
	}
	return string(f)
}

// Missing returns the required fields that m leaves unmapped, in config order.
func (c FieldLabelConfig) Missing(m Mapping) []FieldDef {
	var out []FieldDef
	for _, d := range c.Fields {
		if d.Required && m[d.Key] == "" {
			out = append(out, d)
		}
	}
	return out
}

// Check returns a *MissingFieldsError when a required field is unmapped.
func (c FieldLabelConfig) Check(m Mapping) error {
	missing := c.Missing(m)
	if len(missing) == 0 {
		return nil
	}
	labels := make([]string, len(missing))
	for i, d := range missing {
		labels[i] = d.Label
	}
	return &MissingFieldsError{Labels: labels}
}

// Merge overlays the definitions in o onto c by key. Keys c does not know are ignored.
func (c FieldLabelConfig) Merge(o FieldLabelConfig) FieldLabelConfig {
	out := FieldLabelConfig{Fields: make([]FieldDef, len(c.Fields))}
	copy(out.Fields, c.Fields)
	for _, d := range o.Fields {
		for i := range out.Fields {
			if out.Fields[i].Key == d.Key {
				if d.Label != "" {
					out.Fields[i].Label = d.Label
				}
				out.Fields[i].Required = d.Required
			}
		}
	}
	return out
}
