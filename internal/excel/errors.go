package excel

import (
	"errors"
	"strings"
)

var (
	// ErrWorkbookRead is returned when an upload cannot be opened as a workbook
	ErrWorkbookRead = errors.New("workbook could not be read")

	// ErrUnsupportedFormat is returned for files that are neither xlsx, xls nor csv
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

	// ErrHeaderNotFound is returned when no header row can be located
	ErrHeaderNotFound = errors.New("header row not found")

	// ErrRequiredColumnMissing is returned when a structural column cannot be resolved
	ErrRequiredColumnMissing = errors.New("required column missing")

	// ErrMappingIncomplete is matched by every *MissingFieldsError
	ErrMappingIncomplete = errors.New("required fields are not mapped")

	// ErrUnknownField is returned when a mapping names a field that does not exist
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownHeader is returned when a mapping points at a column the sheet does not have
	ErrUnknownHeader = errors.New("unknown column header")
)

// MissingFieldsError lists the labels of required fields left unmapped.
type MissingFieldsError struct {
	Labels []string
}

func (e *MissingFieldsError) Error() string {
	return "다음 필수 필드가 매핑되지 않았습니다: " + strings.Join(e.Labels, ", ")
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMappingIncomplete
}
