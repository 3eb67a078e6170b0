package excel

import "strings"

// summaryMarkers flag repeated header rows and subtotal lines inside a sheet body.
var summaryMarkers = []string{"품목", "합계", "소계"}

// SplitNameSpec splits a combined "name(spec)" cell. The spec is the text
// between the first "(" and the last ")" and is only recognised when that
// ")" ends the string; otherwise the whole cell is the name.
//
//	SplitNameSpec("MCCB(630A 4P)")      // "MCCB", "630A 4P"
//	SplitNameSpec("램프(LED)(백색) 예비") // "램프(LED)(백색) 예비", ""
func SplitNameSpec(s string) (name, standard string) {
	s = strings.TrimSpace(s)
	open := strings.Index(s, "(")
	end := strings.LastIndex(s, ")")
	if open > -1 && end == len(s)-1 && end > open {
		return strings.TrimSpace(s[:open]), strings.TrimSpace(s[open+1 : end])
	}
	return s, ""
}

// SkipNameSpec reports whether a name(spec) cell is blank or a header/subtotal line.
func SkipNameSpec(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	for _, m := range summaryMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
