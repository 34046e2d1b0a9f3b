package utils

import "strings"

// TrimCell strips leading/trailing whitespace from a cell value.
// Inner whitespace is left alone: extraction validates whole trimmed
// tokens, and row matching compares trimmed cell text verbatim.
func TrimCell(s string) string {
	return strings.TrimSpace(s)
}

// CopyRow returns an independent copy of a row so results never alias
// the loaded table.
func CopyRow(row []string) []string {
	return append([]string(nil), row...)
}

// TitleKey upper-cases the first letter of a key name for display
// ("ip" -> "Ip"), matching the output column naming convention.
func TitleKey(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
