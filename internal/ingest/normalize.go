package ingest

import "strings"

var nameStripper = strings.NewReplacer(
	" ", "",
	"\r\n", "",
	"\n", "",
	"\r", "",
	"\t", "",
)

// NormalizeName collapses a sheet or column name for comparison: surrounding
// whitespace, newlines, tabs and inner spaces are all removed. Idempotent;
// blank input yields "".
func NormalizeName(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	return strings.TrimSpace(nameStripper.Replace(name))
}
