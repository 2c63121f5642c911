// Package strutil holds small formatting helpers shared by renderers.
package strutil

import (
	"fmt"
	"strings"
)

// FormatOxfordList formats every item with format (a single-verb fmt
// pattern such as "'%s'") and joins them as an English list with a serial
// comma: "a", "a or b", "a, b, or c".
func FormatOxfordList[T any](conj, format string, items []T) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(format, items[0])
	case 2:
		return fmt.Sprintf(format, items[0]) + " " + conj + " " + fmt.Sprintf(format, items[1])
	}
	var b strings.Builder
	for _, item := range items[:len(items)-1] {
		b.WriteString(fmt.Sprintf(format, item))
		b.WriteString(", ")
	}
	b.WriteString(conj)
	b.WriteByte(' ')
	b.WriteString(fmt.Sprintf(format, items[len(items)-1]))
	return b.String()
}
