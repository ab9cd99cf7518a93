// Package util holds small formatting helpers shared by the commands.
package util

import (
	"fmt"
	"strconv"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with one decimal in the largest binary
// unit that keeps the value at or above 1, capped at TB:
//
//   - 0 -> "0.0 B"
//   - 1536 -> "1.5 KB"
//   - 1234567 -> "1.2 MB"
//
// Negative counts keep their sign.
func FormatSize(bytes int64) string {
	value := float64(bytes)
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	return fmt.Sprintf("%s%.1f %s", sign, value, sizeUnits[unit])
}

// Plural returns "1 document", "2 documents" and so on. Words taking an
// irregular plural are not supported.
func Plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
