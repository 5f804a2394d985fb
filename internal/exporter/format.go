package exporter

import (
	"fmt"
	"strconv"
)

// formatFloat formats a float64 value for export with exactly 2 decimal
// places, so values like 13.4 appear as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatRatio keeps 4 decimal places; ratios live in [0,1] and 2 places
// flatten small platform differences.
func formatRatio(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
