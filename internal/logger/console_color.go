package logger

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	labelColor = color.New(color.FgCyan)
	valueColor = color.New(color.FgWhite)
)

// formatMetric formats a single "label: value" metric, coloring the label
// cyan when enabled.
func formatMetric(label string, value interface{}, enableColor bool) string {
	if !enableColor {
		return fmt.Sprintf("%s: %v", label, value)
	}
	return fmt.Sprintf("%s: %s", labelColor.Sprint(label), valueColor.Sprintf("%v", value))
}
