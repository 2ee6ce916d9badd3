package core

import "fmt"

// FormatP formats a p-value for display. Tiny values collapse to a floor
// string so rendered reasons stay readable.
func FormatP(p *float64) string {
	if p == nil {
		return "n/a"
	}
	if *p < 0.0001 {
		return "<0.0001"
	}
	return fmt.Sprintf("%.4f", *p)
}

// FormatNumeric renders an effect or threshold either as a signed percent
// (ratio metrics) or a signed decimal.
func FormatNumeric(value float64, asPercent bool) string {
	if asPercent {
		return fmt.Sprintf("%+.1f%%", value*100)
	}
	return fmt.Sprintf("%+.3f", value)
}

// FormatCI renders a two-sided interval.
func FormatCI(low, high float64, asPercent bool) string {
	return fmt.Sprintf("[%s, %s]", FormatNumeric(low, asPercent), FormatNumeric(high, asPercent))
}
