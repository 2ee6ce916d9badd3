// Package ingest normalizes heterogeneous raw cell values into the float
// slices the inference engine consumes. It carries no decision logic.
package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"evidec/domain/core"
	"evidec/domain/stats"
)

// ParseColumn converts raw cell strings into observations. Blank cells
// are skipped (missing data), boolean spellings map to 0/1, anything else
// must parse as a float.
func ParseColumn(cells []string) ([]float64, error) {
	out := make([]float64, 0, len(cells))
	for i, cell := range cells {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			continue
		}
		if v, ok := parseBoolean(trimmed); ok {
			out = append(out, v)
			continue
		}
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d (%q) is not numeric", core.ErrInvalidInput, i+1, cell)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, core.ErrEmptyAfterClean
	}
	return stats.CleanSamples(out), nil
}

// ParseCountsColumn aggregates a raw 0/1 column straight into counts.
func ParseCountsColumn(cells []string) (stats.Counts, error) {
	samples, err := ParseColumn(cells)
	if err != nil {
		return stats.Counts{}, err
	}
	return stats.CountBinary(samples)
}

func parseBoolean(s string) (float64, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "y":
		return 1, true
	case "false", "no", "n":
		return 0, true
	}
	return 0, false
}
