package ingest

import (
	"errors"
	"reflect"
	"testing"

	"evidec/domain/core"
	"evidec/domain/stats"
)

func TestParseColumn(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  []float64
	}{
		{
			name:  "numeric with blanks",
			cells: []string{"1.5", "", "  ", "2.25", "-0.5"},
			want:  []float64{1.5, 2.25, -0.5},
		},
		{
			name:  "boolean spellings",
			cells: []string{"true", "FALSE", "Yes", "no", "Y", "n"},
			want:  []float64{1, 0, 1, 0, 1, 0},
		},
		{
			name:  "mixed booleans and numbers",
			cells: []string{"1", "true", "0", "no"},
			want:  []float64{1, 1, 0, 0},
		},
		{
			name:  "padded cells",
			cells: []string{" 3.0 ", "\t4.5"},
			want:  []float64{3.0, 4.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColumn(tt.cells)
			if err != nil {
				t.Fatalf("ParseColumn: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseColumn = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseColumnRejectsNonNumeric(t *testing.T) {
	_, err := ParseColumn([]string{"1.0", "banana", "2.0"})
	if err == nil {
		t.Fatal("expected error for non-numeric cell")
	}
	if !core.IsInvalidInput(err) {
		t.Errorf("err = %v, want invalid input", err)
	}
}

func TestParseColumnAllBlank(t *testing.T) {
	_, err := ParseColumn([]string{"", "   ", "\t"})
	if !errors.Is(err, core.ErrEmptyAfterClean) {
		t.Errorf("err = %v, want ErrEmptyAfterClean", err)
	}
}

func TestParseCountsColumn(t *testing.T) {
	counts, err := ParseCountsColumn([]string{"1", "0", "true", "no", "", "1"})
	if err != nil {
		t.Fatalf("ParseCountsColumn: %v", err)
	}
	want := stats.Counts{Success: 3, Total: 5}
	if counts != want {
		t.Errorf("counts = %+v, want %+v", counts, want)
	}
}

func TestParseCountsColumnRejectsNonBinary(t *testing.T) {
	_, err := ParseCountsColumn([]string{"1", "0", "2"})
	if !errors.Is(err, core.ErrNonBinaryData) {
		t.Errorf("err = %v, want ErrNonBinaryData", err)
	}
}
