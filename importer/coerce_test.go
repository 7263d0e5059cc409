package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		kind ColumnKind
		want any
		ok   bool
	}{
		{"100654", Integer, int64(100654), true},
		{" 42 ", Integer, int64(42), true},
		{"3.0", Integer, int64(3), true},
		{"-7", Integer, int64(-7), true},
		{"3.5", Integer, nil, false},
		{"1e30", Integer, nil, false},
		{"12500.50", Real, 12500.5, true},
		{"7", Real, 7.0, true},
		{"N/A", Integer, nil, false},
		{"N/A", Real, nil, false},
		{"", Real, nil, false},
		{"PrivacySuppressed", Real, nil, false},
		{"NaN", Real, nil, false},
		{"Inf", Real, nil, false},
		{"1,234", Integer, nil, false},
		{"0", Integer, int64(0), true},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.in, tt.kind)
		assert.Equal(t, tt.ok, ok, "ParseNumber(%q, %s)", tt.in, tt.kind)
		assert.Equal(t, tt.want, got, "ParseNumber(%q, %s)", tt.in, tt.kind)
	}
}

func TestCoerce_InvalidBecomesNullNeverZero(t *testing.T) {
	f := &Frame{
		Columns: []string{"unitid", "cipcode", "completions", "fees"},
		Rows: [][]any{
			{"100654", "01.0000", "N/A", "1200.5"},
			{"100663", "11.0701", "15", "abc"},
			{"x", nil, nil, "5"},
		},
	}

	counts := Coerce(f, map[string]ColumnKind{
		"unitid":      Integer,
		"completions": Integer,
		"fees":        Real,
		"missing":     Real,
	})

	assert.Equal(t, []any{int64(100654), "01.0000", nil, 1200.5}, f.Rows[0])
	assert.Equal(t, []any{int64(100663), "11.0701", int64(15), nil}, f.Rows[1])
	assert.Equal(t, []any{nil, nil, nil, 5.0}, f.Rows[2])
	assert.Equal(t, map[string]int{"unitid": 1, "completions": 1, "fees": 1}, counts.Invalid)
	assert.Empty(t, counts.NonIntegral)
}

func TestCoerce_FractionalIntegersCountedSeparately(t *testing.T) {
	f := &Frame{
		Columns: []string{"completions"},
		Rows:    [][]any{{"1.5"}, {"3.0"}, {"1e30"}, {"N/A"}},
	}

	counts := Coerce(f, map[string]ColumnKind{"completions": Integer})

	assert.Equal(t, [][]any{{nil}, {int64(3)}, {nil}, {nil}}, f.Rows)
	assert.Equal(t, map[string]int{"completions": 2}, counts.NonIntegral)
	assert.Equal(t, map[string]int{"completions": 1}, counts.Invalid)
}

func TestCoerce_TextColumnsPassThrough(t *testing.T) {
	f := &Frame{Columns: []string{"opeid", "name"}, Rows: [][]any{{"00100200", "Alabama A & M University"}}}

	counts := Coerce(f, map[string]ColumnKind{"opeid": Text})

	assert.Empty(t, counts.Invalid)
	assert.Empty(t, counts.NonIntegral)
	assert.Equal(t, []any{"00100200", "Alabama A & M University"}, f.Rows[0])
}

func TestCoerce_RealWidensIntegers(t *testing.T) {
	f := &Frame{Columns: []string{"median_debt"}, Rows: [][]any{{int64(3)}}}
	Coerce(f, map[string]ColumnKind{"median_debt": Real})
	assert.Equal(t, 3.0, f.Rows[0][0])
}
