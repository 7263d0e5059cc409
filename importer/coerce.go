package importer

import (
	"math"
	"strconv"
	"strings"
)

// ColumnKind is the storage type a column is coerced to.
type ColumnKind int

const (
	Text ColumnKind = iota
	Integer
	Real
)

func (k ColumnKind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Real:
		return "real"
	default:
		return "text"
	}
}

// ParseNumber converts s to an int64 (Integer) or float64 (Real). The second
// result is false when s is not a finite number of that kind; Integer also
// rejects values with a fractional part or outside the int64 range.
func ParseNumber(s string, kind ColumnKind) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	if kind == Integer {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}

	if kind == Integer {
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, false
		}
		return int64(f), true
	}
	return f, true
}

// CellCounts records, per column, the cells Coerce stored as null.
type CellCounts struct {
	// Invalid cells did not hold a number.
	Invalid map[string]int
	// NonIntegral cells held a finite number that an integer column cannot
	// store: one with a fractional part or beyond the int64 range.
	NonIntegral map[string]int
}

// Coerce converts the declared numeric columns of f in place. Cells that do
// not parse become nil and are counted; columns absent from f are ignored.
func Coerce(f *Frame, kinds map[string]ColumnKind) CellCounts {
	counts := CellCounts{Invalid: make(map[string]int), NonIntegral: make(map[string]int)}
	for col, kind := range kinds {
		if kind == Text {
			continue
		}
		idx := f.Index(col)
		if idx == -1 {
			continue
		}
		for _, row := range f.Rows {
			switch v := row[idx].(type) {
			case nil, int64, float64:
				if kind == Real {
					if n, ok := v.(int64); ok {
						row[idx] = float64(n)
					}
				}
			case string:
				n, ok := ParseNumber(v, kind)
				if !ok {
					if _, numeric := ParseNumber(v, Real); kind == Integer && numeric {
						counts.NonIntegral[col]++
					} else {
						counts.Invalid[col]++
					}
				}
				row[idx] = n
			default:
				counts.Invalid[col]++
				row[idx] = nil
			}
		}
	}
	return counts
}
