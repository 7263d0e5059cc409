package importer

// IDSet holds institution identifiers.
type IDSet map[int64]struct{}

// Reasons a row is dropped before loading.
const (
	ReasonMissingKey      = "missing key"
	ReasonUnknownKey      = "key not in institutions"
	ReasonDuplicateKey    = "duplicate key"
	ReasonMissingRequired = "missing required value"
)

// Rejection is a row removed before loading, with the reason it was removed.
type Rejection struct {
	Row    []any
	Reason string
}

func keyValue(v any) (int64, bool) {
	switch k := v.(type) {
	case int64:
		return k, true
	case float64:
		n, ok := ParseNumber(formatValue(k), Integer)
		if !ok {
			return 0, false
		}
		return n.(int64), true
	case string:
		n, ok := ParseNumber(k, Integer)
		if !ok {
			return 0, false
		}
		return n.(int64), true
	default:
		return 0, false
	}
}

// FilterReferences keeps the rows whose key column holds an identifier in
// valid. Rows with a null key, or a frame without the key column, are
// rejected outright.
func FilterReferences(f *Frame, key string, valid IDSet) (*Frame, []Rejection) {
	idx := f.Index(key)
	return f.filter(func(row []any) string {
		if idx == -1 {
			return ReasonMissingKey
		}
		id, ok := keyValue(row[idx])
		if !ok {
			return ReasonMissingKey
		}
		if _, ok := valid[id]; !ok {
			return ReasonUnknownKey
		}
		return ""
	})
}

// DedupeKeys drops rows whose key is null or already in seen, and records the
// keys it keeps in seen so later chunks see them too.
func DedupeKeys(f *Frame, key string, seen IDSet) (*Frame, []Rejection) {
	idx := f.Index(key)
	return f.filter(func(row []any) string {
		if idx == -1 {
			return ReasonMissingKey
		}
		id, ok := keyValue(row[idx])
		if !ok {
			return ReasonMissingKey
		}
		if _, dup := seen[id]; dup {
			return ReasonDuplicateKey
		}
		seen[id] = struct{}{}
		return ""
	})
}

// DropIncomplete removes rows with a null value in any of the required columns.
func DropIncomplete(f *Frame, required []string) (*Frame, []Rejection) {
	var indexes []int
	for _, col := range required {
		if idx := f.Index(col); idx != -1 {
			indexes = append(indexes, idx)
		}
	}
	if len(indexes) == 0 {
		return f, nil
	}
	return f.filter(func(row []any) string {
		for _, idx := range indexes {
			if row[idx] == nil {
				return ReasonMissingRequired
			}
		}
		return ""
	})
}
