package importer

import "strings"

// ColumnMapping maps every recognised spelling of a source header onto one
// destination column. The first candidate found in the header row wins.
type ColumnMapping struct {
	SourceColumns     []string
	DestinationColumn string
}

// Map is shorthand for a mapping with one or more source spellings.
func Map(destination string, sources ...string) ColumnMapping {
	return ColumnMapping{SourceColumns: sources, DestinationColumn: destination}
}

// BOM-prefixed spellings of the first header. "ï»¿" is the UTF-8 byte order
// mark decoded as Latin-1.
const (
	byteOrderMark = "\ufeff"
	bomMojibake   = "ï»¿"
)

// WithBOM returns header together with its byte-order-mark variants.
func WithBOM(header string) []string {
	return []string{byteOrderMark + header, bomMojibake + header, header}
}

// Projection is a mapping table resolved against a concrete header row.
type Projection struct {
	Columns []string
	indexes []int
}

// Reconcile resolves mappings against headers. Destination columns appear in
// mapping order, and only when one of their source headers is present.
func Reconcile(headers []string, mappings []ColumnMapping) Projection {
	positions := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if _, dup := positions[h]; !dup {
			positions[h] = i
		}
	}

	var p Projection
	for _, m := range mappings {
		for _, src := range m.SourceColumns {
			if idx, ok := positions[src]; ok {
				p.Columns = append(p.Columns, m.DestinationColumn)
				p.indexes = append(p.indexes, idx)
				break
			}
		}
	}
	return p
}

// Has reports whether column survived reconciliation.
func (p Projection) Has(column string) bool {
	for _, c := range p.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Apply projects raw CSV records into a frame. Blank cells and cells past the
// end of a short record become nil.
func (p Projection) Apply(records [][]string) *Frame {
	f := &Frame{
		Columns: append([]string(nil), p.Columns...),
		Rows:    make([][]any, 0, len(records)),
	}
	for _, rec := range records {
		row := make([]any, len(p.indexes))
		for i, idx := range p.indexes {
			if idx < len(rec) && strings.TrimSpace(rec[idx]) != "" {
				row[i] = rec[idx]
			}
		}
		f.Rows = append(f.Rows, row)
	}
	return f
}
