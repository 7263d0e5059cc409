package importer

// Frame is a block of rows sharing one column list. Cells hold nil (null),
// string, int64 or float64.
type Frame struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// Index returns the position of column, or -1.
func (f *Frame) Index(column string) int {
	for i, c := range f.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// SetConstant fills column with v on every row, appending the column when
// the frame does not already carry it.
func (f *Frame) SetConstant(column string, v any) {
	idx := f.Index(column)
	if idx == -1 {
		f.Columns = append(f.Columns, column)
		for i := range f.Rows {
			f.Rows[i] = append(f.Rows[i], v)
		}
		return
	}
	for i := range f.Rows {
		f.Rows[i][idx] = v
	}
}

// filter returns a frame holding the rows for which keep returns an empty
// reason; the rest are returned as rejections.
func (f *Frame) filter(keep func(row []any) string) (*Frame, []Rejection) {
	out := &Frame{Columns: f.Columns, Rows: make([][]any, 0, len(f.Rows))}
	var rejected []Rejection
	for _, row := range f.Rows {
		if reason := keep(row); reason != "" {
			rejected = append(rejected, Rejection{Row: row, Reason: reason})
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out, rejected
}
