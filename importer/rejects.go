package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// rejectWriter appends dropped rows to <dir>/<dataset>_rejects_<timestamp>.csv.
// The file is only created once there is something to write; with an empty
// dir every call is a no-op.
type rejectWriter struct {
	dir    string
	name   string
	path   string
	file   *os.File
	writer *csv.Writer
}

func newRejectWriter(dir, dataset string, now time.Time) *rejectWriter {
	w := &rejectWriter{dir: dir}
	if dir != "" {
		w.name = fmt.Sprintf("%s_rejects_%s.csv", dataset, now.Format("20060102_150405"))
	}
	return w
}

func (w *rejectWriter) Write(columns []string, rejected []Rejection) error {
	if w.dir == "" || len(rejected) == 0 {
		return nil
	}
	if w.writer == nil {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return fmt.Errorf("error creating rejects directory: %w", err)
		}
		path := filepath.Join(w.dir, w.name)
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("error creating rejects file: %w", err)
		}
		w.file, w.path = file, path
		w.writer = csv.NewWriter(file)
		header := append(append([]string(nil), columns...), "reason")
		if err := w.writer.Write(header); err != nil {
			return fmt.Errorf("error writing rejects header: %w", err)
		}
	}

	for _, r := range rejected {
		record := make([]string, 0, len(r.Row)+1)
		for _, v := range r.Row {
			record = append(record, formatValue(v))
		}
		record = append(record, r.Reason)
		if err := w.writer.Write(record); err != nil {
			return fmt.Errorf("error writing rejected row: %w", err)
		}
	}
	w.writer.Flush()
	return w.writer.Error()
}

// Path returns the rejects file, or "" if nothing was written.
func (w *rejectWriter) Path() string {
	return w.path
}

func (w *rejectWriter) Close() error {
	if w.file == nil {
		return nil
	}
	w.writer.Flush()
	return w.file.Close()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
