package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ChunkReader reads a CSV source a bounded number of records at a time.
type ChunkReader struct {
	r       *csv.Reader
	headers []string
	// Malformed counts records skipped because they could not be parsed.
	Malformed int
}

// NewChunkReader consumes the header row of r. A leading UTF-8 or UTF-16
// byte order mark is removed before parsing, so a quoted first header is
// still recognised.
func NewChunkReader(r io.Reader) (*ChunkReader, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading headers: %w", err)
	}
	return &ChunkReader{r: reader, headers: headers}, nil
}

func (c *ChunkReader) Headers() []string {
	return c.headers
}

// Next returns up to n records, or every remaining record when n <= 0. It
// returns io.EOF once the source is exhausted and no records were read.
func (c *ChunkReader) Next(n int) ([][]string, error) {
	var records [][]string
	for n <= 0 || len(records) < n {
		record, err := c.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				c.Malformed++
				continue
			}
			return records, fmt.Errorf("error reading record: %w", err)
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, io.EOF
	}
	return records, nil
}
