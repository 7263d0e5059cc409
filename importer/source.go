package importer

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// ErrSourceNotFound is returned when none of a dataset's candidates exist.
var ErrSourceNotFound = errors.New("no source file found")

// Candidate is one possible source file for a dataset.
type Candidate struct {
	File string
	// Year is the data vintage; zero means derive it from the file name.
	Year int
}

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// Vintage returns the candidate's data year, falling back to the first
// four-digit year in the file name. Zero means unknown.
func (c Candidate) Vintage() int {
	if c.Year != 0 {
		return c.Year
	}
	m := yearPattern.FindString(filepath.Base(c.File))
	if m == "" {
		return 0
	}
	y, _ := strconv.Atoi(m)
	return y
}

// LocateSource returns the first candidate that exists as a regular file.
// Callers order candidates newest vintage first.
func LocateSource(candidates []Candidate) (Candidate, error) {
	for _, c := range candidates {
		info, err := os.Stat(c.File)
		if err == nil && info.Mode().IsRegular() {
			return c, nil
		}
	}
	return Candidate{}, ErrSourceNotFound
}
