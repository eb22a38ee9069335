package source

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// ErrNotFound reports that a line does not occur in the file.
var ErrNotFound = errors.New("line not found")

// Location is the position of a matched line within its file.
type Location struct {
	Line    int      `json:"line"`
	Total   int      `json:"total"`
	Context []string `json:"context,omitempty"`
}

// Locate finds the first occurrence of text as a complete line and
// returns its 1-based position, the file's total line count, and up to
// context surrounding lines on each side. Compressed sources are searched
// through the same decompression path as Read.
func Locate(path, text string, context int) (*Location, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r, closeDec, err := newDecoder(f, path)
	if err != nil {
		return nil, err
	}
	defer closeDec()
	return locate(r, text, context)
}

func locate(r io.Reader, text string, context int) (*Location, error) {
	if context < 0 {
		context = 0
	}
	target := strings.TrimSuffix(text, "\r")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 256*1024), 1024*1024)

	var (
		loc    *Location
		before []string
		after  int
		total  int
	)
	for scanner.Scan() {
		total++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		switch {
		case loc == nil && line == target:
			loc = &Location{Line: total}
			loc.Context = append(loc.Context, before...)
			loc.Context = append(loc.Context, line)
			after = context
		case loc == nil && context > 0:
			before = append(before, line)
			if len(before) > context {
				before = before[1:]
			}
		case loc != nil && after > 0:
			loc.Context = append(loc.Context, line)
			after--
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, ErrNotFound
	}
	loc.Total = total
	return loc, nil
}
