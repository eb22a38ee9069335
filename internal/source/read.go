package source

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// TailCap bounds how much of a large file an initial read returns.
const TailCap = 2 << 20

// Content is the outcome of one read of a source.
type Content struct {
	Text      string
	Size      int64
	PrevSize  int64
	ModTime   time.Time
	Truncated bool
}

// Read performs a differential read of a log source. Offset is the size
// observed by the previous read: zero means an initial read, capped to the
// trailing TailCap bytes of large files; an unchanged size yields empty
// content; a shrunken size means the file was replaced and is reread from
// the start; otherwise only the bytes past offset are returned. "-" reads
// stdin. Compressed sources (.zst, .gz) are always whole-stream reads.
func Read(path string, offset int64) (*Content, error) {
	if path == "-" {
		return readStream(os.Stdin)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if isCompressed(path) {
		return readCompressed(path, info)
	}
	return readPlain(path, info, offset)
}

func readPlain(path string, info os.FileInfo, offset int64) (*Content, error) {
	size := info.Size()
	c := &Content{Size: size, PrevSize: offset, ModTime: info.ModTime()}

	switch {
	case offset > 0 && size == offset:
		return c, nil
	case offset > 0 && size < offset:
		// shrunk, treat as replaced
		c.Truncated = true
		offset = 0
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	start := offset
	capped := false
	if offset == 0 && size > TailCap {
		start = size - TailCap
		capped = true
		c.Truncated = true
	}
	if start > 0 {
		if _, err := f.Seek(start, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek %s: %w", path, err)
		}
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	text := string(data)
	if capped {
		text = skipPartialLine(text)
	}
	c.Text = text
	return c, nil
}

func readCompressed(path string, info os.FileInfo) (*Content, error) {
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

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}

	c := &Content{Size: info.Size(), ModTime: info.ModTime()}
	text := string(data)
	if len(text) > TailCap {
		text = skipPartialLine(text[len(text)-TailCap:])
		c.Truncated = true
	}
	c.Text = text
	return c, nil
}

func readStream(r io.Reader) (*Content, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	c := &Content{Size: int64(len(data))}
	text := string(data)
	if len(text) > TailCap {
		text = skipPartialLine(text[len(text)-TailCap:])
		c.Truncated = true
	}
	c.Text = text
	return c, nil
}

// newDecoder wraps f for transparent decompression based on extension.
func newDecoder(f *os.File, path string) (io.Reader, func(), error) {
	switch {
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd open: %w", err)
		}
		return dec, dec.Close, nil
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip open: %w", err)
		}
		return gz, func() { _ = gz.Close() }, nil
	}
	return f, func() {}, nil
}

func isCompressed(path string) bool {
	return strings.HasSuffix(path, ".zst") || strings.HasSuffix(path, ".gz")
}

// skipPartialLine drops the partial first line a mid-file read starts on.
func skipPartialLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
