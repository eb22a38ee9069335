package export

import (
	"fmt"
	"strings"

	"github.com/loupeview/loupe/internal/logline"
)

// Format identifies the output format.
type Format string

const (
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
	FormatJSONL   Format = "jsonl"
)

// Progress reports progress during export.
type Progress struct {
	Written int64
	Total   int64
}

// Writer writes normalized entries to an output format.
type Writer interface {
	Write(logline.Entry) error
	Close() error
}

// NewWriter creates a format writer for path.
func NewWriter(path string, format Format) (Writer, error) {
	switch format {
	case FormatParquet:
		return newParquetWriter(path)
	case FormatCSV:
		return newCSVWriter(path)
	case FormatJSONL:
		return newJSONLWriter(path)
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

// DetectFormat infers the format from a destination filename. JSONL may
// carry a .zst or .gz suffix over its own extension, e.g. app.jsonl.zst.
func DetectFormat(path string) (Format, bool) {
	inner := strings.TrimSuffix(strings.TrimSuffix(path, ".zst"), ".gz")
	switch {
	case strings.HasSuffix(path, ".parquet"):
		return FormatParquet, true
	case strings.HasSuffix(path, ".csv"):
		return FormatCSV, true
	case strings.HasSuffix(inner, ".jsonl"), strings.HasSuffix(inner, ".ndjson"):
		return FormatJSONL, true
	}
	return "", false
}

// Export writes a batch to dst in the given format, reporting progress
// every 10000 entries and once at the end.
func Export(entries []logline.Entry, dst string, format Format, progress func(Progress)) error {
	writer, err := NewWriter(dst, format)
	if err != nil {
		return fmt.Errorf("create writer: %w", err)
	}

	total := int64(len(entries))
	var written int64
	for _, e := range entries {
		if werr := writer.Write(e); werr != nil {
			_ = writer.Close()
			return fmt.Errorf("write entry: %w", werr)
		}
		written++
		if progress != nil && written%10000 == 0 {
			progress(Progress{Written: written, Total: total})
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}

	if progress != nil {
		progress(Progress{Written: written, Total: total})
	}
	return nil
}
