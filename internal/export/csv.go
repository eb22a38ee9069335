package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/loupeview/loupe/internal/logline"
)

type csvWriter struct {
	file *os.File
	w    *csv.Writer
}

func newCSVWriter(path string) (*csvWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"line", "time", "sort", "level", "logger", "message", "hash"}); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &csvWriter{file: f, w: w}, nil
}

func (w *csvWriter) Write(e logline.Entry) error {
	var level, logger, message string
	if e.Fields != nil {
		level, logger, message = e.Fields.Level, e.Fields.Logger, e.Fields.Message
	}
	if message == "" {
		message = e.Raw
	}
	return w.w.Write([]string{
		strconv.Itoa(e.Line),
		strconv.FormatInt(e.Time, 10),
		strconv.Itoa(e.SortIndex),
		level,
		logger,
		message,
		e.Hash,
	})
}

func (w *csvWriter) Close() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
