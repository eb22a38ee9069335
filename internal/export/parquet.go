package export

import (
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/loupeview/loupe/internal/logline"
)

const parquetBatchSize = 50000

// parquetEntry is the Parquet schema struct, the entry with its parsed
// fields flattened.
type parquetEntry struct {
	Source  string `parquet:"source"`
	Path    string `parquet:"path,optional"`
	Line    int32  `parquet:"line"`
	Time    int64  `parquet:"time,timestamp(millisecond)"`
	Sort    int32  `parquet:"sort"`
	Level   string `parquet:"level,optional"`
	Logger  string `parquet:"logger,optional"`
	Context string `parquet:"context,optional"`
	Message string `parquet:"message"`
	Raw     string `parquet:"raw"`
	Hash    string `parquet:"hash"`
	Stderr  bool   `parquet:"stderr"`
}

type parquetWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[parquetEntry]
	batch  []parquetEntry
}

func newParquetWriter(path string) (*parquetWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := parquet.NewGenericWriter[parquetEntry](f,
		parquet.Compression(&zstd.Codec{}),
	)

	return &parquetWriter{
		file:   f,
		writer: w,
		batch:  make([]parquetEntry, 0, parquetBatchSize),
	}, nil
}

func (w *parquetWriter) Write(e logline.Entry) error {
	row := parquetEntry{
		Source: e.Source,
		Path:   e.Path,
		Line:   int32(e.Line),
		Time:   e.Time,
		Sort:   int32(e.SortIndex),
		Raw:    e.Raw,
		Hash:   e.Hash,
		Stderr: e.Stderr,
	}
	if e.Fields != nil {
		row.Level = e.Fields.Level
		row.Logger = e.Fields.Logger
		row.Context = e.Fields.Context
		row.Message = e.Fields.Message
	}
	w.batch = append(w.batch, row)
	if len(w.batch) >= parquetBatchSize {
		return w.flush()
	}
	return nil
}

func (w *parquetWriter) flush() error {
	if len(w.batch) == 0 {
		return nil
	}
	_, err := w.writer.Write(w.batch)
	w.batch = w.batch[:0]
	return err
}

func (w *parquetWriter) Close() error {
	if err := w.flush(); err != nil {
		_ = w.writer.Close()
		_ = w.file.Close()
		return err
	}
	if err := w.writer.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
