package export

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/loupeview/loupe/internal/logline"
)

// jsonlWriter streams one JSON object per line. A .zst or .gz
// destination compresses the stream with the matching codec, so an
// export can be opened again like any compressed source.
type jsonlWriter struct {
	file *os.File
	comp io.WriteCloser
	buf  *bufio.Writer
	enc  *json.Encoder
}

func newJSONLWriter(path string) (*jsonlWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := &jsonlWriter{file: f}
	var sink io.Writer = f
	switch {
	case strings.HasSuffix(path, ".zst"):
		zw, err := zstd.NewWriter(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		w.comp = zw
		sink = zw
	case strings.HasSuffix(path, ".gz"):
		gw := gzip.NewWriter(f)
		w.comp = gw
		sink = gw
	}

	w.buf = bufio.NewWriter(sink)
	w.enc = json.NewEncoder(w.buf)
	w.enc.SetEscapeHTML(false)
	return w, nil
}

func (w *jsonlWriter) Write(e logline.Entry) error {
	return w.enc.Encode(e)
}

func (w *jsonlWriter) Close() error {
	// Close in reverse order: buffer → codec → file.
	err := w.buf.Flush()
	if w.comp != nil {
		if cerr := w.comp.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if cerr := w.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
