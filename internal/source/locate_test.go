package source

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.log", "alpha\nbeta\ngamma\ndelta\nepsilon\n")

	tests := []struct {
		name        string
		text        string
		context     int
		wantLine    int
		wantContext []string
	}{
		{"middle", "gamma", 1, 3, []string{"beta", "gamma", "delta"}},
		{"first line", "alpha", 2, 1, []string{"alpha", "beta", "gamma"}},
		{"last line", "epsilon", 2, 5, []string{"gamma", "delta", "epsilon"}},
		{"no context", "delta", 0, 4, []string{"delta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := Locate(path, tt.text, tt.context)
			if err != nil {
				t.Fatal(err)
			}
			if loc.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", loc.Line, tt.wantLine)
			}
			if loc.Total != 5 {
				t.Errorf("Total = %d, want 5", loc.Total)
			}
			if !reflect.DeepEqual(loc.Context, tt.wantContext) {
				t.Errorf("Context = %q, want %q", loc.Context, tt.wantContext)
			}
		})
	}
}

func TestLocateNotFound(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.log", "alpha\nbeta\n")

	if _, err := Locate(path, "zeta", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLocateFirstOccurrence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.log", "dup\nother\ndup\n")

	loc, err := Locate(path, "dup", 0)
	if err != nil {
		t.Fatal(err)
	}
	if loc.Line != 1 {
		t.Errorf("Line = %d, want the first occurrence", loc.Line)
	}
}

func TestLocateCRLF(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.log", "alpha\r\nbeta\r\n")

	loc, err := Locate(path, "beta", 0)
	if err != nil {
		t.Fatal(err)
	}
	if loc.Line != 2 || loc.Total != 2 {
		t.Errorf("Line = %d Total = %d, want 2 and 2", loc.Line, loc.Total)
	}
}

func TestLocateCompressed(t *testing.T) {
	dir := t.TempDir()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	compressed := enc.EncodeAll([]byte("alpha\nbeta\ngamma\n"), nil)
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "app.log.zst")
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		t.Fatal(err)
	}

	loc, err := Locate(path, "beta", 1)
	if err != nil {
		t.Fatal(err)
	}
	if loc.Line != 2 || loc.Total != 3 {
		t.Errorf("Line = %d Total = %d, want 2 and 3", loc.Line, loc.Total)
	}
}
