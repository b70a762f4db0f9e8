package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/microclean/internal/table"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadBasic(t *testing.T) {
	path := writeFile(t, "data.csv", []byte("a,b\n1,2\n3,\n"))
	res, err := Load(path, ',')
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tbl := res.Table
	if res.Latin1Fallback {
		t.Fatalf("unexpected latin-1 fallback for valid UTF-8")
	}
	if tbl.NumRows() != 2 || tbl.NumCols() != 2 {
		t.Fatalf("shape = %dx%d, want 2x2", tbl.NumRows(), tbl.NumCols())
	}
	if tbl.Columns[0] != "a" || tbl.Columns[1] != "b" {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	if tbl.Rows[0][0].Kind != table.KindInt {
		t.Fatalf("cell (0,0) kind = %s, want int", tbl.Rows[0][0].Kind)
	}
	if !tbl.Rows[1][1].IsNull() {
		t.Fatalf("cell (1,1) should be null")
	}
}

func TestLoadLatin1Fallback(t *testing.T) {
	// "café" in ISO 8859-1: 0xE9 is not valid UTF-8.
	path := writeFile(t, "latin.csv", []byte("city\ncaf\xe9\n"))
	res, err := Load(path, ',')
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !res.Latin1Fallback {
		t.Fatalf("expected latin-1 fallback")
	}
	if got := res.Table.Rows[0][0].Raw; got != "café" {
		t.Fatalf("decoded cell = %q, want %q", got, "café")
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), ',')
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", nil)
	_, err := Load(path, ',')
	var empty *EmptyInputError
	if !errors.As(err, &empty) {
		t.Fatalf("err = %v, want EmptyInputError", err)
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeFile(t, "header.csv", []byte("a,b\n"))
	_, err := Load(path, ',')
	var empty *EmptyInputError
	if !errors.As(err, &empty) {
		t.Fatalf("err = %v, want EmptyInputError", err)
	}
}

func TestLoadRaggedRows(t *testing.T) {
	path := writeFile(t, "ragged.csv", []byte("a,b\n1,2\n3\n"))
	_, err := Load(path, ',')
	var mal *MalformedInputError
	if !errors.As(err, &mal) {
		t.Fatalf("err = %v, want MalformedInputError", err)
	}
}

func TestLoadDuplicateHeader(t *testing.T) {
	path := writeFile(t, "dup.csv", []byte("a,a\n1,2\n"))
	_, err := Load(path, ',')
	var mal *MalformedInputError
	if !errors.As(err, &mal) {
		t.Fatalf("err = %v, want MalformedInputError", err)
	}
}

func TestLoadTabDelimited(t *testing.T) {
	path := writeFile(t, "data.tsv", []byte("a\tb\n1\t2\n"))
	if d := SniffDelimiter(path); d != '\t' {
		t.Fatalf("SniffDelimiter = %q, want tab", d)
	}
	res, err := Load(path, '\t')
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Table.NumCols() != 2 {
		t.Fatalf("cols = %d, want 2", res.Table.NumCols())
	}
}
