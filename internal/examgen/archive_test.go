package examgen

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestBuildArchive(t *testing.T) {
	key := []byte("workbook")
	docs := [][]byte{[]byte("model one"), []byte("model two")}
	data, err := BuildArchive(key, docs, 0)
	if err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("not a zip: %v", err)
	}
	want := map[string]string{
		"exam_details.xlsx":   "workbook",
		"exam_version_1.docx": "model one",
		"exam_version_2.docx": "model two",
	}
	if len(zr.File) != len(want) {
		t.Fatalf("entries = %d, want %d", len(zr.File), len(want))
	}
	for _, f := range zr.File {
		content, ok := want[f.Name]
		if !ok {
			t.Errorf("unexpected entry %q", f.Name)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		b, _ := io.ReadAll(rc)
		rc.Close()
		if string(b) != content {
			t.Errorf("%s = %q, want %q", f.Name, b, content)
		}
	}
}

func TestBuildArchiveSizeCap(t *testing.T) {
	// even a minimal archive cannot fit under this cap
	_, err := BuildArchive([]byte("workbook"), nil, 64)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}
