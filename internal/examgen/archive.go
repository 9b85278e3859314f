package examgen

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
)

// ErrTooLarge reports an archive that exceeds the configured size cap.
var ErrTooLarge = errors.New("archive exceeds size limit")

// DefaultMaxArchiveBytes caps generated archives at 250 MiB.
const DefaultMaxArchiveBytes = int64(250 << 20)

// BuildArchive packs the answer key and the per-model documents into a zip.
// Documents are named exam_version_1.docx, exam_version_2.docx and so on.
func BuildArchive(answerKey []byte, documents [][]byte, maxBytes int64) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("exam_details.xlsx")
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(answerKey); err != nil {
		return nil, err
	}

	for i, doc := range documents {
		w, err := zw.Create(fmt.Sprintf("exam_version_%d.docx", i+1))
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(doc); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	if maxBytes <= 0 {
		maxBytes = DefaultMaxArchiveBytes
	}
	if int64(buf.Len()) > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, buf.Len())
	}
	return buf.Bytes(), nil
}
