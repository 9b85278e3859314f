package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	nethttp "net/http"

	"github.com/google/uuid"

	"github.com/exambank/examgen/internal/bubble"
)

const maxCorrectionUpload = 100 << 20

// CorrectExamHandler grades uploaded bubble sheet scans against an uploaded
// answer-key workbook and returns the grade report. Multipart fields: one
// "excel" workbook and one or more "scans" images.
func CorrectExamHandler(corr *bubble.Corrector, workRoot string) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if err := r.ParseMultipartForm(maxCorrectionUpload); err != nil {
			writeError(w, nethttp.StatusBadRequest, "bad multipart form")
			return
		}
		excels := r.MultipartForm.File["excel"]
		scans := r.MultipartForm.File["scans"]
		if len(excels) != 1 || len(scans) == 0 {
			writeError(w, nethttp.StatusBadRequest, "one excel file and at least one scan are required")
			return
		}

		workDir := filepath.Join(workRoot, uuid.NewString())
		if err := os.MkdirAll(filepath.Join(workDir, "scans"), 0o755); err != nil {
			writeError(w, nethttp.StatusInternalServerError, "work dir error")
			return
		}
		defer os.RemoveAll(workDir)

		excelPath := filepath.Join(workDir, "answers.xlsx")
		if err := saveUpload(excels[0], excelPath); err != nil {
			writeError(w, nethttp.StatusInternalServerError, err.Error())
			return
		}
		input := filepath.Join(workDir, "scans")
		for i, fh := range scans {
			name := fmt.Sprintf("scan_%03d%s", i+1, filepath.Ext(fh.Filename))
			if err := saveUpload(fh, filepath.Join(input, name)); err != nil {
				writeError(w, nethttp.StatusInternalServerError, err.Error())
				return
			}
		}
		if len(scans) == 1 {
			input = filepath.Join(input, "scan_001"+filepath.Ext(scans[0].Filename))
		}

		outPath := filepath.Join(workDir, "grades.xlsx")
		if err := corr.Correct(r.Context(), input, excelPath, outPath); err != nil {
			writeError(w, nethttp.StatusInternalServerError, err.Error())
			return
		}
		data, err := os.ReadFile(outPath)
		if err != nil {
			writeError(w, nethttp.StatusInternalServerError, "grade report missing")
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="grades.xlsx"`)
		_, _ = w.Write(data)
	}
}

func saveUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("save upload: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("save upload: %w", err)
	}
	return nil
}
