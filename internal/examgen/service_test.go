package examgen

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exambank/examgen/internal/bubble"
	"github.com/exambank/examgen/internal/exam"
)

type fakeLoader struct {
	units []exam.ExamUnit
	err   error
}

func (f *fakeLoader) LoadExamUnits(_ context.Context, _ int64) ([]exam.ExamUnit, error) {
	return f.units, f.err
}

type fakeSheets struct {
	err  error
	reqs []bubble.Request
}

func (f *fakeSheets) Generate(_ context.Context, req bubble.Request, outDir string) ([]string, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	var paths []string
	for i := 1; i <= req.Models; i++ {
		p := filepath.Join(outDir, fmt.Sprintf("sheet_%d.png", i))
		if err := os.WriteFile(p, []byte("png"), 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func newTestService(t *testing.T, loader *fakeLoader, sheets *fakeSheets) *Service {
	t.Helper()
	return &Service{
		Units:    loader,
		Sheets:   sheets,
		WorkRoot: t.TempDir(),
	}
}

func TestServiceGenerate(t *testing.T) {
	sheets := &fakeSheets{}
	svc := newTestService(t, &fakeLoader{units: testUnits()}, sheets)

	res, err := svc.Generate(context.Background(), 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(res.FileName, "Exam_Midterm_Exam_") || !strings.HasSuffix(res.FileName, ".zip") {
		t.Errorf("file name = %q", res.FileName)
	}

	zr, err := zip.NewReader(bytes.NewReader(res.Data), int64(len(res.Data)))
	if err != nil {
		t.Fatalf("not a zip: %v", err)
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		"exam_details.xlsx",
		"exam_version_1.docx",
		"exam_version_2.docx",
		"exam_version_3.docx",
	} {
		if !names[want] {
			t.Errorf("archive missing %q", want)
		}
	}
	if len(zr.File) != 4 {
		t.Errorf("entries = %d, want 4", len(zr.File))
	}

	if len(sheets.reqs) != 1 {
		t.Fatalf("sheet requests = %d, want 1", len(sheets.reqs))
	}
	req := sheets.reqs[0]
	if req.Models != 3 || req.NumQuestions != 3 {
		t.Errorf("request = %+v", req)
	}
	if req.CourseName != "Operating Systems" || req.Term != "First Term" || req.ExamTime != "1.5 Hours" {
		t.Errorf("request metadata = %+v", req)
	}

	entries, err := os.ReadDir(svc.WorkRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("work dir not cleaned up: %v", entries)
	}
}

func TestServiceGenerateValidation(t *testing.T) {
	svc := newTestService(t, &fakeLoader{units: testUnits()}, &fakeSheets{})

	if _, err := svc.Generate(context.Background(), 1, 0); !errors.Is(err, exam.ErrInvalid) {
		t.Errorf("zero models: err = %v", err)
	}

	svc = newTestService(t, &fakeLoader{units: nil}, &fakeSheets{})
	if _, err := svc.Generate(context.Background(), 7, 1); !errors.Is(err, exam.ErrNotFound) {
		t.Errorf("no units: err = %v", err)
	}
}

func TestServiceGenerateSheetFailureCleansUp(t *testing.T) {
	svc := newTestService(t, &fakeLoader{units: testUnits()}, &fakeSheets{err: errors.New("boom")})

	if _, err := svc.Generate(context.Background(), 1, 2); err == nil {
		t.Fatal("want error")
	}
	entries, err := os.ReadDir(svc.WorkRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("work dir not cleaned up after failure: %v", entries)
	}
}

func TestServiceGenerateSizeCap(t *testing.T) {
	svc := newTestService(t, &fakeLoader{units: testUnits()}, &fakeSheets{})
	svc.MaxArchiveBytes = 64

	if _, err := svc.Generate(context.Background(), 1, 1); !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}
