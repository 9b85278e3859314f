// Package examgen assembles complete exam bundles: shuffled docx models, an
// answer-key workbook, machine-generated bubble sheets, and the zip archive
// that carries them all.
package examgen

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/exambank/examgen/internal/bubble"
	"github.com/exambank/examgen/internal/exam"
)

// UnitLoader materializes the full exam tree for generation.
type UnitLoader interface {
	LoadExamUnits(ctx context.Context, examID int64) ([]exam.ExamUnit, error)
}

// SheetGenerator produces one bubble sheet image per requested model.
type SheetGenerator interface {
	Generate(ctx context.Context, req bubble.Request, outDir string) ([]string, error)
}

// Service drives exam bundle generation end to end.
type Service struct {
	Units           UnitLoader
	Sheets          SheetGenerator
	WorkRoot        string // parent directory for per-run temp dirs
	LogoPath        string // optional, under the uploads root
	LoadImage       func(path string) ([]byte, error)
	MaxArchiveBytes int64
	Log             *log.Logger
}

// Result is a finished exam bundle ready to stream to the client.
type Result struct {
	FileName string
	Data     []byte
}

// Generate builds numModels shuffled exam documents plus the answer key and
// returns them zipped. Generation is all or nothing: any failure discards
// the partial output.
func (s *Service) Generate(ctx context.Context, examID int64, numModels int) (*Result, error) {
	if numModels < 1 {
		return nil, fmt.Errorf("%w: number of models must be at least 1", exam.ErrInvalid)
	}
	units, err := s.Units.LoadExamUnits(ctx, examID)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("%w: exam %d has no units", exam.ErrNotFound, examID)
	}
	e := units[0].Exam
	if e == nil || e.Material == nil {
		return nil, fmt.Errorf("%w: exam %d is missing material data", exam.ErrInvalid, examID)
	}
	totalQuestions := 0
	for _, u := range units {
		if u.Group == nil || len(u.Group.Problems) == 0 {
			return nil, fmt.Errorf("%w: exam unit %d has no problems", exam.ErrInvalid, u.UnitOrder)
		}
		totalQuestions += u.TotalProblems
	}

	workDir := filepath.Join(s.WorkRoot, uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil && s.Log != nil {
			s.Log.Printf("work dir cleanup failed for %s: %v", workDir, err)
		}
	}()

	sheets, err := s.Sheets.Generate(ctx, s.sheetRequest(e, totalQuestions, numModels), workDir)
	if err != nil {
		return nil, err
	}

	var logo []byte
	if s.LogoPath != "" && s.LoadImage != nil {
		if data, err := s.LoadImage(s.LogoPath); err == nil {
			logo = data
		} else if s.Log != nil {
			s.Log.Printf("logo unavailable at %s: %v", s.LogoPath, err)
		}
	}

	documents := make([][]byte, 0, numModels)
	for m := 1; m <= numModels; m++ {
		sheet, err := os.ReadFile(sheets[m-1])
		if err != nil {
			return nil, fmt.Errorf("read bubble sheet: %w", err)
		}
		doc, err := BuildDocument(DocumentInput{
			Units:          ShuffleUnits(units),
			Model:          m,
			TotalQuestions: totalQuestions,
			BubbleSheet:    sheet,
			Logo:           logo,
			LoadImage:      s.LoadImage,
		})
		if err != nil {
			return nil, fmt.Errorf("build model %d: %w", m, err)
		}
		documents = append(documents, doc)
	}

	key, err := BuildAnswerKey(units, numModels)
	if err != nil {
		return nil, fmt.Errorf("build answer key: %w", err)
	}
	data, err := BuildArchive(key, documents, s.MaxArchiveBytes)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("Exam_%s_%s.zip", sanitizeName(e.Name), time.Now().Format("2006-01-02_15-04-05"))
	if s.Log != nil {
		s.Log.Printf("exam %d: generated %d models (%d bytes)", examID, numModels, len(data))
	}
	return &Result{FileName: name, Data: data}, nil
}

func (s *Service) sheetRequest(e *exam.Exam, totalQuestions, numModels int) bubble.Request {
	m := e.Material
	return bubble.Request{
		Title:          e.Name,
		CourseName:     m.Name,
		CourseCode:     m.Code,
		CourseLevel:    m.Level,
		Term:           termLabel(m.Term),
		NumQuestions:   totalQuestions,
		ExamDate:       e.Date.Format(examDateLayout),
		FullMark:       strconv.Itoa(e.MainDegree),
		ExamTime:       FormatHours(e.DurationMin) + " Hours",
		Department:     m.Department,
		CollegeName:    e.CollegeName,
		UniversityName: e.UniversityName,
		Models:         numModels,
	}
}
