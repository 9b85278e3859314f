// Package bubble shells out to the Python bubble sheet tools for sheet
// generation and scan correction.
package bubble

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Request carries the exam metadata the sheet generator prints onto each
// bubble sheet.
type Request struct {
	Title          string
	CourseName     string
	CourseCode     string
	CourseLevel    string
	Term           string
	NumQuestions   int
	ExamDate       string
	FullMark       string
	ExamTime       string
	Department     string
	CollegeName    string
	UniversityName string
	Models         int
}

// modelLabels names the requested models A, B, C, ... for the script.
func modelLabels(n int) string {
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = string(rune('A' + i))
	}
	return strings.Join(labels, ",")
}

func (r Request) args(outDir string) []string {
	return []string{
		"--title", r.Title,
		"--course_name", r.CourseName,
		"--course_code", r.CourseCode,
		"--course_level", r.CourseLevel,
		"--term", r.Term,
		"--num_questions", strconv.Itoa(r.NumQuestions),
		"--exam_date", r.ExamDate,
		"--full_mark", r.FullMark,
		"--exam_time", r.ExamTime,
		"--department", r.Department,
		"--college_name", r.CollegeName,
		"--university_name", r.UniversityName,
		"--models", modelLabels(r.Models),
		"--output_dir", outDir,
	}
}

// Generator runs the bubble sheet script once per generation request.
type Generator struct {
	Python  string
	Script  string
	Timeout time.Duration
}

// Generate invokes the script and returns the produced sheet image paths,
// sorted by name so model N maps to the Nth sheet.
func (g *Generator) Generate(ctx context.Context, req Request, outDir string) ([]string, error) {
	if err := runTool(ctx, g.Timeout, g.Python, g.Script, req.args(outDir)); err != nil {
		return nil, err
	}
	sheets, err := filepath.Glob(filepath.Join(outDir, "*.png"))
	if err != nil {
		return nil, err
	}
	sort.Strings(sheets)
	if len(sheets) < req.Models {
		return nil, fmt.Errorf("bubble sheet generator produced %d sheets, want %d", len(sheets), req.Models)
	}
	return sheets, nil
}

// runTool executes a Python tool and treats any stderr output as failure,
// even on a zero exit status.
func runTool(ctx context.Context, timeout time.Duration, python, script string, args []string) error {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, python, append([]string{script}, args...)...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s timed out after %s", filepath.Base(script), timeout)
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s failed: %s", filepath.Base(script), msg)
		}
		return fmt.Errorf("%s failed: %w", filepath.Base(script), err)
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("%s reported errors: %s", filepath.Base(script), msg)
	}
	return nil
}
