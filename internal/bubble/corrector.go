package bubble

import (
	"context"
	"time"
)

// Corrector runs the scan correction script against filled bubble sheets.
type Corrector struct {
	Python  string
	Script  string
	Timeout time.Duration
}

// Correct grades the scans at input (a file or a directory of files) against
// the answer-key workbook and writes the grade report to outPath.
func (c *Corrector) Correct(ctx context.Context, input, excelPath, outPath string) error {
	args := []string{
		"--input", input,
		"--excel", excelPath,
		"--output", outPath,
	}
	return runTool(ctx, c.Timeout, c.Python, c.Script, args)
}
