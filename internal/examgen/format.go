package examgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const examDateLayout = "02/01/2006"

// FormatHours renders an exam duration in minutes as hours with at most one
// decimal place and no trailing zero ("1.5", "2").
func FormatHours(minutes int) string {
	h := math.Round(float64(minutes)/60*10) / 10
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// termLabel maps the stored term number to its display name.
func termLabel(term int) string {
	if term == 1 {
		return "First Term"
	}
	return "Second Term"
}

// questionRange labels a common-header run: From[3] for a single question,
// From[3:7] for a span.
func questionRange(start, end int) string {
	if start == end {
		return fmt.Sprintf("From[%d]", start)
	}
	return fmt.Sprintf("From[%d:%d]", start, end)
}

// sanitizeName makes an exam name safe for a download file name.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, ".", "")
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		return "Exam"
	}
	return name
}
