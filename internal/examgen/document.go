package examgen

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/exambank/examgen/internal/docx"
	"github.com/exambank/examgen/internal/exam"
)

// Fixed layout values for the printed exam format.
const (
	longChoiceLen   = 60 // choices longer than this get one line each
	choiceColumn    = 60 // column where the second packed choice starts
	pageBorderSize  = 48
	pageBorderSpace = 10
	pageMarginTwips = 500

	bubbleWidthEMU  = int64(8.27 * 914400) // A4
	bubbleHeightEMU = int64(11.69 * 914400)
	bubbleOffsetX   = -200000
	bubbleOffsetY   = 90000

	problemImageEMU = docx.EMUPerInch // 1in square inline problem images

	logoSizeEMU = 731520
	logoPosX    = 3500000
	logoPosY    = -750000
)

// DocumentInput carries everything needed to render one exam model.
type DocumentInput struct {
	Units          []exam.ExamUnit // already shuffled for this model
	Model          int             // 1-based model number
	TotalQuestions int
	BubbleSheet    []byte                             // PNG for page one; skipped when empty
	Logo           []byte                             // PNG anchored near the header; skipped when empty
	LoadImage      func(path string) ([]byte, error)  // resolves problem/choice image paths; nil disables images
}

// BuildDocument renders one shuffled exam model into a docx byte stream.
func BuildDocument(in DocumentInput) ([]byte, error) {
	if len(in.Units) == 0 {
		return nil, errors.New("no exam units to render")
	}
	first := in.Units[0].Exam
	if first == nil {
		return nil, errors.New("exam unit carries no exam")
	}
	var material exam.Material
	if first.Material != nil {
		material = *first.Material
	}

	d := docx.New()
	d.Footer(fmt.Sprintf("Model %d", in.Model))
	d.PageLayout(pageBorderSize, pageBorderSpace, pageMarginTwips)

	if len(in.BubbleSheet) > 0 {
		d.InlineImage(in.BubbleSheet, "png", "BubbleSheet",
			bubbleWidthEMU, bubbleHeightEMU, bubbleOffsetX, bubbleOffsetY)
	}

	writeHeader(d, first, material, in.TotalQuestions)
	if len(in.Logo) > 0 {
		d.AnchorImage(in.Logo, "png", "Logo", logoSizeEMU, logoSizeEMU, logoPosX, logoPosY)
	}
	d.Separator(30)

	d.Paragraph("Choose the correct answer for the following:", docx.Style{Bold: true, Size: 28})
	d.Paragraph(" ", docx.Style{})

	questionNumber := 1
	for _, unit := range in.Units {
		if unit.Group == nil || len(unit.Group.Problems) == 0 {
			continue
		}
		problems := unit.Group.Problems

		start := questionNumber
		end := questionNumber + len(problems) - 1
		if unit.Group.HasCommonHeader && unit.Group.CommonQuestionHeader != "" {
			d.Paragraph(fmt.Sprintf("%s %s", questionRange(start, end), unit.Group.CommonQuestionHeader),
				docx.Style{Bold: true, Size: 28, SpacingAfter: "240"})
		}

		for _, p := range problems {
			header := p.Header
			if header == "" {
				header = "N/A"
			}
			d.Paragraph(fmt.Sprintf("%d. %s", questionNumber, header),
				docx.Style{Bold: true, SpacingAfter: "120"})

			if p.ImagePath != "" && in.LoadImage != nil {
				if img, err := in.LoadImage(p.ImagePath); err == nil {
					d.InlineImage(img, filepath.Ext(p.ImagePath), filepath.Base(p.ImagePath),
						problemImageEMU, problemImageEMU, 0, 0)
				}
			}

			if len(p.Choices) == 0 {
				d.Paragraph("No choices available.", docx.Style{})
			} else {
				for _, line := range choiceLines(p.Choices) {
					d.Paragraph(line, docx.Style{SpacingAfter: "120"})
				}
			}
			questionNumber++
		}
		d.Separator(12)
	}

	return d.Bytes()
}

func writeHeader(d *docx.Document, e *exam.Exam, m exam.Material, totalQuestions int) {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	d.Table([][]docx.Cell{
		{
			{Text: "Course Name: " + orNA(m.Name), Bold: true},
			{Text: "Faculty of " + orNA(e.CollegeName), Width: 2500, Justify: "center"},
			{Text: orNA(e.Name), Bold: true},
		},
		{
			{Text: "Course Code: " + orNA(m.Code)},
			{Text: orNA(e.UniversityName) + " University", Width: 2500, Justify: "center"},
			{Text: "Date: " + e.Date.Format(examDateLayout)},
		},
		{
			{Text: "Course Level: " + orNA(m.Level)},
			{Text: "", Justify: "center"},
			{Text: fmt.Sprintf("Full Mark: %d", e.MainDegree)},
		},
		{
			{Text: "Term: " + termLabel(m.Term)},
			{Text: "", Justify: "center"},
			{Text: fmt.Sprintf("No. of Questions: %d", totalQuestions)},
		},
		{
			{Text: "Department: " + orNA(m.Department), Span: 2, SpacingAfter: "0"},
			{Text: fmt.Sprintf("Time: %s Hours", FormatHours(e.DurationMin)), SpacingAfter: "0"},
		},
	})
}

// choiceLines lays out a problem's choices in display order. When every
// choice is short, two choices share a line with the second padded to start
// at a fixed column; one long choice switches the whole problem to one
// choice per line.
func choiceLines(choices []exam.ProblemChoice) []string {
	ordered := append([]exam.ProblemChoice(nil), choices...)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].UnitOrder < ordered[j-1].UnitOrder; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	text := func(c exam.ProblemChoice) string {
		if c.Text == "" {
			return "N/A"
		}
		return c.Text
	}
	label := func(i int) rune { return rune('a' + i) }

	long := false
	for _, c := range ordered {
		if len(text(c)) > longChoiceLen {
			long = true
			break
		}
	}

	var lines []string
	if long {
		for i, c := range ordered {
			lines = append(lines, fmt.Sprintf("(%c) %s", label(i), text(c)))
		}
		return lines
	}
	for i := 0; i < len(ordered); i += 2 {
		line := fmt.Sprintf("(%c) %s", label(i), text(ordered[i]))
		if i+1 < len(ordered) {
			pad := choiceColumn - len(line)%choiceColumn
			line += strings.Repeat(" ", pad) + fmt.Sprintf("(%c) %s", label(i+1), text(ordered[i+1]))
		}
		lines = append(lines, line)
	}
	return lines
}
