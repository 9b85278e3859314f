package examgen

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/exambank/examgen/internal/exam"
)

const answerSheetName = "Exam Details"

var modelColors = []string{"90EE90", "F08080", "87CEFA", "FFA07A", "FAFAD2"}

const (
	bannerColor = "0000FF"
	rowColor    = "D3D3D3"
)

// BuildAnswerKey renders the answer-key workbook. Each model occupies a
// three column block: a question column, a correct-answer column, and a
// spacer. Models are shuffled independently here, so the key records each
// model's own ordering rather than the document's.
func BuildAnswerKey(units []exam.ExamUnit, numModels int) ([]byte, error) {
	if len(units) == 0 {
		return nil, fmt.Errorf("no exam units")
	}
	if numModels < 1 {
		return nil, fmt.Errorf("number of models must be at least 1")
	}
	examName := ""
	if units[0].Exam != nil {
		examName = units[0].Exam.Name
	}

	f := excelize.NewFile()
	defer f.Close()
	index, err := f.NewSheet(answerSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	totalCols := numModels*3 - 1
	if err := writeBanner(f, examName, totalCols); err != nil {
		return nil, err
	}

	widths := make(map[int]float64)
	for m := 1; m <= numModels; m++ {
		shuffled := ShuffleUnits(units)
		if err := writeModelBlock(f, shuffled, m, widths); err != nil {
			return nil, err
		}
	}
	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(answerSheetName, name, name, w); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBanner(f *excelize.File, examName string, totalCols int) error {
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(totalCols, 1)
	if err := f.MergeCell(answerSheetName, first, last); err != nil {
		return err
	}
	if err := f.SetCellValue(answerSheetName, first, "Exam Name: "+examName); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 14},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{bannerColor}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	return f.SetCellStyle(answerSheetName, first, last, style)
}

func writeModelBlock(f *excelize.File, units []exam.ExamUnit, model int, widths map[int]float64) error {
	startCol := 1 + (model-1)*3
	color := modelColors[(model-1)%len(modelColors)]

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return err
	}
	rowStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{rowColor}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return err
	}

	titleFirst, _ := excelize.CoordinatesToCellName(startCol, 3)
	titleLast, _ := excelize.CoordinatesToCellName(startCol+1, 3)
	if err := f.MergeCell(answerSheetName, titleFirst, titleLast); err != nil {
		return err
	}
	if err := f.SetCellValue(answerSheetName, titleFirst, fmt.Sprintf("Model %d", model)); err != nil {
		return err
	}
	if err := f.SetCellStyle(answerSheetName, titleFirst, titleLast, headerStyle); err != nil {
		return err
	}

	setCell := func(col, row int, value string, style int) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(answerSheetName, cell, value); err != nil {
			return err
		}
		if w := float64(len(value)) + 4; w > widths[col] {
			widths[col] = w
		}
		return f.SetCellStyle(answerSheetName, cell, cell, style)
	}

	if err := setCell(startCol, 4, "Questions", headerStyle); err != nil {
		return err
	}
	if err := setCell(startCol+1, 4, "Correct Answer", headerStyle); err != nil {
		return err
	}

	row := 5
	question := 1
	for _, unit := range units {
		if unit.Group == nil {
			continue
		}
		for _, p := range unit.Group.Problems {
			if err := setCell(startCol, row, fmt.Sprintf("Question %d", question), rowStyle); err != nil {
				return err
			}
			if err := setCell(startCol+1, row, answerLabel(p), rowStyle); err != nil {
				return err
			}
			row++
			question++
		}
	}
	return nil
}

// answerLabel resolves the displayed answer position, the 1-based index of
// the choice whose stored order equals the problem's right answer.
func answerLabel(p exam.Problem) string {
	for i, c := range p.Choices {
		if c.UnitOrder == p.RightAnswer {
			return fmt.Sprintf("%d", i+1)
		}
	}
	return "-"
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
}
