package examgen

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestBuildAnswerKey(t *testing.T) {
	units := testUnits()
	data, err := BuildAnswerKey(units, 2)
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("not a workbook: %v", err)
	}
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(answerSheetName, ref)
		if err != nil {
			t.Fatalf("read %s: %v", ref, err)
		}
		return v
	}

	if got := cell("A1"); got != "Exam Name: Midterm Exam" {
		t.Errorf("banner = %q", got)
	}
	if got := cell("A3"); got != "Model 1" {
		t.Errorf("A3 = %q", got)
	}
	if got := cell("D3"); got != "Model 2" {
		t.Errorf("D3 = %q", got)
	}
	if got := cell("A4"); got != "Questions" {
		t.Errorf("A4 = %q", got)
	}
	if got := cell("B4"); got != "Correct Answer" {
		t.Errorf("B4 = %q", got)
	}

	for _, block := range []struct{ q, a string }{{"A", "B"}, {"D", "E"}} {
		answers := map[string]string{}
		for row := 5; row <= 7; row++ {
			answers[cell(block.q+strconv.Itoa(row))] = cell(block.a + strconv.Itoa(row))
		}
		// fixture answers: unit 1 holds questions answered 2 and 1,
		// unit 2 holds the question answered 6; only unit order varies
		got := []string{answers["Question 1"], answers["Question 2"], answers["Question 3"]}
		ok := (got[0] == "2" && got[1] == "1" && got[2] == "6") ||
			(got[0] == "6" && got[1] == "2" && got[2] == "1")
		if !ok {
			t.Errorf("block %s answers = %v", block.q, got)
		}
	}
}

func TestBuildAnswerKeyMissingRightAnswer(t *testing.T) {
	units := testUnits()
	units[0].Group.Problems[0].RightAnswer = 9
	data, err := BuildAnswerKey(units, 1)
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	found := false
	for row := 5; row <= 7; row++ {
		v, _ := f.GetCellValue(answerSheetName, "B"+strconv.Itoa(row))
		if v == "-" {
			found = true
		}
	}
	if !found {
		t.Error("unmatched right answer should render as -")
	}
}

func TestBuildAnswerKeyValidation(t *testing.T) {
	if _, err := BuildAnswerKey(nil, 1); err == nil {
		t.Error("want error for no units")
	}
	if _, err := BuildAnswerKey(testUnits(), 0); err == nil {
		t.Error("want error for zero models")
	}
}
