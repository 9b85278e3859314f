package examgen

import (
	"time"

	"github.com/exambank/examgen/internal/exam"
)

func testExam() *exam.Exam {
	return &exam.Exam{
		ID:             1,
		MaterialID:     1,
		Name:           "Midterm Exam",
		MainDegree:     60,
		TotalProblems:  5,
		DurationMin:    90,
		Date:           time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		UniversityName: "Cairo",
		CollegeName:    "Engineering",
		Material: &exam.Material{
			ID:         1,
			Name:       "Operating Systems",
			Code:       "CS301",
			Level:      "Third",
			Department: "Computer Science",
			Term:       1,
		},
	}
}

func testChoices(problemID int64, texts ...string) []exam.ProblemChoice {
	out := make([]exam.ProblemChoice, len(texts))
	for i, t := range texts {
		out[i] = exam.ProblemChoice{
			ID:        problemID*10 + int64(i) + 1,
			ProblemID: problemID,
			Text:      t,
			UnitOrder: i + 1,
		}
	}
	return out
}

func testUnits() []exam.ExamUnit {
	e := testExam()
	g1 := &exam.Group{
		ID:                   1,
		Name:                 "Scheduling",
		HasCommonHeader:      true,
		CommonQuestionHeader: "Answer based on the scheduler description below.",
		TotalProblems:        2,
		Problems: []exam.Problem{
			{
				ID: 1, GroupID: 1, Name: "P1", Header: "Which policy is preemptive?",
				ChoicesNumber: 4, RightAnswer: 2,
				Choices: testChoices(1, "FCFS", "Round Robin", "SJF", "Priority"),
			},
			{
				ID: 2, GroupID: 1, Name: "P2", Header: "What does a context switch save?",
				ChoicesNumber: 3, RightAnswer: 1,
				Choices: testChoices(2, "Registers", "Disk blocks", "Page files"),
			},
		},
	}
	g2 := &exam.Group{
		ID:            2,
		Name:          "Memory",
		TotalProblems: 1,
		Problems: []exam.Problem{
			{
				ID: 3, GroupID: 2, Name: "P3", Header: "Which structure backs virtual memory?",
				ChoicesNumber: 6, RightAnswer: 6,
				Choices: testChoices(3, "Stack", "Queue", "Heap", "Page table x", "Bitmap", "Page table"),
			},
		},
	}
	return []exam.ExamUnit{
		{UnitOrder: 1, ExamID: 1, GroupID: 1, TotalProblems: 2, AllProblems: 2, Exam: e, Group: g1},
		{UnitOrder: 2, ExamID: 1, GroupID: 2, TotalProblems: 1, AllProblems: 1, Exam: e, Group: g2},
	}
}
