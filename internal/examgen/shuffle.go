package examgen

import (
	"math/rand"

	"github.com/exambank/examgen/internal/exam"
)

// ShuffleUnits returns a deep copy of units in a fresh uniformly-random
// order. Question and choice content is never altered, only unit
// presentation order; choice order keeps the stored UnitOrder. Copies share
// no mutable state with the input or with each other, so each exam model
// gets its own call.
func ShuffleUnits(units []exam.ExamUnit) []exam.ExamUnit {
	out := make([]exam.ExamUnit, len(units))
	for i := range units {
		out[i] = copyUnit(units[i])
	}
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func copyUnit(u exam.ExamUnit) exam.ExamUnit {
	cp := u
	if u.Exam != nil {
		e := *u.Exam
		if u.Exam.Material != nil {
			m := *u.Exam.Material
			e.Material = &m
		}
		cp.Exam = &e
	}
	if u.Group != nil {
		g := *u.Group
		g.Problems = make([]exam.Problem, len(u.Group.Problems))
		for i, p := range u.Group.Problems {
			pc := p
			pc.Choices = append([]exam.ProblemChoice(nil), p.Choices...)
			g.Problems[i] = pc
		}
		cp.Group = &g
	}
	return cp
}
