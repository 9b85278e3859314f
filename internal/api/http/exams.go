package http

import (
	"strings"

	nethttp "net/http"

	"github.com/exambank/examgen/internal/exam"
)

func CreateExamHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var e exam.Exam
		if err := decodeBody(r, &e); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(e.Name) == "" {
			writeError(w, nethttp.StatusBadRequest, "exam name is required")
			return
		}
		id, err := store.CreateExam(r.Context(), e)
		if err != nil {
			writeFailure(w, err)
			return
		}
		e.ID = id
		writeJSON(w, nethttp.StatusCreated, e)
	}
}

func GetExamHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "examID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		e, err := store.GetExam(r.Context(), id)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, e)
	}
}

func ListExamsHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		es, err := store.ListExams(r.Context())
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, es)
	}
}

func UpdateExamHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "examID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		var e exam.Exam
		if err := decodeBody(r, &e); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		e.ID = id
		if err := store.UpdateExam(r.Context(), e); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, e)
	}
}

func DeleteExamHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "examID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if err := store.DeleteExam(r.Context(), id); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]int64{"exam_id": id})
	}
}

func CreateExamUnitHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var u exam.ExamUnit
		if err := decodeBody(r, &u); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		order, err := store.CreateExamUnit(r.Context(), u)
		if err != nil {
			writeFailure(w, err)
			return
		}
		u.UnitOrder = order
		writeJSON(w, nethttp.StatusCreated, u)
	}
}

func GetExamUnitHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		order, err := pathID(r, "unitOrder")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		u, err := store.GetExamUnit(r.Context(), order)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, u)
	}
}

// ListExamUnitsHandler lists the units scheduled for one exam.
func ListExamUnitsHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		examID, err := pathID(r, "examID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		us, err := store.ListExamUnits(r.Context(), examID)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, us)
	}
}

func UpdateExamUnitHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		order, err := pathID(r, "unitOrder")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		var u exam.ExamUnit
		if err := decodeBody(r, &u); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		u.UnitOrder = order
		if err := store.UpdateExamUnit(r.Context(), u); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, u)
	}
}

func DeleteExamUnitHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		order, err := pathID(r, "unitOrder")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if err := store.DeleteExamUnit(r.Context(), order); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]int64{"unit_order": order})
	}
}
