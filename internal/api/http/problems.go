package http

import (
	"strconv"
	"strings"

	nethttp "net/http"

	"github.com/exambank/examgen/internal/exam"
)

func CreateProblemHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var p exam.Problem
		if err := decodeBody(r, &p); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(p.Name) == "" {
			writeError(w, nethttp.StatusBadRequest, "problem name is required")
			return
		}
		id, err := store.CreateProblem(r.Context(), p)
		if err != nil {
			writeFailure(w, err)
			return
		}
		p.ID = id
		writeJSON(w, nethttp.StatusCreated, p)
	}
}

func GetProblemHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "problemID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		p, err := store.GetProblem(r.Context(), id)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, p)
	}
}

// ListProblemsHandler lists problems, optionally scoped with ?group_id=N.
func ListProblemsHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		groupID := int64(0)
		if v := r.URL.Query().Get("group_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil || id <= 0 {
				writeError(w, nethttp.StatusBadRequest, "invalid group_id")
				return
			}
			groupID = id
		}
		ps, err := store.ListProblems(r.Context(), groupID)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, ps)
	}
}

func UpdateProblemHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "problemID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		var p exam.Problem
		if err := decodeBody(r, &p); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		p.ID = id
		if err := store.UpdateProblem(r.Context(), p); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, p)
	}
}

func DeleteProblemHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "problemID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if err := store.DeleteProblem(r.Context(), id); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]int64{"problem_id": id})
	}
}

func CreateChoiceHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var c exam.ProblemChoice
		if err := decodeBody(r, &c); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		id, err := store.CreateChoice(r.Context(), c)
		if err != nil {
			writeFailure(w, err)
			return
		}
		c.ID = id
		writeJSON(w, nethttp.StatusCreated, c)
	}
}

func GetChoiceHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "choiceID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		c, err := store.GetChoice(r.Context(), id)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, c)
	}
}

// ListChoicesHandler lists a problem's choices in stored order.
func ListChoicesHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		problemID, err := pathID(r, "problemID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		cs, err := store.ListChoices(r.Context(), problemID)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, cs)
	}
}

func UpdateChoiceHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "choiceID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		var c exam.ProblemChoice
		if err := decodeBody(r, &c); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		c.ID = id
		if err := store.UpdateChoice(r.Context(), c); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, c)
	}
}

func DeleteChoiceHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "choiceID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if err := store.DeleteChoice(r.Context(), id); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]int64{"choice_id": id})
	}
}
