package http

import (
	"strings"

	nethttp "net/http"

	"github.com/exambank/examgen/internal/exam"
)

func CreateGroupHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var g exam.Group
		if err := decodeBody(r, &g); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(g.Name) == "" {
			writeError(w, nethttp.StatusBadRequest, "group name is required")
			return
		}
		id, err := store.CreateGroup(r.Context(), g)
		if err != nil {
			writeFailure(w, err)
			return
		}
		g.ID = id
		writeJSON(w, nethttp.StatusCreated, g)
	}
}

func GetGroupHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "groupID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		g, err := store.GetGroup(r.Context(), id)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, g)
	}
}

func ListGroupsHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gs, err := store.ListGroups(r.Context())
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, gs)
	}
}

func UpdateGroupHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "groupID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		var g exam.Group
		if err := decodeBody(r, &g); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		g.ID = id
		if err := store.UpdateGroup(r.Context(), g); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, g)
	}
}

func DeleteGroupHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "groupID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if err := store.DeleteGroup(r.Context(), id); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]int64{"group_id": id})
	}
}
