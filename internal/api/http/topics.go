package http

import (
	"strings"

	nethttp "net/http"

	"github.com/exambank/examgen/internal/exam"
)

func CreateTopicHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var t exam.Topic
		if err := decodeBody(r, &t); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(t.Name) == "" {
			writeError(w, nethttp.StatusBadRequest, "topic name is required")
			return
		}
		id, err := store.CreateTopic(r.Context(), t)
		if err != nil {
			writeFailure(w, err)
			return
		}
		t.ID = id
		writeJSON(w, nethttp.StatusCreated, t)
	}
}

func GetTopicHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "topicID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		t, err := store.GetTopic(r.Context(), id)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, t)
	}
}

func ListTopicsHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		ts, err := store.ListTopics(r.Context())
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, ts)
	}
}

func UpdateTopicHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "topicID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		var t exam.Topic
		if err := decodeBody(r, &t); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		t.ID = id
		if err := store.UpdateTopic(r.Context(), t); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, t)
	}
}

func DeleteTopicHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "topicID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if err := store.DeleteTopic(r.Context(), id); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]int64{"topic_id": id})
	}
}
