package http

import (
	"strings"

	nethttp "net/http"

	"github.com/exambank/examgen/internal/auth/middleware"
	"github.com/exambank/examgen/internal/exam"
)

func CreateMaterialHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var m exam.Material
		if err := decodeBody(r, &m); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(m.Name) == "" {
			writeError(w, nethttp.StatusBadRequest, "material name is required")
			return
		}
		if m.DoctorID == 0 {
			if sub := auth.SubjectFromContext(r.Context()); sub > 0 {
				m.DoctorID = sub
			}
		}
		id, err := store.CreateMaterial(r.Context(), m)
		if err != nil {
			writeFailure(w, err)
			return
		}
		m.ID = id
		writeJSON(w, nethttp.StatusCreated, m)
	}
}

func GetMaterialHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "materialID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		m, err := store.GetMaterial(r.Context(), id)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, m)
	}
}

func ListMaterialsHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		ms, err := store.ListMaterials(r.Context())
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, ms)
	}
}

func UpdateMaterialHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "materialID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		var m exam.Material
		if err := decodeBody(r, &m); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		m.ID = id
		if err := store.UpdateMaterial(r.Context(), m); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, m)
	}
}

func DeleteMaterialHandler(store *exam.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := pathID(r, "materialID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		if err := store.DeleteMaterial(r.Context(), id); err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]int64{"material_id": id})
	}
}
