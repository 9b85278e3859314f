package http

import (
	"fmt"

	nethttp "net/http"

	"github.com/exambank/examgen/internal/examgen"
)

// GenerateExamHandler builds the exam bundle and streams the zip back.
func GenerateExamHandler(svc *examgen.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		examID, err := pathID(r, "examID")
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		var req struct {
			NumberOfModels int `json:"number_of_models"`
		}
		if err := decodeBody(r, &req); err != nil {
			writeError(w, nethttp.StatusBadRequest, err.Error())
			return
		}
		res, err := svc.Generate(r.Context(), examID, req.NumberOfModels)
		if err != nil {
			writeFailure(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(res.Data)))
		_, _ = w.Write(res.Data)
	}
}
