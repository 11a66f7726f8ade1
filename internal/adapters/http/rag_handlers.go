package httpadapter

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

func (rt *Router) queryRAG(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	start := time.Now()
	result := rt.answerer.Answer(r.Context(), req.Question)

	if rt.metrics != nil {
		rt.metrics.RecordRAGObservation(rt.service, "/api/rag/query", result.SourceCount, time.Since(start))
		rt.metrics.RecordRAGModeRequest(rt.service, "/api/rag/query", string(result.Mode))
	}

	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "only PDF files are supported")
		return
	}

	doc, err := rt.ingestor.IngestUpload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "File uploaded and processed successfully",
		"filename": doc.Filename,
	})
}
