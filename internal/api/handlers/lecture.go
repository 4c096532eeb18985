package handlers

import (
	"net/http"

	"github.com/nadavsuissa/AiTran/internal/lecture"
	"github.com/nadavsuissa/AiTran/internal/upload"
)

type LectureHandler struct {
	store    *upload.Store
	svc      *lecture.Service
	maxBytes int64
}

func NewLectureHandler(store *upload.Store, svc *lecture.Service, maxBytes int64) *LectureHandler {
	return &LectureHandler{store: store, svc: svc, maxBytes: maxBytes}
}

// Process accepts one uploaded document and responds with the
// generated script and the download URL of its narration audio.
func (h *LectureHandler) Process(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file required"})
		return
	}
	defer file.Close()

	doc, err := h.store.Save(file, header)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.svc.Process(r.Context(), doc)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"downloadUrl": result.DownloadURL,
		"script":      result.Script,
	})
}
