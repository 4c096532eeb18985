package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
)

type HealthHandler struct {
	downloadDir string
}

func NewHealthHandler(downloadDir string) *HealthHandler {
	return &HealthHandler{downloadDir: downloadDir}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz verifies the downloads directory is writable, since every
// successful request must persist an audio artifact there.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}

	probe := filepath.Join(h.downloadDir, ".readyz")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		checks["downloads"] = "unhealthy: " + err.Error()
	} else {
		os.Remove(probe)
		checks["downloads"] = "ok"
	}

	status := http.StatusOK
	for _, v := range checks {
		if v != "ok" {
			status = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, status, map[string]interface{}{"status": statusStr(status), "checks": checks})
}

func statusStr(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unhealthy"
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
