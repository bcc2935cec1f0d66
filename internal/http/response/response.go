package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// detail mirrors the API's fixed error wire shape: {"detail": "..."}.
type detail struct {
	Detail string `json:"detail"`
}

func JSON(w http.ResponseWriter, _ *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encode response body", "error", err)
	}
}

func Detail(w http.ResponseWriter, r *http.Request, status int, message string) {
	JSON(w, r, status, detail{Detail: message})
}

func Text(w http.ResponseWriter, _ *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Warn("write response body", "error", err)
	}
}
