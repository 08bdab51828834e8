package http

import (
	"encoding/json"
	"net/http"

	"github.com/inspektor-hq/inspektor/internal/validation"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, map[string]any{
		"ok":      true,
		"message": message,
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"ok":      false,
		"message": message,
	})
}

func writeFieldErrors(w http.ResponseWriter, status int, message string, fields validation.FieldErrors) {
	writeJSON(w, status, map[string]any{
		"ok":      false,
		"message": message,
		"errors":  fields,
	})
}
