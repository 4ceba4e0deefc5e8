package util

import (
	"encoding/json"
	"net/http"
)

//WithBodyAndStatus writes a JSON response with the given status code
func WithBodyAndStatus(body interface{}, statusCode int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}
