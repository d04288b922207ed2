package utils

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteJSON encodes v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes the API's error envelope.
func JSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{
		"status":  "error",
		"message": message,
	})
}

// JSONSuccess writes the API's success envelope with a human message.
func JSONSuccess(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}
