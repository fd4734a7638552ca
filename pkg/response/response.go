// Package response writes the JSON bodies the catalog API promises.
//
// Unlike a generic envelope, the shapes here are part of the public
// contract: success responses are the payload itself, errors are
// {"error": msg}, and not-found is {"message": msg}.
package response

import (
	"encoding/json"
	"net/http"
)

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON sends an arbitrary payload with the given status.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	write(w, status, payload)
}

// Success sends a 200 with the payload as the body.
func Success(w http.ResponseWriter, payload interface{}) {
	write(w, http.StatusOK, payload)
}

// Created sends a 201 with the payload as the body.
func Created(w http.ResponseWriter, payload interface{}) {
	write(w, http.StatusCreated, payload)
}

// Error sends {"error": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, map[string]string{"error": message})
}

// ValidationError sends a 400 with a field→message map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "Validation failed",
		"fields": errs,
	})
}

// NotFound sends {"message": message} with a 404.
func NotFound(w http.ResponseWriter, message string) {
	write(w, http.StatusNotFound, map[string]string{"message": message})
}

// Message sends {"message": message} with a 200.
func Message(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, map[string]string{"message": message})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}
