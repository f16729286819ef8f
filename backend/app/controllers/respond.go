package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"smart-pantry/backend/app/apperr"
	"smart-pantry/backend/app/dto"
	"smart-pantry/backend/app/middleware"
	"smart-pantry/backend/global"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

// writeServiceError maps err through the apperr taxonomy. Unclassified
// errors are logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		global.Logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSONError(w, status, apperr.Message(err))
}

// decodeJSON reads a capped JSON body into v. An empty body leaves v zero.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
	return false
}

// userID returns the authenticated subject, answering 401 when absent.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil || claims.UserID() == "" {
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return claims.UserID(), true
}
