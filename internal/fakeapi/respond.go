package fakeapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type errorResponse struct {
	Detail any `json:"detail"`
	Status int `json:"status"`
}

// fieldError mirrors a request validation error entry.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, errorResponse{Detail: detail, Status: code})
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, detail)
}

func writeValidationError(w http.ResponseWriter, errs ...fieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Detail: errs,
		Status: http.StatusUnprocessableEntity,
	})
}

func missingField(loc ...string) fieldError {
	return fieldError{Loc: loc, Msg: "field required", Type: "value_error.missing"}
}

// decodeBody reads a JSON request body into v, answering 422 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) {
		writeValidationError(w, missingField("body"))
		return false
	}
	writeValidationError(w, fieldError{
		Loc:  []string{"body"},
		Msg:  err.Error(),
		Type: "value_error.jsondecode",
	})
	return false
}

func pathInt(w http.ResponseWriter, r *http.Request, param, field string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil {
		writeValidationError(w, fieldError{
			Loc:  []string{"path", field},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		})
		return 0, false
	}
	return n, true
}

func queryInt(w http.ResponseWriter, r *http.Request, key string, def, lo, hi int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || (hi > 0 && n > hi) {
		writeValidationError(w, fieldError{
			Loc:  []string{"query", key},
			Msg:  "value out of range",
			Type: "value_error.number",
		})
		return 0, false
	}
	return n, true
}
