package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"gymbro/internal/analysis"
	"gymbro/internal/service"
	"gymbro/internal/store"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := go_json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		log.Errorf("failed to write response: %s", err)
	}
}

// writeError maps domain errors to status codes
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, analysis.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrProfileNotFound),
		errors.Is(err, store.ErrProgramItemNotFound),
		errors.Is(err, service.ErrUnknownPreset):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Errorf("%s %s: %s", r.Method, r.URL.Path, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return &analysis.InputError{Field: "body", Reason: "could not be read"}
	}
	if err := go_json.Unmarshal(data, v); err != nil {
		return &analysis.InputError{Field: "body", Reason: "is not valid JSON: " + err.Error()}
	}
	return nil
}

func userIDVar(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, &analysis.InputError{Field: "id", Reason: "is not a valid user id"}
	}
	return id, nil
}

func itemIDVar(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["item"], 10, 64)
	if err != nil {
		return 0, &analysis.InputError{Field: "item", Reason: "is not a valid program item id"}
	}
	return id, nil
}

// optionalDate parses s, returning the zero time for an empty string
func optionalDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := analysis.ParseDate(s)
	if err != nil {
		return time.Time{}, &analysis.InputError{Field: field, Reason: "must be YYYY-MM-DD, got " + strconv.Quote(s)}
	}
	return t, nil
}
