package http

import (
	"encoding/json"
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/saltaireguide/directory/internal/fetcher"
)

const (
	errorNotFound           = "not_found"
	errorContentUnavailable = "content_unavailable"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// mapError turns a page pipeline error into a status and body. Store failures
// never leak their cause to the client.
func mapError(err error) (int, errorResponse) {
	categorized := fetcher.Categorize(err)
	if goerrors.IsCategory(categorized, goerrors.CategoryNotFound) {
		return http.StatusNotFound, errorResponse{Error: errorNotFound}
	}
	return http.StatusInternalServerError, errorResponse{Error: errorContentUnavailable}
}
