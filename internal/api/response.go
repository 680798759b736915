package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// ErrorResponse is the JSON error body returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError translates a catalog error into an HTTP status and a
// JSON error body. Unclassified errors become 500s and are logged;
// their message is not echoed to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case catalog.IsNotFound(err):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
	case catalog.IsForbidden(err):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
	case catalog.IsConflict(err):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "internal server error"})
	}
}

func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{Error: msg})
}
