package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"

	"github.com/tunehub/tunehub-server/pkg/catalog"
)

// DeleteManyRequest is the request body for bulk deletes. The delete is
// all-or-nothing: any missing or foreign id fails the whole batch.
type DeleteManyRequest struct {
	IDs []string `json:"ids"`
}

func deleteMany(w http.ResponseWriter, r *http.Request, service catalog.Service, kind catalog.Kind) {
	var req DeleteManyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if len(req.IDs) == 0 {
		badRequest(w, r, "ids is required")
		return
	}

	ids, err := parseIDs(req.IDs)
	if err != nil {
		badRequest(w, r, "invalid id in batch")
		return
	}

	if err := service.DeleteMany(r.Context(), kind, ids, ActorFromContext(r.Context())); err != nil {
		respondError(w, r, err)
		return
	}
	render.NoContent(w, r)
}
