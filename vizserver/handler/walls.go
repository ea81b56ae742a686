package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/bytearena/lineofsight/common/edgeindex"
	"github.com/bytearena/lineofsight/common/scenefile"
	"github.com/bytearena/lineofsight/vizserver/types"
)

func Walls(scene *types.VizScene) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		edges := scene.Index().Edges()

		res := make([]scenefile.WallDescription, len(edges))
		for i, edge := range edges {
			res[i] = scenefile.Describe(edge)
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func PutWall(scene *types.VizScene) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var description scenefile.WallDescription
		if err := json.NewDecoder(r.Body).Decode(&description); err != nil {
			writeError(w, http.StatusBadRequest, id, errors.Wrap(err, "Could not decode wall"))
			return
		}

		description.ID = id

		edge, err := scene.PutWall(description)
		if err != nil {
			writeError(w, http.StatusBadRequest, id, err)
			return
		}

		writeJSON(w, http.StatusOK, scenefile.Describe(edge))
	}
}

func DeleteWall(scene *types.VizScene) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		if err := scene.RemoveWall(id); err != nil {
			status := http.StatusBadRequest
			if errors.Cause(err) == edgeindex.ErrUnknownEdge {
				status = http.StatusNotFound
			}

			writeError(w, status, id, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
