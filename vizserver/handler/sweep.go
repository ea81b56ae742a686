package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/bytearena/lineofsight/common/scenefile"
	"github.com/bytearena/lineofsight/common/visibility2d"
	"github.com/bytearena/lineofsight/vizserver/types"
)

func Sweep(scene *types.VizScene) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var description scenefile.SourceDescription
		if err := json.NewDecoder(r.Body).Decode(&description); err != nil {
			writeError(w, http.StatusBadRequest, "", errors.Wrap(err, "Could not decode source"))
			return
		}

		polygon, err := scene.Sweep(description)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Cause(err) == visibility2d.ErrIndexUnavailable {
				status = http.StatusServiceUnavailable
			}

			writeError(w, status, description.ID, err)
			return
		}

		writeJSON(w, http.StatusOK, types.NewPolygonMessage(description.ID, polygon))
	}
}
