package handler

import (
	"net/http"
	"strconv"

	"github.com/bytearena/lineofsight/vizserver/types"
)

func Home(scene *types.VizScene) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<h2>Welcome on VIZ SERVER !</h2>"))
		w.Write([]byte("<p>" + strconv.Itoa(scene.Index().Len()) + " walls, " + strconv.Itoa(scene.Watchers().Size()) + " watchers right now</p>"))

		for _, source := range scene.Sources() {
			w.Write([]byte("<div>" + source.ID + " (" + source.Sense.String() + ") at " + source.Origin.String() + "</div>"))
		}
	}
}
