package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/bytearena/lineofsight/common/scenefile"
	"github.com/bytearena/lineofsight/common/utils"
	"github.com/bytearena/lineofsight/vizserver/types"
)

// Websocket answers every source received with its polygon. Watchers are
// also told when the walls change.
func Websocket(scene *types.VizScene) func(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}

		watcher := types.NewWatcher(c)
		scene.Watchers().Set(watcher)

		defer func(c *websocket.Conn) {
			scene.Watchers().Remove(watcher.GetId())
			c.Close()
		}(c)

		for {
			messageType, p, err := c.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					utils.Debug("viz-server", "Watcher "+watcher.GetId()+" left; "+err.Error())
				}
				return
			}

			if messageType != websocket.TextMessage {
				continue
			}

			var description scenefile.SourceDescription
			var reply types.VizMessage

			if err := json.Unmarshal(p, &description); err != nil {
				reply = types.NewErrorMessage("", err)
			} else if polygon, err := scene.Sweep(description); err != nil {
				reply = types.NewErrorMessage(description.ID, err)
			} else {
				reply = types.NewPolygonMessage(description.ID, polygon)
			}

			if err := watcher.Send(reply); err != nil {
				utils.Debug("viz-server", "Could not reply to watcher "+watcher.GetId()+"; "+err.Error())
				return
			}
		}
	}
}
