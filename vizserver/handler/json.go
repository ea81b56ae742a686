package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bytearena/lineofsight/common/utils"
	"github.com/bytearena/lineofsight/vizserver/types"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	utils.Check(err, "Failed to marshal response")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

func writeError(w http.ResponseWriter, status int, source string, err error) {
	writeJSON(w, status, types.NewErrorMessage(source, err))
}
