package types

import (
	"github.com/bytearena/lineofsight/common/visibility2d"
)

const (
	MessageTypePolygon = "polygon"
	MessageTypeScene   = "scene"
	MessageTypeError   = "error"
)

type VizMessage struct {
	Type    string                `json:"type"`
	Source  string                `json:"source,omitempty"`
	Polygon *visibility2d.Polygon `json:"polygon,omitempty"`
	Dropped []string              `json:"dropped,omitempty"`
	Edges   int                   `json:"edges,omitempty"`
	Error   string                `json:"error,omitempty"`
}

func NewPolygonMessage(source string, polygon *visibility2d.Polygon) VizMessage {
	return VizMessage{
		Type:    MessageTypePolygon,
		Source:  source,
		Polygon: polygon,
		Dropped: polygon.DroppedMessages(),
	}
}

func NewErrorMessage(source string, err error) VizMessage {
	return VizMessage{
		Type:   MessageTypeError,
		Source: source,
		Error:  err.Error(),
	}
}
