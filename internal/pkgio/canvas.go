package pkgio

import (
	"encoding/json"

	"github.com/gopasrc/pasrc/internal/model"
)

// canvasManifest mirrors CanvasManifest.json: the PKG-side JSON envelope
// holding every screen and component-definition control tree plus the
// document's scalar headers (spec §4.6 "filename->kind lookup table").
type canvasManifest struct {
	Screens              []*model.RawControl `json:"screens"`
	ComponentDefinitions []*model.RawControl `json:"componentDefinitions,omitempty"`
	Header               json.RawMessage     `json:"header,omitempty"`
	PublishInfo          *model.PublishInfo  `json:"publishInfo,omitempty"`
	FormatVersion         formatVersionWire   `json:"formatVersion"`
}

type formatVersionWire struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

type templatesFile struct {
	Templates []*model.TemplateState `json:"templates"`
}
