package irsplit

import (
	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/entropy"
	"github.com/gopasrc/pasrc/internal/model"
)

// Context threads the collaborators Split and Combine share across an
// entire control tree: the template registry, the editor-state store, the
// entropy side-channel, and the diagnostics sink (spec §4.3).
type Context struct {
	Templates    map[string]*model.TemplateState
	EditorStates map[string]*model.ControlState
	Entropy      *entropy.Entropy
	Diags        *diagnostics.Container
}

// NewContext builds a Context over the given collaborators.
func NewContext(templates map[string]*model.TemplateState, editorStates map[string]*model.ControlState, ent *entropy.Entropy, diags *diagnostics.Container) *Context {
	return &Context{Templates: templates, EditorStates: editorStates, Entropy: ent, Diags: diags}
}
