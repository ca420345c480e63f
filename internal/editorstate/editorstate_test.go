package editorstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/model"
)

func TestRegisterDuplicateOutsideTestSuiteIsDuplicateSymbol(t *testing.T) {
	states := map[string]*model.ControlState{}
	require.Nil(t, Register(states, &model.ControlState{Name: "Widget1"}, false, false))

	diag := Register(states, &model.ControlState{Name: "Widget1"}, false, false)
	require.NotNil(t, diag)
	assert.Equal(t, diagnostics.DuplicateSymbol, diag.Code)
}

func TestRegisterDuplicateInsideTestSuiteIsAllowed(t *testing.T) {
	states := map[string]*model.ControlState{}
	require.Nil(t, Register(states, &model.ControlState{Name: "Widget1"}, true, false))
	assert.Nil(t, Register(states, &model.ControlState{Name: "Widget1"}, true, false))
}

func TestRegisterDuplicateFromSourceTreeIsEditorStateError(t *testing.T) {
	states := map[string]*model.ControlState{}
	require.Nil(t, Register(states, &model.ControlState{Name: "Widget1"}, false, true))

	diag := Register(states, &model.ControlState{Name: "Widget1"}, false, true)
	require.NotNil(t, diag)
	assert.Equal(t, diagnostics.EditorStateError, diag.Code)
}

func TestVerifyReferencedFlagsOrphanedEditorState(t *testing.T) {
	states := map[string]*model.ControlState{
		"Widget1": {Name: "Widget1"},
		"Widget2": {Name: "Widget2"},
	}
	present := map[string]bool{"Widget1": true}

	diags := VerifyReferenced(states, present)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.ValidationWarning, diags[0].Code)
	assert.Contains(t, diags[0].Error(), "Widget2")
}

func TestVerifyReferencedAllPresentIsClean(t *testing.T) {
	states := map[string]*model.ControlState{"Widget1": {Name: "Widget1"}}
	present := map[string]bool{"Widget1": true}
	assert.Empty(t, VerifyReferenced(states, present))
}
