// Package editorstate implements the EditorStateStore collaborator: the
// per-control presentation metadata keyed by control name, and the
// uniqueness checks spec invariants I1/I2 require.
package editorstate

import (
	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/model"
)

// Register inserts state into states keyed by state.Name. insideTestSuite
// relaxes I1 (duplicate control names are permitted inside a test suite
// subtree). Returns a DuplicateSymbol diagnostic, or an EditorStateError if
// the duplicate was found while loading already-written editor-state files
// (fromSourceTree), matching §7's distinction.
func Register(states map[string]*model.ControlState, state *model.ControlState, insideTestSuite, fromSourceTree bool) *diagnostics.Diagnostic {
	if _, exists := states[state.Name]; exists && !insideTestSuite {
		code := diagnostics.DuplicateSymbol
		if fromSourceTree {
			code = diagnostics.EditorStateError
		}
		return diagnostics.New(code, "duplicate control name %q", state.Name)
	}
	states[state.Name] = state
	return nil
}

// VerifyReferenced checks invariant I2 by presence: every name in states
// must appear in present, the set of control names actually found in the
// combined control trees. A name set cannot count occurrences, so a name
// present more than once is not reported here.
func VerifyReferenced(states map[string]*model.ControlState, present map[string]bool) []*diagnostics.Diagnostic {
	var out []*diagnostics.Diagnostic
	for name := range states {
		if !present[name] {
			out = append(out, diagnostics.Warning(diagnostics.ValidationWarning,
				"editor state %q has no matching control", name))
		}
	}
	return out
}
