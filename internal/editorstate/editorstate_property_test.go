//go:build property

package editorstate

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/model"
)

// TestDuplicateSymbolProperty validates P7: any duplicate control name
// registered outside a test suite raises DuplicateSymbol, for a randomly
// generated sequence of control names with repeats.
func TestDuplicateSymbolProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(7171)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("a repeated name outside a test suite raises DuplicateSymbol", prop.ForAll(
		func(names []string) bool {
			states := map[string]*model.ControlState{}
			seen := map[string]bool{}
			sawDuplicate := false
			gotDiagnostic := false
			for _, n := range names {
				diag := Register(states, &model.ControlState{Name: n}, false, false)
				if seen[n] {
					sawDuplicate = true
					if diag == nil || diag.Code != diagnostics.DuplicateSymbol {
						return false
					}
					gotDiagnostic = true
				} else if diag != nil {
					return false
				}
				seen[n] = true
			}
			if sawDuplicate && !gotDiagnostic {
				return false
			}
			return true
		},
		gen.SliceOfN(8, gen.OneConstOf("A", "B", "C")),
	))

	properties.TestingRun(t)
}
