//go:build property

package assets

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/gopasrc/pasrc/internal/entropy"
)

// TestEntropyAbsentRestoreProperty validates P8: with no Entropy.json (a
// freshly constructed Entropy), Restore picks the same deterministic
// filename for the same sequence of resource names every time it is run
// against an equally fresh Entropy and empty used-number set.
func TestEntropyAbsentRestoreProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(6161)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("entropy-absent restore is deterministic across repeated runs", prop.ForAll(
		func(names []string) bool {
			run := func() []string {
				ent := entropy.New()
				used := map[int]bool{}
				var out []string
				for _, n := range names {
					out = append(out, Restore(n, ent, used))
				}
				return out
			}
			first := run()
			second := run()
			if len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(6, gen.RegexMatch(`[A-Za-z][A-Za-z0-9]{0,8}`)),
	))

	properties.TestingRun(t)
}
