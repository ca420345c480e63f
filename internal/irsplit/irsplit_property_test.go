//go:build property

package irsplit

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/entropy"
	"github.com/gopasrc/pasrc/internal/model"
)

func freshContext() *Context {
	return NewContext(
		map[string]*model.TemplateState{
			"label": {Name: "label", DisplayName: "label", ExtensionData: model.NewExtensionData()},
		},
		map[string]*model.ControlState{},
		entropy.New(),
		diagnostics.NewContainer(),
	)
}

// TestZOrderProperty validates P5: children serialized in a screen appear in
// ascending ZIndex order, with ties preserving input order, for a randomly
// generated set of sibling ZIndex values.
func TestZOrderProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(5151)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("children appear in ascending ZIndex order", prop.ForAll(
		func(zIndexes []int) bool {
			var children []*model.RawControl
			for i, z := range zIndexes {
				children = append(children, &model.RawControl{
					Name:         fmt.Sprintf("C%d", i),
					UniqueID:     fmt.Sprintf("%d", i+1),
					TemplateName: "label",
					Rules:        []model.RawRule{rule("ZIndex", fmt.Sprintf("%d", z))},
				})
			}
			parent := &model.RawControl{Name: "Screen1", UniqueID: "0", TemplateName: "screen", Children: children}

			block := Split(freshContext(), parent, false)
			if len(block.Children) != len(children) {
				return false
			}
			lastZ := -1 << 62
			lastInputIdx := -1
			for _, child := range block.Children {
				var idx int
				fmt.Sscanf(child.Name.Identifier, "C%d", &idx)
				z := zIndexes[idx]
				if z < lastZ {
					return false
				}
				if z == lastZ && idx < lastInputIdx {
					return false
				}
				lastZ, lastInputIdx = z, idx
			}
			return true
		},
		gen.SliceOfN(6, gen.IntRange(-100, 100)),
	))

	properties.TestingRun(t)
}

// TestPropertyOrderRestorationProperty validates P6: rules in a re-packed
// control appear in the exact order recorded in ControlState.Properties,
// for a randomly ordered, randomly shuffled-on-repack rule set.
func TestPropertyOrderRestorationProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(5252)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("combine restores the original property order", prop.ForAll(
		func(names []string) bool {
			seen := map[string]bool{}
			var rules []model.RawRule
			for _, n := range names {
				if n == "" || seen[n] {
					continue
				}
				seen[n] = true
				rules = append(rules, rule(n, "1"))
			}
			if len(rules) == 0 {
				return true
			}
			raw := &model.RawControl{Name: "Ctl1", UniqueID: "1", TemplateName: "label", Rules: rules}

			ctx := freshContext()
			block := Split(ctx, raw, false)

			combined, diag := Combine(ctx, block)
			if diag != nil {
				return false
			}
			if len(combined.Rules) != len(rules) {
				return false
			}
			for i, r := range rules {
				if combined.Rules[i].Name != r.Name {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(5, gen.RegexMatch(`[A-Za-z][A-Za-z0-9]{0,8}`)),
	))

	properties.TestingRun(t)
}
