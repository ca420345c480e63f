package irsplit

import (
	"strconv"

	"github.com/gopasrc/pasrc/internal/model"
)

// ZIndexRuleName is the property that determines sibling serialization
// order (spec I4).
const ZIndexRuleName = "ZIndex"

// zIndexOf parses the ZIndex rule on a raw control. Non-numeric or missing
// values parse as -1, matching §8 scenario 3.
func zIndexOf(raw *model.RawControl) float64 {
	for _, r := range raw.Rules {
		if r.Name != ZIndexRuleName {
			continue
		}
		v, err := strconv.ParseFloat(r.InvariantScript, 64)
		if err != nil {
			return -1
		}
		return v
	}
	return -1
}
