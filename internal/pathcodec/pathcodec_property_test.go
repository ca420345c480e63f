//go:build property

package pathcodec

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestEscapeRoundTripProperty validates P3: unescape(escape(s)) == s for
// every string, and escape is the identity on the literal character set.
func TestEscapeRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(4242)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("unescape(escape(s)) == s", prop.ForAll(
		func(s string) bool {
			return UnescapeFileName(EscapeFileName(s)) == s
		},
		gen.AnyString(),
	))

	properties.Property("escape is the identity on the literal set", prop.ForAll(
		func(s string) bool {
			for _, r := range s {
				if !isLiteral(r) {
					return true
				}
			}
			return EscapeFileName(s) == s
		},
		gen.RegexMatch(`[A-Za-z0-9 _.\[\]-]*`),
	))

	properties.TestingRun(t)
}

// TestRelativeRoundTripProperty validates P4: join(base, relative(full,
// base)) == canonical(full) whenever full is under base, for a generated
// set of path segments under a fixed base.
func TestRelativeRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(4343)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("join(base, relative(full, base)) == full", prop.ForAll(
		func(segments []string) bool {
			base := `C:\Foo`
			full := base
			for _, seg := range segments {
				if seg == "" {
					continue
				}
				full += `\` + seg
			}
			rel, err := Relative(full, base)
			if err != nil {
				return false
			}
			return Join(base, rel) == full
		},
		gen.SliceOfN(4, gen.RegexMatch(`[A-Za-z0-9_.]{1,12}`)),
	))

	properties.TestingRun(t)
}
