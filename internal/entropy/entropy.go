// Package entropy implements the Entropy side-channel: the single JSON file
// aggregating every volatile or non-semantic value captured during unpack so
// pack can reproduce it deterministically (spec §3, §4.4).
package entropy

import (
	"encoding/json"
)

// Entropy is the side-channel document. Fields unrecognized by this version
// are preserved byte-for-byte via Extra.
type Entropy struct {
	ControlUniqueIDs      map[string]int64          `json:"controlUniqueIds,omitempty"`
	OldLogoFileName       string                    `json:"oldLogoFileName,omitempty"`
	LocalResourceFileNames map[string]string        `json:"localResourceFileNames,omitempty"`
	ResourceOrder         map[string]int            `json:"resourceOrder,omitempty"`
	VolatileProperties    map[string]json.RawMessage `json:"volatileProperties,omitempty"`
	DataSourceOrder       map[string]int            `json:"dataSourceOrder,omitempty"`

	// Extra preserves any top-level field this version doesn't recognize,
	// byte-for-byte, so an older or newer Entropy.json still round-trips.
	Extra map[string]json.RawMessage `json:"-"`
}

// New returns an empty, ready-to-use Entropy.
func New() *Entropy {
	return &Entropy{
		ControlUniqueIDs:       map[string]int64{},
		LocalResourceFileNames: map[string]string{},
		ResourceOrder:          map[string]int{},
		VolatileProperties:     map[string]json.RawMessage{},
		DataSourceOrder:        map[string]int{},
		Extra:                  map[string]json.RawMessage{},
	}
}

var knownFields = map[string]bool{
	"controlUniqueIds":       true,
	"oldLogoFileName":        true,
	"localResourceFileNames": true,
	"resourceOrder":          true,
	"volatileProperties":     true,
	"dataSourceOrder":        true,
}

// Decode parses Entropy.json bytes. A missing/empty payload yields a valid
// empty Entropy rather than an error, since entropy-absence is never fatal
// on pack (§4.4, §8 P8).
func Decode(raw []byte) (*Entropy, error) {
	e := New()
	if len(raw) == 0 {
		return e, nil
	}

	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	for k, v := range generic {
		if !knownFields[k] {
			e.Extra[k] = v
			continue
		}
	}
	// Let the typed struct pick up the known fields; ignore unknown ones
	// which are already stashed above.
	if err := json.Unmarshal(raw, e); err != nil {
		return nil, err
	}
	if e.ControlUniqueIDs == nil {
		e.ControlUniqueIDs = map[string]int64{}
	}
	if e.LocalResourceFileNames == nil {
		e.LocalResourceFileNames = map[string]string{}
	}
	if e.ResourceOrder == nil {
		e.ResourceOrder = map[string]int{}
	}
	if e.VolatileProperties == nil {
		e.VolatileProperties = map[string]json.RawMessage{}
	}
	if e.DataSourceOrder == nil {
		e.DataSourceOrder = map[string]int{}
	}
	return e, nil
}

// Encode serializes Entropy back to JSON, re-merging any unrecognized
// top-level fields captured on Decode.
func (e *Entropy) Encode() ([]byte, error) {
	known, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	if len(e.Extra) == 0 {
		return known, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range e.Extra {
		merged[k] = v
	}
	return json.MarshalIndent(merged, "", "  ")
}

// NextUniqueID returns a fresh control unique id: one greater than any id
// already recorded in entropy (§4.3 step 3, §8 scenario 6). Deterministic so
// repeated calls against the same snapshot pick the same sequence.
func (e *Entropy) NextUniqueID() int64 {
	var max int64
	for _, id := range e.ControlUniqueIDs {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// NextAssetNumber returns the number for a fresh 4-digit zero-padded numeric
// asset name: one greater than any number in used and any leading number of
// a LocalResourceFileNames value or a ResourceOrder key (§4.2 "inverse on
// pack").
func (e *Entropy) NextAssetNumber(used map[int]bool) int {
	max := 0
	for n := range used {
		if n > max {
			max = n
		}
	}
	for _, v := range e.LocalResourceFileNames {
		if n, ok := parseLeadingNumber(v); ok && n > max {
			max = n
		}
	}
	for k := range e.ResourceOrder {
		if n, ok := parseLeadingNumber(k); ok && n > max {
			max = n
		}
	}
	return max + 1
}

func parseLeadingNumber(s string) (int, bool) {
	n := 0
	found := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		found = true
	}
	return n, found
}
