package model

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ExtensionData is an opaque ordered-by-insertion JSON bag of fields unknown
// to this tool but required for round-trip, per the design note "JSON
// extension data": preserved as raw values, never re-serialized through a
// typed shape. Go's encoding/json does not preserve key order on decode into
// a map, so Keys records the original order separately.
type ExtensionData struct {
	Keys   []string
	Values map[string]json.RawMessage
}

// NewExtensionData returns an empty ExtensionData.
func NewExtensionData() ExtensionData {
	return ExtensionData{Values: map[string]json.RawMessage{}}
}

// ExtractExtra decodes raw into a map, removes every key named in known, and
// returns the remainder as ExtensionData plus the raw values for the known
// keys (so the caller can json.Unmarshal each into its typed field).
func ExtractExtra(raw []byte, known map[string]bool) (ExtensionData, map[string]json.RawMessage, error) {
	if len(raw) == 0 {
		return NewExtensionData(), nil, nil
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err != nil {
		return ExtensionData{}, nil, err
	}

	order, err := objectKeyOrder(raw)
	if err != nil {
		order = nil
	}

	ext := NewExtensionData()
	knownVals := map[string]json.RawMessage{}
	seen := map[string]bool{}
	for _, k := range order {
		if seen[k] {
			continue
		}
		seen[k] = true
		v := all[k]
		if known[k] {
			knownVals[k] = v
			continue
		}
		ext.Keys = append(ext.Keys, k)
		ext.Values[k] = v
	}
	// Fall back to map iteration for any key objectKeyOrder missed (should
	// not normally happen, but keeps this robust against malformed input).
	for k, v := range all {
		if seen[k] {
			continue
		}
		if known[k] {
			knownVals[k] = v
			continue
		}
		ext.Keys = append(ext.Keys, k)
		ext.Values[k] = v
	}
	return ext, knownVals, nil
}

// MergeExtra re-serializes known (already-marshaled typed fields) together
// with ext's preserved unknown fields, ext.Keys first in their recorded
// order, then the known keys sorted, and returns the combined JSON object.
func MergeExtra(known map[string]json.RawMessage, ext ExtensionData) ([]byte, error) {
	buf := []byte("{")
	first := true
	write := func(key string, val json.RawMessage) error {
		if !first {
			buf = append(buf, ',')
		}
		first = false
		kb, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, val...)
		return nil
	}
	for _, k := range ext.Keys {
		if err := write(k, ext.Values[k]); err != nil {
			return nil, err
		}
	}
	knownKeys := make([]string, 0, len(known))
	for k := range known {
		knownKeys = append(knownKeys, k)
	}
	sort.Strings(knownKeys)
	for _, k := range knownKeys {
		if err := write(k, known[k]); err != nil {
			return nil, err
		}
	}
	buf = append(buf, '}')
	return buf, nil
}

// objectKeyOrder walks a JSON object's tokens with encoding/json.Decoder to
// recover the original key order, since map decoding alone discards it.
func objectKeyOrder(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil
	}
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return keys, err
		}
		key, _ := keyTok.(string)
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return keys, err
		}
	}
	return keys, nil
}

// skipValue consumes exactly one JSON value (scalar, object, or array) from
// dec, relying on the decoder's own bracket matching via More()/Token().
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	for dec.More() {
		if d == '{' {
			if _, err := dec.Token(); err != nil {
				return err
			}
		}
		if err := skipValue(dec); err != nil {
			return err
		}
	}
	_, err = dec.Token() // consume the matching closing delimiter
	return err
}
