package model

import "encoding/json"

var publishInfoKnownFields = map[string]bool{"logoFileName": true}

// UnmarshalJSON preserves every field this tool doesn't model, per the
// "never re-serialize through a typed shape" design note.
func (p *PublishInfo) UnmarshalJSON(raw []byte) error {
	ext, known, err := ExtractExtra(raw, publishInfoKnownFields)
	if err != nil {
		return err
	}
	if v, ok := known["logoFileName"]; ok {
		if err := json.Unmarshal(v, &p.LogoFileName); err != nil {
			return err
		}
	}
	p.Extra = ext.Values
	p.extraOrder = ext.Keys
	return nil
}

func (p PublishInfo) MarshalJSON() ([]byte, error) {
	known := map[string]json.RawMessage{}
	if p.LogoFileName != "" {
		b, err := json.Marshal(p.LogoFileName)
		if err != nil {
			return nil, err
		}
		known["logoFileName"] = b
	}
	return MergeExtra(known, ExtensionData{Keys: p.extraOrder, Values: p.Extra})
}
