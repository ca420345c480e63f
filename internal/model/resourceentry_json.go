package model

import "encoding/json"

var resourceEntryKnownFields = map[string]bool{
	"name":         true,
	"resourceKind": true,
	"path":         true,
	"fileName":     true,
}

func (r *ResourceEntry) UnmarshalJSON(raw []byte) error {
	ext, known, err := ExtractExtra(raw, resourceEntryKnownFields)
	if err != nil {
		return err
	}
	if v, ok := known["name"]; ok {
		json.Unmarshal(v, &r.Name)
	}
	if v, ok := known["resourceKind"]; ok {
		json.Unmarshal(v, &r.Kind)
	}
	if v, ok := known["path"]; ok {
		json.Unmarshal(v, &r.Path)
	}
	if v, ok := known["fileName"]; ok {
		json.Unmarshal(v, &r.FileName)
	}
	r.Extra = ext.Values
	r.extraOrder = ext.Keys
	return nil
}

func (r ResourceEntry) MarshalJSON() ([]byte, error) {
	known := map[string]json.RawMessage{}
	add := func(key string, v interface{}) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		known[key] = b
		return nil
	}
	if err := add("name", r.Name); err != nil {
		return nil, err
	}
	if err := add("resourceKind", r.Kind); err != nil {
		return nil, err
	}
	if r.Path != "" {
		if err := add("path", r.Path); err != nil {
			return nil, err
		}
	}
	if r.FileName != "" {
		if err := add("fileName", r.FileName); err != nil {
			return nil, err
		}
	}
	return MergeExtra(known, ExtensionData{Keys: r.extraOrder, Values: r.Extra})
}
