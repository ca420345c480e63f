package model

import "encoding/json"

var templateStateKnownFields = map[string]bool{
	"name":                    true,
	"displayName":             true,
	"version":                 true,
	"isComponentTemplate":     true,
	"originalName":            true,
	"customProperties":        true,
	"componentDefinitionInfo": true,
}

type rawCustomProperty struct {
	Name               string          `json:"name"`
	IsFunctionProperty bool            `json:"isFunctionProperty,omitempty"`
	PropertyDataType   string          `json:"propertyDataType,omitempty"`
	DefaultRule        string          `json:"defaultRule,omitempty"`
	ScopeRules         []ScopeRuleDef  `json:"scopeRules,omitempty"`
}

// UnmarshalJSON decodes a template, preserving any field this tool doesn't
// model in ExtensionData (spec's "JSON extension data" design note, §3
// TemplateState).
func (t *TemplateState) UnmarshalJSON(raw []byte) error {
	ext, known, err := ExtractExtra(raw, templateStateKnownFields)
	if err != nil {
		return err
	}
	if v, ok := known["name"]; ok {
		json.Unmarshal(v, &t.Name)
	}
	if v, ok := known["displayName"]; ok {
		json.Unmarshal(v, &t.DisplayName)
	}
	if v, ok := known["version"]; ok {
		json.Unmarshal(v, &t.Version)
	}
	if v, ok := known["isComponentTemplate"]; ok {
		json.Unmarshal(v, &t.IsComponentTemplate)
	}
	if v, ok := known["originalName"]; ok {
		json.Unmarshal(v, &t.OriginalName)
	}
	if v, ok := known["customProperties"]; ok {
		var cps []rawCustomProperty
		if err := json.Unmarshal(v, &cps); err != nil {
			return err
		}
		for _, cp := range cps {
			t.CustomProperties = append(t.CustomProperties, CustomPropertyDef{
				Name:               cp.Name,
				IsFunctionProperty: cp.IsFunctionProperty,
				PropertyDataType:   cp.PropertyDataType,
				DefaultRule:        cp.DefaultRule,
				ScopeRules:         cp.ScopeRules,
			})
		}
	}
	if v, ok := known["componentDefinitionInfo"]; ok {
		var info ComponentDefinitionInfo
		if err := json.Unmarshal(v, &info); err != nil {
			return err
		}
		t.ComponentDefinitionInfo = &info
	}
	t.ExtensionData = ext
	return nil
}

// MarshalJSON encodes a template back to the PKG's JSON shape.
func (t TemplateState) MarshalJSON() ([]byte, error) {
	known := map[string]json.RawMessage{}
	add := func(key string, v interface{}) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		known[key] = b
		return nil
	}
	if err := add("name", t.Name); err != nil {
		return nil, err
	}
	if t.DisplayName != "" {
		if err := add("displayName", t.DisplayName); err != nil {
			return nil, err
		}
	}
	if t.Version != "" {
		if err := add("version", t.Version); err != nil {
			return nil, err
		}
	}
	if t.IsComponentTemplate {
		if err := add("isComponentTemplate", t.IsComponentTemplate); err != nil {
			return nil, err
		}
	}
	if t.OriginalName != "" {
		if err := add("originalName", t.OriginalName); err != nil {
			return nil, err
		}
	}
	if len(t.CustomProperties) > 0 {
		cps := make([]rawCustomProperty, len(t.CustomProperties))
		for i, cp := range t.CustomProperties {
			cps[i] = rawCustomProperty{
				Name:               cp.Name,
				IsFunctionProperty: cp.IsFunctionProperty,
				PropertyDataType:   cp.PropertyDataType,
				DefaultRule:        cp.DefaultRule,
				ScopeRules:         cp.ScopeRules,
			}
		}
		if err := add("customProperties", cps); err != nil {
			return nil, err
		}
	}
	if t.ComponentDefinitionInfo != nil {
		if err := add("componentDefinitionInfo", t.ComponentDefinitionInfo); err != nil {
			return nil, err
		}
	}
	return MergeExtra(known, t.ExtensionData)
}
