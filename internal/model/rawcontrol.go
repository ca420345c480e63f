package model

import "encoding/json"

// RawControl is the shape a control subtree takes inside the PKG's JSON
// (CanvasManifest.json screens/components). IRSplitCombine.Split consumes
// this; IRSplitCombine.Combine produces it.
type RawControl struct {
	Name            string
	VariantName     string
	UniqueID        string
	TemplateName    string
	TemplateVersion string
	StyleName       string
	IsComponentDefinition bool
	Rules           []RawRule
	Children        []*RawControl
	Extra           map[string]json.RawMessage
	extraOrder      []string
}

// ExtensionData returns the control's preserved unmodeled JSON fields.
func (c *RawControl) ExtensionData() ExtensionData {
	return ExtensionData{Keys: c.extraOrder, Values: c.Extra}
}

// SetExtensionData installs the control's preserved unmodeled JSON fields,
// restoring what a previous Split call (or the PKG's own JSON) recorded.
func (c *RawControl) SetExtensionData(ext ExtensionData) {
	c.Extra = ext.Values
	c.extraOrder = ext.Keys
}

// RawRule is one logical property rule on a control, as read from / written
// to the control's JSON representation in the PKG.
type RawRule struct {
	Name             string
	InvariantScript  string
	RuleProviderType string
	NameMap          map[string]string
	ExtensionData    ExtensionData
}

var rawControlKnownFields = map[string]bool{
	"name":            true,
	"variantName":     true,
	"controlUniqueId": true,
	"template":              true,
	"styleName":             true,
	"isComponentDefinition": true,
	"rules":                 true,
	"children":              true,
}

type rawTemplateRef struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// UnmarshalJSON decodes one control node, preserving any field this tool
// doesn't model in Extra.
func (c *RawControl) UnmarshalJSON(raw []byte) error {
	ext, known, err := ExtractExtra(raw, rawControlKnownFields)
	if err != nil {
		return err
	}
	if v, ok := known["name"]; ok {
		json.Unmarshal(v, &c.Name)
	}
	if v, ok := known["variantName"]; ok {
		json.Unmarshal(v, &c.VariantName)
	}
	if v, ok := known["controlUniqueId"]; ok {
		json.Unmarshal(v, &c.UniqueID)
	}
	if v, ok := known["styleName"]; ok {
		json.Unmarshal(v, &c.StyleName)
	}
	if v, ok := known["isComponentDefinition"]; ok {
		json.Unmarshal(v, &c.IsComponentDefinition)
	}
	if v, ok := known["template"]; ok {
		var tpl rawTemplateRef
		if err := json.Unmarshal(v, &tpl); err == nil {
			c.TemplateName = tpl.Name
			c.TemplateVersion = tpl.Version
		}
	}
	if v, ok := known["rules"]; ok {
		if err := json.Unmarshal(v, &c.Rules); err != nil {
			return err
		}
	}
	if v, ok := known["children"]; ok {
		if err := json.Unmarshal(v, &c.Children); err != nil {
			return err
		}
	}
	c.Extra = ext.Values
	c.extraOrder = ext.Keys
	return nil
}

// MarshalJSON encodes one control node back to the PKG's JSON shape.
func (c RawControl) MarshalJSON() ([]byte, error) {
	known := map[string]json.RawMessage{}
	add := func(key string, v interface{}) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		known[key] = b
		return nil
	}
	if err := add("name", c.Name); err != nil {
		return nil, err
	}
	if c.VariantName != "" {
		if err := add("variantName", c.VariantName); err != nil {
			return nil, err
		}
	}
	if c.UniqueID != "" {
		if err := add("controlUniqueId", c.UniqueID); err != nil {
			return nil, err
		}
	}
	if c.StyleName != "" {
		if err := add("styleName", c.StyleName); err != nil {
			return nil, err
		}
	}
	if c.IsComponentDefinition {
		if err := add("isComponentDefinition", c.IsComponentDefinition); err != nil {
			return nil, err
		}
	}
	if err := add("template", rawTemplateRef{Name: c.TemplateName, Version: c.TemplateVersion}); err != nil {
		return nil, err
	}
	if err := add("rules", c.Rules); err != nil {
		return nil, err
	}
	if err := add("children", c.Children); err != nil {
		return nil, err
	}
	return MergeExtra(known, ExtensionData{Keys: c.extraOrder, Values: c.Extra})
}

var rawRuleKnownFields = map[string]bool{
	"name":             true,
	"invariantScript":  true,
	"ruleProviderType": true,
	"nameMap":          true,
}

// UnmarshalJSON decodes one rule, preserving unmodeled fields in
// ExtensionData per the design note on extension data.
func (r *RawRule) UnmarshalJSON(raw []byte) error {
	ext, known, err := ExtractExtra(raw, rawRuleKnownFields)
	if err != nil {
		return err
	}
	if v, ok := known["name"]; ok {
		json.Unmarshal(v, &r.Name)
	}
	if v, ok := known["invariantScript"]; ok {
		json.Unmarshal(v, &r.InvariantScript)
	}
	if v, ok := known["ruleProviderType"]; ok {
		json.Unmarshal(v, &r.RuleProviderType)
	}
	if v, ok := known["nameMap"]; ok {
		json.Unmarshal(v, &r.NameMap)
	}
	r.ExtensionData = ext
	return nil
}

func (r RawRule) MarshalJSON() ([]byte, error) {
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
	if err := add("invariantScript", r.InvariantScript); err != nil {
		return nil, err
	}
	if r.RuleProviderType != "" {
		if err := add("ruleProviderType", r.RuleProviderType); err != nil {
			return nil, err
		}
	}
	if len(r.NameMap) > 0 {
		if err := add("nameMap", r.NameMap); err != nil {
			return nil, err
		}
	}
	return MergeExtra(known, r.ExtensionData)
}
