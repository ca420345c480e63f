package model

// PropertyState is the editor-state sidecar for one property (spec §3).
type PropertyState struct {
	PropertyName     string
	NameMap          map[string]string
	RuleProviderType string
	ExtensionData    ExtensionData
}

// ControlState is the per-control editor-state sidecar (spec §3).
type ControlState struct {
	Name                     string
	TopParentName            string
	PublishOrderIndex        int
	ParentIndex              int
	StyleName                string
	Properties               []PropertyState
	ExtensionData             ExtensionData
	IsComponentDefinition     bool
	GalleryTemplateChildName  string
}

// PropertyOrder returns the index at which propertyName appears in
// Properties, or -1 if absent (spec I3/I4 combine-time reordering needs this
// lookup for every IR property).
func (c *ControlState) PropertyOrder(propertyName string) int {
	for i, p := range c.Properties {
		if p.PropertyName == propertyName {
			return i
		}
	}
	return -1
}

// FindProperty returns the PropertyState for propertyName, if recorded.
func (c *ControlState) FindProperty(propertyName string) (*PropertyState, bool) {
	for i := range c.Properties {
		if c.Properties[i].PropertyName == propertyName {
			return &c.Properties[i], true
		}
	}
	return nil, false
}

// ScopeRuleDef is one parameter of a function-typed custom property.
type ScopeRuleDef struct {
	Name                  string
	DefaultRule           string
	ScopePropertyDataType string
	ParameterIndex        int
	ParentPropertyName    string
}

// Clear resets every field this tool rewrites across split/combine to its
// zero value — used by Split to implement the "clear scope-rule fields,
// reconstructed on combine" step (spec §4.3 step 4).
func (s *ScopeRuleDef) Clear() {
	s.DefaultRule = ""
	s.ScopePropertyDataType = ""
	s.ParameterIndex = 0
	s.ParentPropertyName = ""
}

// CustomPropertyDef is one custom property a component template declares.
// Function-typed custom properties (IsFunctionProperty) carry one
// ScopeRuleDef per argument.
type CustomPropertyDef struct {
	Name               string
	IsFunctionProperty bool
	PropertyDataType   string
	DefaultRule        string
	ScopeRules         []ScopeRuleDef
}

// ComponentDefinitionInfo is attached to a combined control when its
// ControlState.IsComponentDefinition is set (spec §4.3 combine step 6).
type ComponentDefinitionInfo struct {
	LastModifiedTimestamp string
	ChildOrder            []string
}

// TemplateState is a faithful reflection of the PKG's template JSON plus the
// two local flags split/combine need (spec §3).
type TemplateState struct {
	Name                    string
	DisplayName             string
	Version                 string
	IsComponentTemplate     bool
	OriginalName            string
	CustomProperties        []CustomPropertyDef
	ComponentDefinitionInfo *ComponentDefinitionInfo
	ExtensionData           ExtensionData
}

// FindCustomProperty returns the CustomPropertyDef named name, if any.
func (t *TemplateState) FindCustomProperty(name string) (*CustomPropertyDef, bool) {
	for i := range t.CustomProperties {
		if t.CustomProperties[i].Name == name {
			return &t.CustomProperties[i], true
		}
	}
	return nil, false
}

// FunctionTypedProperties returns every custom property on t that is
// function-typed, in declaration order.
func (t *TemplateState) FunctionTypedProperties() []*CustomPropertyDef {
	var out []*CustomPropertyDef
	for i := range t.CustomProperties {
		if t.CustomProperties[i].IsFunctionProperty {
			out = append(out, &t.CustomProperties[i])
		}
	}
	return out
}

// DisplayOrName returns DisplayName if set, else Name, matching the
// TypedName.Kind.TypeName rule in spec §4.3 step 6.
func (t *TemplateState) DisplayOrName() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return t.Name
}
