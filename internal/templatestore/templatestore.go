// Package templatestore implements the TemplateStore collaborator: a
// registry of control templates keyed by name, built-in plus discovered
// (spec §2, design note "template store singleton"). Modeled as plain
// functions over the Document's owned Templates map rather than a separate
// stateful type, per that design note.
package templatestore

import (
	"strings"

	"github.com/gopasrc/pasrc/internal/model"
)

// Get looks up a template by name.
func Get(templates map[string]*model.TemplateState, name string) (*model.TemplateState, bool) {
	t, ok := templates[name]
	return t, ok
}

// Lookup finds a template by typeName: first as a direct map key (the
// common case, where the template has no separate DisplayName), then by
// scanning for any template whose DisplayOrName equals typeName. Combine
// only ever has the IR's typeName to search by (spec §4.3 combine step 2),
// while Split registers templates under their internal Name — Lookup
// bridges the two.
func Lookup(templates map[string]*model.TemplateState, typeName string) (*model.TemplateState, bool) {
	if t, ok := templates[typeName]; ok {
		return t, true
	}
	for _, t := range templates {
		if t.DisplayOrName() == typeName {
			return t, true
		}
	}
	return nil, false
}

// GetOrDefault looks up a template by name, synthesizing a default template
// with that name when absent (spec §4.3 combine step 2).
func GetOrDefault(templates map[string]*model.TemplateState, name string) *model.TemplateState {
	if t, ok := templates[name]; ok {
		return t
	}
	return &model.TemplateState{Name: name, ExtensionData: model.NewExtensionData()}
}

// GetOrDefaultByTypeName is GetOrDefault using Lookup's typeName search,
// for combine's template resolution (spec §4.3 combine step 2).
func GetOrDefaultByTypeName(templates map[string]*model.TemplateState, typeName string) *model.TemplateState {
	if t, ok := Lookup(templates, typeName); ok {
		return t
	}
	return &model.TemplateState{Name: typeName, ExtensionData: model.NewExtensionData()}
}

// RegisterOrUpdate registers a new template, or, if one already exists under
// this name, marks it as a component template and copies in customProps
// when isDefinition is true (spec §4.3 split step 7).
func RegisterOrUpdate(templates map[string]*model.TemplateState, tpl *model.TemplateState, isDefinition bool) *model.TemplateState {
	existing, ok := templates[tpl.Name]
	if !ok {
		templates[tpl.Name] = tpl
		return tpl
	}
	if isDefinition {
		existing.IsComponentTemplate = true
		existing.CustomProperties = tpl.CustomProperties
	}
	return existing
}

// TestSuiteTemplateName is the template kind that marks a top-level screen
// as a test root rather than an ordinary screen: pkgio.Load and
// sourcelayout.Read relax I1 for its whole subtree, and SourceLayout shards it under Src/Tests/
// instead of Src/ (spec §3 I1, §4.5).
const TestSuiteTemplateName = "testsuite"

// IsTestSuiteTemplate reports whether typeName names the test-suite kind,
// matched case-insensitively (unlike Lookup, which matches names exactly).
func IsTestSuiteTemplate(typeName string) bool {
	return strings.EqualFold(typeName, TestSuiteTemplateName)
}

// Builtins returns the stock template table -make synthesizes PKGs against
// (spec's SUPPLEMENT section): a small set of control kinds every source
// tree can reference without a component definition of its own.
func Builtins() map[string]*model.TemplateState {
	names := []string{"screen", "label", "button", "rectangle", "gallery", "text_input", TestSuiteTemplateName}
	out := make(map[string]*model.TemplateState, len(names))
	for _, n := range names {
		out[n] = &model.TemplateState{
			Name:          n,
			DisplayName:   n,
			Version:       "1.0",
			ExtensionData: model.NewExtensionData(),
		}
	}
	return out
}
