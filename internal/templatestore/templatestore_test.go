package templatestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopasrc/pasrc/internal/model"
)

func TestGetAndLookup(t *testing.T) {
	templates := map[string]*model.TemplateState{
		"label": {Name: "label", DisplayName: "Label"},
		"btn":   {Name: "btn", DisplayName: "button"},
	}

	tpl, ok := Get(templates, "label")
	require.True(t, ok)
	assert.Equal(t, "Label", tpl.DisplayName)

	_, ok = Get(templates, "missing")
	assert.False(t, ok)

	byDirect, ok := Lookup(templates, "btn")
	require.True(t, ok)
	assert.Equal(t, "btn", byDirect.Name)

	byDisplay, ok := Lookup(templates, "button")
	require.True(t, ok)
	assert.Equal(t, "btn", byDisplay.Name)

	_, ok = Lookup(templates, "nope")
	assert.False(t, ok)
}

func TestGetOrDefaultSynthesizesMissing(t *testing.T) {
	templates := map[string]*model.TemplateState{}
	tpl := GetOrDefault(templates, "rectangle")
	assert.Equal(t, "rectangle", tpl.Name)

	templates["rectangle"] = &model.TemplateState{Name: "rectangle", Version: "2.0"}
	tpl2 := GetOrDefault(templates, "rectangle")
	assert.Equal(t, "2.0", tpl2.Version)
}

func TestGetOrDefaultByTypeNameUsesLookup(t *testing.T) {
	templates := map[string]*model.TemplateState{
		"comp1": {Name: "comp1", DisplayName: "MyComponent"},
	}

	tpl := GetOrDefaultByTypeName(templates, "MyComponent")
	assert.Equal(t, "comp1", tpl.Name)

	synthesized := GetOrDefaultByTypeName(templates, "gallery")
	assert.Equal(t, "gallery", synthesized.Name)
}

func TestRegisterOrUpdate(t *testing.T) {
	templates := map[string]*model.TemplateState{}

	first := RegisterOrUpdate(templates, &model.TemplateState{Name: "comp1"}, false)
	assert.Same(t, templates["comp1"], first)
	assert.False(t, templates["comp1"].IsComponentTemplate)

	update := &model.TemplateState{
		Name:             "comp1",
		CustomProperties: []model.CustomPropertyDef{{Name: "Value"}},
	}
	second := RegisterOrUpdate(templates, update, true)
	assert.True(t, second.IsComponentTemplate)
	require.Len(t, second.CustomProperties, 1)
	assert.Equal(t, "Value", second.CustomProperties[0].Name)
	assert.Same(t, templates["comp1"], second)
}

func TestBuiltinsCoversStockKinds(t *testing.T) {
	b := Builtins()
	for _, name := range []string{"screen", "label", "button", "rectangle", "gallery", "text_input"} {
		tpl, ok := b[name]
		require.True(t, ok, "missing builtin %q", name)
		assert.Equal(t, name, tpl.Name)
		assert.NotNil(t, tpl.ExtensionData.Values)
	}
}
