package irsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/model"
)

func TestCombineRestoresPropertyOrder(t *testing.T) {
	ctx := newTestContext()
	ctx.EditorStates["Label1"] = &model.ControlState{
		Name: "Label1",
		Properties: []model.PropertyState{
			{PropertyName: "Y"},
			{PropertyName: "X"},
		},
		ExtensionData: model.NewExtensionData(),
	}

	block := &model.IRBlock{
		Name: model.TypedName{Identifier: "Label1", Kind: model.Kind{TypeName: "label"}},
		Properties: []model.PropNode{
			{Identifier: "X", Expression: "1"},
			{Identifier: "Y", Expression: "2"},
		},
	}

	raw, diag := Combine(ctx, block)
	require.Nil(t, diag)
	require.Len(t, raw.Rules, 2)
	assert.Equal(t, "Y", raw.Rules[0].Name)
	assert.Equal(t, "X", raw.Rules[1].Name)
}

func TestCombineRejectsNewPropertyOnComponentDefinition(t *testing.T) {
	ctx := newTestContext()
	ctx.EditorStates["Comp1"] = &model.ControlState{
		Name:                  "Comp1",
		IsComponentDefinition: true,
		Properties:            []model.PropertyState{{PropertyName: "X"}},
		ExtensionData:         model.NewExtensionData(),
	}

	block := &model.IRBlock{
		Name: model.TypedName{Identifier: "Comp1", Kind: model.Kind{TypeName: "label"}},
		Properties: []model.PropNode{
			{Identifier: "X", Expression: "1"},
			{Identifier: "NewOne", Expression: "2"},
		},
	}

	_, diag := Combine(ctx, block)
	require.NotNil(t, diag)
	assert.Equal(t, diagnostics.UnsupportedChange, diag.Code)
}

func TestCombineMintsFreshUniqueIDWhenEntropyMissing(t *testing.T) {
	ctx := newTestContext()
	ctx.Entropy.ControlUniqueIDs["Other"] = 10

	block := &model.IRBlock{Name: model.TypedName{Identifier: "New1", Kind: model.Kind{TypeName: "label"}}}
	raw, diag := Combine(ctx, block)
	require.Nil(t, diag)
	assert.Equal(t, "11", raw.UniqueID)
}

func TestCombineDefaultsStyleNameWhenNoState(t *testing.T) {
	ctx := newTestContext()
	block := &model.IRBlock{Name: model.TypedName{Identifier: "Orphan", Kind: model.Kind{TypeName: "label"}}}
	raw, diag := Combine(ctx, block)
	require.Nil(t, diag)
	assert.Equal(t, "defaultlabelStyle", raw.StyleName)
}
