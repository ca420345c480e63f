package irsplit

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/gopasrc/pasrc/internal/editorstate"
	"github.com/gopasrc/pasrc/internal/model"
	"github.com/gopasrc/pasrc/internal/templatestore"
)

// Split decomposes a raw PKG control subtree into an IR tree, recording
// editor state, template updates, and entropy as side effects on ctx (spec
// §4.3 split steps 1-9). insideTestSuite relaxes I1 for this whole subtree;
// pkgio.Load sets it true for a top-level screen whose template is the
// test-suite kind (templatestore.IsTestSuiteTemplate).
func Split(ctx *Context, raw *model.RawControl, insideTestSuite bool) *model.IRBlock {
	block, _ := splitNode(ctx, raw, 0, raw.Name, insideTestSuite)
	return block
}

type childPair struct {
	block *model.IRBlock
	z     float64
}

func splitNode(ctx *Context, raw *model.RawControl, index int, topParentName string, insideTestSuite bool) (*model.IRBlock, float64) {
	// Step 1: recurse first, capturing each child's original sibling
	// position as its ControlState.ParentIndex before the zIndex sort
	// below reorders the slice for textual serialization (I4).
	pairs := make([]childPair, 0, len(raw.Children))
	for i, child := range raw.Children {
		childBlock, z := splitNode(ctx, child, i, topParentName, insideTestSuite)
		pairs = append(pairs, childPair{block: childBlock, z: z})
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].z < pairs[j].z })
	children := make([]*model.IRBlock, len(pairs))
	for i, p := range pairs {
		children[i] = p.block
	}

	isDefinition := raw.IsComponentDefinition
	tmpl := templatestore.GetOrDefault(ctx.Templates, raw.TemplateName)

	customPropsToHide := map[string]bool{}
	for _, cp := range tmpl.FunctionTypedProperties() {
		if isDefinition {
			customPropsToHide[cp.Name] = true
		}
		for _, sr := range cp.ScopeRules {
			customPropsToHide[sr.Name] = true
		}
	}

	var funcNodes []model.FuncNode
	if isDefinition {
		for i := range tmpl.CustomProperties {
			cp := &tmpl.CustomProperties[i]
			if !cp.IsFunctionProperty {
				continue
			}
			sort.SliceStable(cp.ScopeRules, func(a, b int) bool {
				return cp.ScopeRules[a].ParameterIndex < cp.ScopeRules[b].ParameterIndex
			})
			args := make([]model.TypedName, 0, len(cp.ScopeRules))
			metadata := []model.ArgMeta{{
				Identifier:        model.ThisPropertyMetadataKey,
				DefaultExpression: NormalizeExpr(cp.DefaultRule),
			}}
			for j := range cp.ScopeRules {
				sr := &cp.ScopeRules[j]
				args = append(args, model.TypedName{
					Identifier: sr.Name,
					Kind:       model.Kind{TypeName: sr.ScopePropertyDataType},
				})
				metadata = append(metadata, model.ArgMeta{
					Identifier:        sr.Name,
					DefaultExpression: NormalizeExpr(sr.DefaultRule),
				})
				sr.Clear()
			}
			funcNodes = append(funcNodes, model.FuncNode{
				Identifier: cp.Name,
				Args:       args,
				Metadata:   metadata,
			})
		}
	}

	var propNodes []model.PropNode
	var propStates []model.PropertyState
	for _, rule := range raw.Rules {
		propStates = append(propStates, model.PropertyState{
			PropertyName:     rule.Name,
			NameMap:          rule.NameMap,
			RuleProviderType: rule.RuleProviderType,
			ExtensionData:    rule.ExtensionData,
		})
		if customPropsToHide[rule.Name] {
			continue
		}
		propNodes = append(propNodes, model.PropNode{
			Identifier: rule.Name,
			Expression: NormalizeExpr(rule.InvariantScript),
		})
	}

	var variant *string
	if raw.VariantName != "" {
		v := raw.VariantName
		variant = &v
	}
	block := &model.IRBlock{
		Name: model.TypedName{
			Identifier: raw.Name,
			Kind: model.Kind{
				TypeName:        tmpl.DisplayOrName(),
				OptionalVariant: variant,
			},
		},
		Properties: propNodes,
		Functions:  funcNodes,
		Children:   children,
	}

	templatestore.RegisterOrUpdate(ctx.Templates, tmpl, isDefinition)

	if id, err := strconv.ParseInt(raw.UniqueID, 10, 64); err == nil {
		ctx.Entropy.ControlUniqueIDs[raw.Name] = id
	}
	// Stash a component definition's timestamp where Combine's
	// lastModifiedTimestamp looks for it.
	if isDefinition && tmpl.ComponentDefinitionInfo != nil && tmpl.ComponentDefinitionInfo.LastModifiedTimestamp != "" {
		if b, err := json.Marshal(tmpl.ComponentDefinitionInfo.LastModifiedTimestamp); err == nil {
			ctx.Entropy.VolatileProperties[raw.Name+".lastModifiedTimestamp"] = b
		}
	}

	cs := &model.ControlState{
		Name:                  raw.Name,
		TopParentName:         topParentName,
		PublishOrderIndex:     index,
		ParentIndex:           index,
		StyleName:             raw.StyleName,
		Properties:            propStates,
		ExtensionData:         raw.ExtensionData(),
		IsComponentDefinition: isDefinition,
	}
	if diag := editorstate.Register(ctx.EditorStates, cs, insideTestSuite, false); diag != nil && ctx.Diags != nil {
		ctx.Diags.Add(diag)
	}

	return block, zIndexOf(raw)
}
