package irsplit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/model"
	"github.com/gopasrc/pasrc/internal/templatestore"
)

// Combine rebuilds a raw PKG control subtree from an IR block plus whatever
// editor state was recorded for it, the inverse of Split (spec §4.3 combine
// steps 1-7). Returns the first fatal diagnostic encountered, if any; in
// that case the returned RawControl is nil.
func Combine(ctx *Context, block *model.IRBlock) (*model.RawControl, *diagnostics.Diagnostic) {
	raw, _, diag := combineNode(ctx, block)
	return raw, diag
}

type rawPair struct {
	raw  *model.RawControl
	pIdx int
}

func combineNode(ctx *Context, block *model.IRBlock) (*model.RawControl, int, *diagnostics.Diagnostic) {
	// Step 1: recurse first, then sort by each child's recorded
	// ControlState.ParentIndex; children without recorded state sort
	// first via the -1 default, stably.
	pairs := make([]rawPair, 0, len(block.Children))
	for _, child := range block.Children {
		childRaw, pIdx, diag := combineNode(ctx, child)
		if diag != nil {
			return nil, 0, diag
		}
		pairs = append(pairs, rawPair{raw: childRaw, pIdx: pIdx})
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].pIdx < pairs[j].pIdx })
	children := make([]*model.RawControl, len(pairs))
	for i, p := range pairs {
		children[i] = p.raw
	}

	cs, hasState := ctx.EditorStates[block.Name.Identifier]

	// Step 2: resolve the template by typeName, synthesizing a default
	// when the source tree references one this tool has never seen.
	tmpl := templatestore.GetOrDefaultByTypeName(ctx.Templates, block.Name.Kind.TypeName)
	templatestore.RegisterOrUpdate(ctx.Templates, tmpl, hasState && cs.IsComponentDefinition)

	// Step 3: recover or mint a unique id.
	uniqueID, ok := ctx.Entropy.ControlUniqueIDs[block.Name.Identifier]
	if !ok {
		uniqueID = ctx.Entropy.NextUniqueID()
		ctx.Entropy.ControlUniqueIDs[block.Name.Identifier] = uniqueID
	}

	// Step 7: adding properties to a component definition that weren't
	// present at unpack is disallowed.
	if hasState && cs.IsComponentDefinition {
		for _, p := range block.Properties {
			if cs.PropertyOrder(p.Identifier) == -1 {
				return nil, 0, diagnostics.New(diagnostics.UnsupportedChange,
					"property %q added to component definition %q after unpack", p.Identifier, block.Name.Identifier)
			}
		}
	}

	// Step 4: build the rule list.
	rules := make([]model.RawRule, 0, len(block.Properties)+len(block.Functions))
	for _, p := range block.Properties {
		rule := model.RawRule{Name: p.Identifier, InvariantScript: p.Expression}
		if hasState {
			if ps, ok := cs.FindProperty(p.Identifier); ok {
				rule.NameMap = ps.NameMap
				rule.RuleProviderType = ps.RuleProviderType
				rule.ExtensionData = ps.ExtensionData
				rules = append(rules, rule)
				continue
			}
		}
		rule.RuleProviderType = "Unknown"
		rule.ExtensionData = model.NewExtensionData()
		rules = append(rules, rule)
	}

	if len(block.Functions) > 0 {
		for _, fn := range block.Functions {
			this, ok := fn.FindMetadata(model.ThisPropertyMetadataKey)
			if !ok {
				return nil, 0, diagnostics.New(diagnostics.ParseError,
					"function %q on %q has no %s metadata", fn.Identifier, block.Name.Identifier, model.ThisPropertyMetadataKey)
			}
			rules = append(rules, model.RawRule{
				Name:             fn.Identifier,
				InvariantScript:  this,
				RuleProviderType: "Unknown",
				ExtensionData:    model.NewExtensionData(),
			})
			for _, m := range fn.Metadata {
				if m.Identifier == model.ThisPropertyMetadataKey {
					continue
				}
				rules = append(rules, model.RawRule{
					Name:             fn.Identifier + "_" + m.Identifier,
					InvariantScript:  m.DefaultExpression,
					RuleProviderType: "Unknown",
					ExtensionData:    model.NewExtensionData(),
				})
			}

			cp, ok := tmpl.FindCustomProperty(fn.Identifier)
			if !ok {
				return nil, 0, diagnostics.New(diagnostics.UnsupportedChange,
					"function %q has no matching custom property on template %q", fn.Identifier, tmpl.Name)
			}
			cp.DefaultRule = this
			cp.IsFunctionProperty = true
			for argIdx, arg := range fn.Args {
				sr := findScopeRule(cp, arg.Identifier)
				if sr == nil {
					return nil, 0, diagnostics.New(diagnostics.UnsupportedChange,
						"unknown parameter %q for function %q", arg.Identifier, fn.Identifier)
				}
				expr, ok := fn.FindMetadata(arg.Identifier)
				if !ok {
					return nil, 0, diagnostics.New(diagnostics.UnsupportedChange,
						"missing metadata for parameter %q of function %q", arg.Identifier, fn.Identifier)
				}
				sr.DefaultRule = expr
				sr.ScopePropertyDataType = arg.Kind.TypeName
				sr.ParameterIndex = argIdx
				sr.ParentPropertyName = fn.Identifier
			}
		}
	} else {
		for _, cp := range tmpl.FunctionTypedProperties() {
			for _, sr := range cp.ScopeRules {
				rules = append(rules, model.RawRule{
					Name:             sr.Name,
					InvariantScript:  sr.DefaultRule,
					RuleProviderType: "Unknown",
					ExtensionData:    model.NewExtensionData(),
				})
			}
		}
	}

	// Step 5: restore original per-control property order; unknown
	// properties (those the source tree added outside a definition, or
	// synthesized scope-rule/function rules) sort to the end, stably.
	if hasState {
		sort.SliceStable(rules, func(i, j int) bool {
			oi, oj := cs.PropertyOrder(rules[i].Name), cs.PropertyOrder(rules[j].Name)
			if oi == -1 {
				oi = len(cs.Properties)
			}
			if oj == -1 {
				oj = len(cs.Properties)
			}
			return oi < oj
		})
	}

	variant := ""
	if block.Name.Kind.OptionalVariant != nil {
		variant = *block.Name.Kind.OptionalVariant
	}
	styleName := fmt.Sprintf("default%sStyle", tmpl.DisplayOrName())
	parentIndex := -1
	isDefinition := false
	var extData model.ExtensionData
	if hasState {
		styleName = cs.StyleName
		parentIndex = cs.ParentIndex
		isDefinition = cs.IsComponentDefinition
		extData = cs.ExtensionData
	} else {
		extData = model.NewExtensionData()
	}

	// Step 6: attach component-definition metadata to the template.
	if isDefinition {
		childNames := make([]string, len(children))
		for i, c := range children {
			childNames[i] = c.Name
		}
		tmpl.ComponentDefinitionInfo = &model.ComponentDefinitionInfo{
			LastModifiedTimestamp: lastModifiedTimestamp(ctx, block.Name.Identifier),
			ChildOrder:            childNames,
		}
		tmpl.IsComponentTemplate = true
	}

	raw := &model.RawControl{
		Name:                  block.Name.Identifier,
		VariantName:           variant,
		UniqueID:              strconv.FormatInt(uniqueID, 10),
		TemplateName:          tmpl.Name,
		TemplateVersion:       tmpl.Version,
		StyleName:             styleName,
		IsComponentDefinition: isDefinition,
		Rules:                 rules,
		Children:              children,
	}
	raw.SetExtensionData(extData)

	return raw, parentIndex, nil
}

func findScopeRule(cp *model.CustomPropertyDef, name string) *model.ScopeRuleDef {
	for i := range cp.ScopeRules {
		if cp.ScopeRules[i].Name == name {
			return &cp.ScopeRules[i]
		}
	}
	return nil
}

// lastModifiedTimestamp recovers the component definition's preserved
// timestamp from the entropy side-channel, where Split's volatile-header
// capture stashes it keyed by control name (spec §3 "volatileProperties:
// sparse map of header fields").
func lastModifiedTimestamp(ctx *Context, controlName string) string {
	raw, ok := ctx.Entropy.VolatileProperties[controlName+".lastModifiedTimestamp"]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
