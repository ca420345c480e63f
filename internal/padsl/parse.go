package padsl

import (
	"fmt"
	"strings"

	"github.com/gopasrc/pasrc/internal/model"
)

type lineTok struct {
	depth int
	text  string
}

// Parse reads a .pa.yaml-style textual block back into an IRBlock, the
// inverse of Render.
func Parse(src string) (*model.IRBlock, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("padsl: empty source")
	}
	p := &parser{toks: toks}
	block, err := p.parseBlock(0)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("padsl: trailing content after the root block: %q", p.toks[p.pos].text)
	}
	return block, nil
}

func tokenize(src string) ([]lineTok, error) {
	var toks []lineTok
	for i, raw := range strings.Split(src, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		spaces := 0
		for spaces < len(raw) && raw[spaces] == ' ' {
			spaces++
		}
		if spaces%indentUnit != 0 {
			return nil, fmt.Errorf("padsl: line %d: indentation not a multiple of %d spaces", i+1, indentUnit)
		}
		toks = append(toks, lineTok{depth: spaces / indentUnit, text: strings.TrimSpace(raw)})
	}
	return toks, nil
}

type parser struct {
	toks []lineTok
	pos  int
}

func (p *parser) parseBlock(depth int) (*model.IRBlock, error) {
	if p.pos >= len(p.toks) || p.toks[p.pos].depth != depth {
		return nil, fmt.Errorf("padsl: expected block header at depth %d", depth)
	}
	name, err := parseHeader(p.toks[p.pos].text)
	if err != nil {
		return nil, err
	}
	p.pos++

	block := &model.IRBlock{Name: name}
	for p.pos < len(p.toks) && p.toks[p.pos].depth > depth {
		tok := p.toks[p.pos]
		if tok.depth != depth+1 {
			return nil, fmt.Errorf("padsl: unexpected indentation at %q", tok.text)
		}
		switch classify(tok.text) {
		case lineFunction:
			fn, err := p.parseFunc(depth + 1)
			if err != nil {
				return nil, err
			}
			block.Functions = append(block.Functions, *fn)
		case lineBlock:
			child, err := p.parseBlock(depth + 1)
			if err != nil {
				return nil, err
			}
			block.Children = append(block.Children, child)
		case lineProperty:
			prop, err := parseProperty(tok.text)
			if err != nil {
				return nil, err
			}
			block.Properties = append(block.Properties, prop)
			p.pos++
		default:
			return nil, fmt.Errorf("padsl: unrecognized line %q", tok.text)
		}
	}
	return block, nil
}

func (p *parser) parseFunc(depth int) (*model.FuncNode, error) {
	tok := p.toks[p.pos]
	identifier, args, err := parseFuncHeader(tok.text)
	if err != nil {
		return nil, err
	}
	p.pos++

	fn := &model.FuncNode{Identifier: identifier, Args: args}
	for p.pos < len(p.toks) && p.toks[p.pos].depth == depth+1 {
		prop, err := parseProperty(p.toks[p.pos].text)
		if err != nil {
			return nil, err
		}
		fn.Metadata = append(fn.Metadata, model.ArgMeta{Identifier: prop.Identifier, DefaultExpression: prop.Expression})
		p.pos++
	}
	return fn, nil
}

type lineKind int

const (
	lineProperty lineKind = iota
	lineFunction
	lineBlock
)

func classify(text string) lineKind {
	if !strings.HasSuffix(text, ":") {
		return lineProperty
	}
	body := text[:len(text)-1]
	if idx := strings.Index(body, "("); idx >= 0 && strings.HasSuffix(body, ")") {
		return lineFunction
	}
	return lineBlock
}

func parseHeader(text string) (model.TypedName, error) {
	if !strings.HasSuffix(text, ":") {
		return model.TypedName{}, fmt.Errorf("padsl: block header %q missing trailing colon", text)
	}
	body := text[:len(text)-1]
	parts := strings.SplitN(body, " As ", 2)
	if len(parts) != 2 {
		return model.TypedName{}, fmt.Errorf("padsl: block header %q missing ' As '", text)
	}
	identifier := strings.TrimSpace(parts[0])
	typePart := strings.TrimSpace(parts[1])

	kind := model.Kind{TypeName: typePart}
	if dot := strings.Index(typePart, "."); dot >= 0 {
		kind.TypeName = typePart[:dot]
		variant := typePart[dot+1:]
		kind.OptionalVariant = &variant
	}
	return model.TypedName{Identifier: identifier, Kind: kind}, nil
}

func parseFuncHeader(text string) (string, []model.TypedName, error) {
	if !strings.HasSuffix(text, "):") {
		return "", nil, fmt.Errorf("padsl: function header %q missing '):'", text)
	}
	open := strings.Index(text, "(")
	if open < 0 {
		return "", nil, fmt.Errorf("padsl: function header %q missing '('", text)
	}
	identifier := text[:open]
	argsPart := text[open+1 : len(text)-2]

	var args []model.TypedName
	if strings.TrimSpace(argsPart) != "" {
		for _, a := range strings.Split(argsPart, ",") {
			seg := strings.SplitN(strings.TrimSpace(a), " As ", 2)
			if len(seg) != 2 {
				return "", nil, fmt.Errorf("padsl: function arg %q missing ' As '", a)
			}
			args = append(args, model.TypedName{
				Identifier: strings.TrimSpace(seg[0]),
				Kind:       model.Kind{TypeName: strings.TrimSpace(seg[1])},
			})
		}
	}
	return identifier, args, nil
}

func parseProperty(text string) (model.PropNode, error) {
	parts := strings.SplitN(text, " = ", 2)
	if len(parts) != 2 {
		return model.PropNode{}, fmt.Errorf("padsl: property line %q missing ' = '", text)
	}
	return model.PropNode{Identifier: strings.TrimSpace(parts[0]), Expression: parts[1]}, nil
}
