// Package dump renders token streams and syntax trees as YAML or JSON.
//
// Nodes are first lowered to a plain map/slice tree so that both
// encoders see the same shape. Positions are included for every node
// that carries a token; nil branches are omitted rather than rendered
// as null.
package dump

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sorrel-lang/sorrel/pkg/sorrel/ast"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
)

// Format selects the output encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// Tokens renders a token stream.
func Tokens(tokens []lexer.Token, format Format) (string, error) {
	out := make([]map[string]any, len(tokens))
	for i, tok := range tokens {
		out[i] = map[string]any{
			"type":    tok.Type.String(),
			"literal": tok.Literal,
			"line":    tok.Line,
			"column":  tok.Column,
		}
	}
	return encode(out, format)
}

// Node renders a syntax tree.
func Node(node ast.Node, format Format) (string, error) {
	return encode(lower(node), format)
}

func encode(tree any, format Format) (string, error) {
	switch format {
	case JSON:
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case YAML:
		data, err := yaml.Marshal(tree)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown dump format %q", format)
}

// node builds the common envelope for a tree node.
func node(kind string, tok lexer.Token, fields map[string]any) map[string]any {
	out := map[string]any{"node": kind}
	if tok.Line > 0 {
		out["line"] = tok.Line
		out["column"] = tok.Column
	}
	for k, v := range fields {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

func lowerAll(exprs []ast.Expression) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = lower(e)
	}
	return out
}

// lowerOpt lowers a child that may be absent. A nil any (rather than a
// typed-nil Expression) makes the envelope builder drop the field.
func lowerOpt(e ast.Expression) any {
	if e == nil {
		return nil
	}
	return lower(e)
}

func lowerIdent(id *ast.Identifier) any {
	if id == nil {
		return nil
	}
	return id.Value
}

// lower converts a syntax tree to a plain map/slice tree.
func lower(n ast.Node) any {
	switch n := n.(type) {
	case *ast.Literal:
		return node("literal", n.Token, map[string]any{
			"kind":  n.Kind.String(),
			"value": n.Value,
		})

	case *ast.Identifier:
		return node("identifier", n.Token, map[string]any{
			"name": n.Value,
		})

	case *ast.UnaryExpression:
		return node("unary", n.Token, map[string]any{
			"operator": n.Operator,
			"operand":  lower(n.Operand),
		})

	case *ast.BinaryExpression:
		return node("binary", n.Token, map[string]any{
			"operator": n.Operator,
			"left":     lower(n.Left),
			"right":    lower(n.Right),
		})

	case *ast.RelationalExpression:
		ops := make([]any, len(n.Operators))
		for i, op := range n.Operators {
			ops[i] = op.Literal
		}
		return node("relational", n.Token, map[string]any{
			"operators": ops,
			"operands":  lowerAll(n.Operands),
		})

	case *ast.ConditionalExpression:
		return node("conditional", n.Token, map[string]any{
			"condition": lower(n.Condition),
			"then":      lower(n.Then),
			"else":      lowerOpt(n.Else),
		})

	case *ast.WhileExpression:
		return node("while", n.Token, map[string]any{
			"condition": lower(n.Condition),
			"body":      lower(n.Body),
		})

	case *ast.Block:
		return node("block", n.Token, map[string]any{
			"expressions": lowerAll(n.Expressions),
		})

	case *ast.Assignment:
		fields := map[string]any{
			"target": lower(n.Target),
			"value":  lower(n.Value),
		}
		if n.IsDeclaration {
			fields["declaration"] = true
		}
		return node("assignment", n.Token, fields)

	case *ast.FunctionCall:
		return node("call", n.Token, map[string]any{
			"callee":    lower(n.Callee),
			"arguments": lowerAll(n.Arguments),
		})

	case *ast.Accessor:
		kind := "member"
		if n.Operator == lexer.AT {
			kind = "index"
		}
		return node("accessor", n.Token, map[string]any{
			"kind":   kind,
			"object": lower(n.Object),
			"member": lower(n.Member),
		})

	case *ast.Array:
		return node("array", n.Token, map[string]any{
			"elements": lowerAll(n.Elements),
		})

	case *ast.Map:
		entries := make([]any, len(n.Entries))
		for i, e := range n.Entries {
			entries[i] = map[string]any{
				"key":   lower(e.Key),
				"value": lower(e.Value),
			}
		}
		return node("map", n.Token, map[string]any{
			"entries": entries,
		})

	case *ast.Let:
		bindings := make([]any, len(n.Bindings))
		for i, b := range n.Bindings {
			binding := map[string]any{
				"name":  b.Name.Value,
				"value": lower(b.Value),
			}
			if b.Type != nil {
				binding["type"] = b.Type.Value
			}
			bindings[i] = binding
		}
		return node("let", n.Token, map[string]any{
			"bindings": bindings,
			"body":     lower(n.Body),
		})

	case *ast.FunctionDefinition:
		fields := map[string]any{
			"name":       n.Name.Value,
			"parameters": lowerParams(n.Parameters),
			"returns":    lowerIdent(n.ReturnType),
			"body":       lower(n.Body),
		}
		if n.Override {
			fields["override"] = true
		}
		if n.Private {
			fields["private"] = true
		}
		return node("function", n.Token, fields)

	case *ast.ClassDefinition:
		properties := make([]any, len(n.Properties))
		for i, p := range n.Properties {
			prop := map[string]any{
				"name": p.Name.Value,
				"type": p.Type.Value,
			}
			if p.Value != nil {
				prop["value"] = lower(p.Value)
			}
			if p.Final {
				prop["final"] = true
			}
			if p.Private {
				prop["private"] = true
			}
			properties[i] = prop
		}
		functions := make([]any, len(n.Functions))
		for i, f := range n.Functions {
			functions[i] = lower(f)
		}
		return node("class", n.Token, map[string]any{
			"name":       n.Name.Value,
			"parameters": lowerParams(n.Parameters),
			"extends":    lowerIdent(n.Superclass),
			"properties": properties,
			"functions":  functions,
		})

	case *ast.NewExpression:
		return node("new", n.Token, map[string]any{
			"class":     n.Class.Value,
			"arguments": lowerAll(n.Arguments),
		})

	case *ast.Program:
		classes := make([]any, len(n.Classes))
		for i, c := range n.Classes {
			classes[i] = lower(c)
		}
		return map[string]any{
			"node":    "program",
			"classes": classes,
		}
	}

	return map[string]any{"node": fmt.Sprintf("%T", n)}
}

func lowerParams(params []ast.Parameter) []any {
	out := make([]any, len(params))
	for i, p := range params {
		param := map[string]any{"name": p.Name.Value}
		if p.Type != nil {
			param["type"] = p.Type.Value
		}
		out[i] = param
	}
	return out
}
