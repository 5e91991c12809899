package programfmt

import (
	"fmt"

	"github.com/opal-lang/mirror/core/ast"
	"github.com/opal-lang/mirror/core/invariant"
)

// Node type tags
const (
	tagSignature  = "signature"
	tagExample    = "example"
	tagExpression = "expression"
	tagPrimitive  = "primitive"
	tagList       = "list"
	tagDict       = "dict"
	tagBool       = "bool"
	tagNumber     = "number"
	tagString     = "string"
)

func fromStatement(stmt ast.Statement) StatementNode {
	switch s := stmt.(type) {
	case ast.Signature:
		params := make([]ParamNode, len(s.Parameters))
		for i, p := range s.Parameters {
			params[i] = ParamNode{Name: p.Name, Type: fromType(p.Type)}
		}
		ret := fromType(s.ReturnType)
		return StatementNode{Type: tagSignature, Name: s.Name, Parameters: params, ReturnType: &ret}
	case ast.Example:
		args := make([]ValueNode, len(s.Arguments))
		for i, a := range s.Arguments {
			args[i] = fromArgument(a)
		}
		result := fromArgument(s.Result)
		return StatementNode{Type: tagExample, Name: s.Name, Arguments: args, Result: &result}
	case ast.Expression:
		call := fromArgument(s)
		return StatementNode{Type: tagExpression, Name: s.Name, Arguments: call.Arguments}
	default:
		invariant.Unreachable("statement variant %T", stmt)
		return StatementNode{}
	}
}

func fromType(typ ast.Type) TypeNode {
	switch t := typ.(type) {
	case ast.PrimitiveType:
		return TypeNode{Type: tagPrimitive, Name: t.Name}
	case ast.ListType:
		elem := fromType(t.Elem)
		return TypeNode{Type: tagList, Elem: &elem}
	case ast.DictType:
		key, value := fromType(t.Key), fromType(t.Value)
		return TypeNode{Type: tagDict, Key: &key, Value: &value}
	default:
		invariant.Unreachable("type variant %T", typ)
		return TypeNode{}
	}
}

func fromArgument(arg ast.Argument) ValueNode {
	switch a := arg.(type) {
	case ast.BoolLiteral:
		return ValueNode{Type: tagBool, Bool: a.Value}
	case ast.NumberLiteral:
		return ValueNode{Type: tagNumber, Number: a.Value}
	case ast.StringLiteral:
		return ValueNode{Type: tagString, String: a.Raw}
	case ast.ListLiteral:
		items := make([]ValueNode, len(a.Items))
		for i, item := range a.Items {
			items[i] = fromArgument(item)
		}
		return ValueNode{Type: tagList, Items: items}
	case ast.DictLiteral:
		key, value := fromArgument(a.Key), fromArgument(a.Value)
		return ValueNode{Type: tagDict, Key: &key, Value: &value}
	case ast.Expression:
		args := make([]ValueNode, len(a.Arguments))
		for i, nested := range a.Arguments {
			args[i] = fromArgument(nested)
		}
		return ValueNode{Type: tagExpression, Name: a.Name, Arguments: args}
	default:
		invariant.Unreachable("argument variant %T", arg)
		return ValueNode{}
	}
}

func toStatement(node StatementNode) (ast.Statement, error) {
	switch node.Type {
	case tagSignature:
		if node.ReturnType == nil {
			return nil, fmt.Errorf("signature %s: missing return type", node.Name)
		}
		params := make([]ast.Parameter, 0, len(node.Parameters))
		for _, p := range node.Parameters {
			typ, err := toType(p.Type)
			if err != nil {
				return nil, fmt.Errorf("signature %s parameter %s: %w", node.Name, p.Name, err)
			}
			params = append(params, ast.Parameter{Name: p.Name, Type: typ})
		}
		ret, err := toType(*node.ReturnType)
		if err != nil {
			return nil, fmt.Errorf("signature %s return type: %w", node.Name, err)
		}
		return ast.Signature{Name: node.Name, Parameters: params, ReturnType: ret}, nil

	case tagExample:
		if node.Result == nil {
			return nil, fmt.Errorf("example %s: missing result", node.Name)
		}
		args := make([]ast.Literal, 0, len(node.Arguments))
		for i, a := range node.Arguments {
			lit, err := toLiteral(a)
			if err != nil {
				return nil, fmt.Errorf("example %s argument %d: %w", node.Name, i, err)
			}
			args = append(args, lit)
		}
		result, err := toLiteral(*node.Result)
		if err != nil {
			return nil, fmt.Errorf("example %s result: %w", node.Name, err)
		}
		return ast.Example{Name: node.Name, Arguments: args, Result: result}, nil

	case tagExpression:
		return toExpression(ValueNode{Type: tagExpression, Name: node.Name, Arguments: node.Arguments})

	default:
		return nil, fmt.Errorf("unknown statement type %q", node.Type)
	}
}

func toType(node TypeNode) (ast.Type, error) {
	switch node.Type {
	case tagPrimitive:
		switch node.Name {
		case ast.TypeString, ast.TypeNumber, ast.TypeBool:
			return ast.PrimitiveType{Name: node.Name}, nil
		}
		return nil, fmt.Errorf("unknown primitive type %q", node.Name)
	case tagList:
		if node.Elem == nil {
			return nil, fmt.Errorf("list type without element type")
		}
		elem, err := toType(*node.Elem)
		if err != nil {
			return nil, err
		}
		return ast.ListType{Elem: elem}, nil
	case tagDict:
		if node.Key == nil || node.Value == nil {
			return nil, fmt.Errorf("dict type needs key and value types")
		}
		key, err := toType(*node.Key)
		if err != nil {
			return nil, err
		}
		value, err := toType(*node.Value)
		if err != nil {
			return nil, err
		}
		return ast.DictType{Key: key, Value: value}, nil
	default:
		return nil, fmt.Errorf("unknown type node %q", node.Type)
	}
}

func toLiteral(node ValueNode) (ast.Literal, error) {
	switch node.Type {
	case tagBool:
		return ast.BoolLiteral{Value: node.Bool}, nil
	case tagNumber:
		return ast.NumberLiteral{Value: node.Number}, nil
	case tagString:
		return ast.StringLiteral{Raw: node.String}, nil
	case tagList:
		items := make([]ast.Literal, 0, len(node.Items))
		for _, item := range node.Items {
			lit, err := toLiteral(item)
			if err != nil {
				return nil, err
			}
			items = append(items, lit)
		}
		return ast.ListLiteral{Items: items}, nil
	case tagDict:
		if node.Key == nil || node.Value == nil {
			return nil, fmt.Errorf("dict literal needs key and value")
		}
		key, err := toLiteral(*node.Key)
		if err != nil {
			return nil, err
		}
		value, err := toLiteral(*node.Value)
		if err != nil {
			return nil, err
		}
		return ast.DictLiteral{Key: key, Value: value}, nil
	default:
		return nil, fmt.Errorf("unknown literal type %q", node.Type)
	}
}

func toExpression(node ValueNode) (ast.Expression, error) {
	args := make([]ast.Argument, 0, len(node.Arguments))
	for i, a := range node.Arguments {
		if a.Type == tagExpression {
			nested, err := toExpression(a)
			if err != nil {
				return ast.Expression{}, err
			}
			args = append(args, nested)
			continue
		}
		lit, err := toLiteral(a)
		if err != nil {
			return ast.Expression{}, fmt.Errorf("call to %s argument %d: %w", node.Name, i, err)
		}
		args = append(args, lit)
	}
	return ast.Expression{Name: node.Name, Arguments: args}, nil
}
