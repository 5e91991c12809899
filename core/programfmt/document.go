// Package programfmt defines the interchange formats of a parsed program.
//
// A Document is the JSON form handed to downstream consumers: every node
// carries a "type" tag naming its variant. The same node structs encode to
// canonical CBOR, whose BLAKE2b digest is the program's fingerprint.
package programfmt

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/opal-lang/mirror/core/ast"
)

// Version is the document format version. Decode accepts any document with
// the same major version.
const Version = "v1.0.0"

// Document is the JSON form of a program
type Document struct {
	Version    string          `json:"version"`
	Statements []StatementNode `json:"statements"`
}

// StatementNode is a tagged statement: "signature", "example" or "expression"
type StatementNode struct {
	Type       string      `json:"type"`
	Name       string      `json:"name"`
	Parameters []ParamNode `json:"parameters,omitempty"` // signature
	ReturnType *TypeNode   `json:"returnType,omitempty"` // signature
	Arguments  []ValueNode `json:"arguments,omitempty"`  // example, expression
	Result     *ValueNode  `json:"result,omitempty"`     // example
}

// ParamNode is a signature parameter
type ParamNode struct {
	Name string   `json:"name"`
	Type TypeNode `json:"type"`
}

// TypeNode is a tagged type: "primitive", "list" or "dict"
type TypeNode struct {
	Type  string    `json:"type"`
	Name  string    `json:"name,omitempty"`  // primitive
	Elem  *TypeNode `json:"elem,omitempty"`  // list
	Key   *TypeNode `json:"key,omitempty"`   // dict
	Value *TypeNode `json:"value,omitempty"` // dict
}

// ValueNode is a tagged literal ("bool", "number", "string", "list", "dict")
// or, inside expression arguments, a nested "expression"
type ValueNode struct {
	Type      string      `json:"type"`
	Bool      bool        `json:"bool,omitempty"`
	Number    float64     `json:"number,omitempty"`
	String    string      `json:"string,omitempty"`
	Items     []ValueNode `json:"items,omitempty"`     // list
	Key       *ValueNode  `json:"key,omitempty"`       // dict
	Value     *ValueNode  `json:"value,omitempty"`     // dict
	Name      string      `json:"name,omitempty"`      // expression
	Arguments []ValueNode `json:"arguments,omitempty"` // expression
}

// NewDocument converts program into its document form
func NewDocument(program ast.Program) *Document {
	doc := &Document{
		Version:    Version,
		Statements: make([]StatementNode, 0, len(program)),
	}
	for _, stmt := range program {
		doc.Statements = append(doc.Statements, fromStatement(stmt))
	}
	return doc
}

// Program converts the document back into an AST
func (d *Document) Program() (ast.Program, error) {
	program := make(ast.Program, 0, len(d.Statements))
	for i, node := range d.Statements {
		stmt, err := toStatement(node)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		program = append(program, stmt)
	}
	return program, nil
}

// Encode renders program as indented JSON
func Encode(program ast.Program) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(program), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

// Decode validates data against the document schema, checks the format
// version and converts it back into a program.
func Decode(data []byte) (ast.Program, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	return doc.Program()
}

func checkVersion(version string) error {
	if !semver.IsValid(version) {
		return fmt.Errorf("invalid document version %q", version)
	}
	if semver.Major(version) != semver.Major(Version) {
		return fmt.Errorf("unsupported document version %s: this build reads %s.x", version, semver.Major(Version))
	}
	return nil
}
