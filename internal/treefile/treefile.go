// Package treefile reads expression trees described in YAML and builds them
// on an expr.Arena through the public builder API.
//
// A file holds one or more YAML documents:
//
//	name: discounted price
//	expr:
//	  binary:
//	    op: "*"
//	    left: {var: {name: price, type: Double}}
//	    right: {const: {type: real, value: 0.9}}
//	expect:
//	  type: Double
//	  sql: price * 0.9
//
// Each node has exactly one of the keys const, unary, binary, nary,
// function, var, param, empty (a missing child) or null_node (a node of
// the Null class).
package treefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is one expression tree and its expected properties.
type Document struct {
	Name   string  `yaml:"name"`
	Expr   Node    `yaml:"expr"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists the properties a tree is checked against. Empty fields are
// not checked.
type Expect struct {
	Type  string `yaml:"type,omitempty"`
	SQL   string `yaml:"sql,omitempty"`
	Valid *bool  `yaml:"valid,omitempty"`
	Error string `yaml:"error,omitempty"`
}

// Node describes one expression node.
type Node struct {
	Const    *Const    `yaml:"const,omitempty"`
	Unary    *Unary    `yaml:"unary,omitempty"`
	Binary   *Binary   `yaml:"binary,omitempty"`
	NArg     *NArg     `yaml:"nary,omitempty"`
	Function *Function `yaml:"function,omitempty"`
	Var      *Field    `yaml:"var,omitempty"`
	Param    *Field    `yaml:"param,omitempty"`
	Empty    bool      `yaml:"empty,omitempty"`
	NullNode bool      `yaml:"null_node,omitempty"`
}

// Const is a literal. Type is one of int, real, text, bool, null, hex,
// date, time or datetime; Value is parsed accordingly.
type Const struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value,omitempty"`
	// Token overrides the literal token derived from Type.
	Token string `yaml:"token,omitempty"`
}

// Unary is an operator applied to one argument.
type Unary struct {
	Op  string `yaml:"op"`
	Arg Node   `yaml:"arg"`
}

// Binary is an operator applied to two operands.
type Binary struct {
	Op    string `yaml:"op"`
	Left  Node   `yaml:"left"`
	Right Node   `yaml:"right"`
}

// NArg is a list or an n-ary operator. Class defaults to ArgumentList and
// Op to ",".
type NArg struct {
	Class string `yaml:"class,omitempty"`
	Op    string `yaml:"op,omitempty"`
	Args  []Node `yaml:"args"`
}

// Function is a call of a named function.
type Function struct {
	Name string `yaml:"name"`
	Args []Node `yaml:"args,omitempty"`
}

// Field is a column reference or a query parameter with an optional type.
type Field struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
}

// ParseError reports a document that could not be decoded or built.
type ParseError struct {
	File     string
	Document int
	Message  string
	Err      error
}

func (e *ParseError) Error() string {
	where := e.File
	if where == "" {
		where = "<input>"
	}
	return fmt.Sprintf("%s: document %d: %s", where, e.Document, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load decodes all documents of r. Unknown keys are rejected.
func Load(r io.Reader) ([]Document, error) {
	return load("", r)
}

// LoadFile decodes all documents of the file at path.
func LoadFile(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tree file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return load(path, f)
}

func load(file string, r io.Reader) ([]Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var docs []Document
	for i := 1; ; i++ {
		var doc Document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, &ParseError{File: file, Document: i, Message: err.Error(), Err: err}
		}
		if doc.Name == "" {
			doc.Name = fmt.Sprintf("#%d", i)
		}
		docs = append(docs, doc)
	}
}
