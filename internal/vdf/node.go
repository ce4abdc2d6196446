// Package vdf decodes Valve KeyValues documents in their text and binary encodings.
//
// Only the read path is implemented. A decoded document is a tree of *Node values that
// preserves sibling order and duplicate names exactly as they appear on the wire.
package vdf

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Type is the wire type of a node. The values match the binary encoding's type tags.
type Type byte

const (
	TypeObject     Type = 0x00
	TypeString     Type = 0x01
	TypeInt32      Type = 0x02
	TypeFloat32    Type = 0x03
	TypePointer    Type = 0x04
	TypeWideString Type = 0x05
	TypeColor      Type = 0x06
	TypeUint64     Type = 0x07
	typeEnd        Type = 0x08
	TypeInt64      Type = 0x0A
	typeAltEnd     Type = 0x0B
)

func (t Type) String() string {
	switch t {
	case TypeObject:
		return "object"
	case TypeString:
		return "string"
	case TypeInt32:
		return "int32"
	case TypeFloat32:
		return "float32"
	case TypePointer:
		return "pointer"
	case TypeWideString:
		return "wstring"
	case TypeColor:
		return "color"
	case TypeUint64:
		return "uint64"
	case TypeInt64:
		return "int64"
	default:
		return fmt.Sprintf("type(0x%02x)", byte(t))
	}
}

// Encoding selects the wire format handed to Parse.
type Encoding int

const (
	EncodingText Encoding = iota
	EncodingBinary
)

// ErrMalformed is wrapped by every decoding failure.
var ErrMalformed = errors.New("malformed document")

// SyntaxError describes where a document stopped making sense.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("vdf: %s at offset %d", e.Msg, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformed }

// Node is one named entry of a document. Objects carry Children and a nil Value;
// scalars carry a Value and nil Children.
//
// Value holds string for TypeString and TypeWideString, int32 for TypeInt32 and
// TypePointer, float32 for TypeFloat32, color.RGBA for TypeColor, uint64 for
// TypeUint64 and int64 for TypeInt64.
type Node struct {
	Name     string
	Type     Type
	Value    any
	Children []*Node
}

// NewObject returns an object node holding children.
func NewObject(name string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Name: name, Type: TypeObject, Children: children}
}

// NewString returns a string scalar.
func NewString(name, value string) *Node {
	return &Node{Name: name, Type: TypeString, Value: value}
}

// IsObject reports whether n holds children rather than a scalar.
func (n *Node) IsObject() bool {
	return n != nil && n.Type == TypeObject
}

// Child returns the first child whose name matches, ignoring case.
func (n *Node) Child(name string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}
	for _, c := range n.Children {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return nil, false
}

// Object returns the first child object with the given name.
func (n *Node) Object(name string) (*Node, bool) {
	c, ok := n.Child(name)
	if !ok || !c.IsObject() {
		return nil, false
	}
	return c, true
}

// Path walks nested objects by name, e.g. Path("FileSystem", "SteamAppId").
func (n *Node) Path(names ...string) (*Node, bool) {
	cur := n
	for _, name := range names {
		next, ok := cur.Child(name)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Color returns the value of a TypeColor node.
func (n *Node) Color() (color.RGBA, bool) {
	if n == nil {
		return color.RGBA{}, false
	}
	c, ok := n.Value.(color.RGBA)
	return c, ok
}

// Parse decodes data using the given encoding.
func Parse(data []byte, enc Encoding) (*Node, error) {
	switch enc {
	case EncodingText:
		return ParseText(data)
	case EncodingBinary:
		return ParseBinary(data)
	default:
		return nil, fmt.Errorf("vdf: unknown encoding %d", enc)
	}
}
