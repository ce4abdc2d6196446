package vdf

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// binaryDecoder walks the binary encoding. When keys is non-nil, entry names are
// int32 indices into keys instead of NUL-terminated strings.
type binaryDecoder struct {
	buf  []byte
	pos  int
	keys []string
}

// ParseBinary decodes a binary-encoded document and returns its first top-level node.
// Decoding stops at the end marker that closes that node; trailing bytes are ignored.
func ParseBinary(data []byte) (*Node, error) {
	d := &binaryDecoder{buf: data}
	return d.decodeRoot()
}

// ParseBinaryIndexed decodes a binary document whose entry names are stored as
// indices into a shared string table.
func ParseBinaryIndexed(data []byte, keys []string) (*Node, error) {
	if keys == nil {
		keys = []string{}
	}
	d := &binaryDecoder{buf: data, keys: keys}
	return d.decodeRoot()
}

func (d *binaryDecoder) decodeRoot() (*Node, error) {
	tag, err := d.readByte()
	if err != nil {
		return nil, err
	}
	if Type(tag) == typeEnd || Type(tag) == typeAltEnd {
		return nil, &SyntaxError{Offset: d.pos - 1, Msg: "empty document"}
	}
	return d.decodeEntry(Type(tag), 0)
}

// decodeObject reads entries until the end marker and consumes exactly that marker.
func (d *binaryDecoder) decodeObject(depth int) ([]*Node, error) {
	if depth > maxDepth {
		return nil, &SyntaxError{Offset: d.pos, Msg: "nesting too deep"}
	}

	children := []*Node{}
	for {
		tag, err := d.readByte()
		if err != nil {
			return nil, err
		}
		if Type(tag) == typeEnd || Type(tag) == typeAltEnd {
			return children, nil
		}
		child, err := d.decodeEntry(Type(tag), depth)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
}

func (d *binaryDecoder) decodeEntry(t Type, depth int) (*Node, error) {
	tagOffset := d.pos - 1
	if !knownType(t) {
		return nil, &SyntaxError{Offset: tagOffset, Msg: fmt.Sprintf("unknown type tag 0x%02x", byte(t))}
	}

	name, err := d.readKey()
	if err != nil {
		return nil, err
	}
	n := &Node{Name: name, Type: t}

	switch t {
	case TypeObject:
		n.Children, err = d.decodeObject(depth + 1)
	case TypeString:
		n.Value, err = d.readCString()
	case TypeInt32, TypePointer:
		var v uint32
		v, err = d.readUint32()
		n.Value = int32(v)
	case TypeFloat32:
		var v uint32
		v, err = d.readUint32()
		n.Value = math.Float32frombits(v)
	case TypeWideString:
		n.Value, err = d.readWideString()
	case TypeColor:
		var b []byte
		b, err = d.read(4)
		if err == nil {
			n.Value = color.RGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
		}
	case TypeUint64:
		n.Value, err = d.readUint64()
	case TypeInt64:
		var v uint64
		v, err = d.readUint64()
		n.Value = int64(v)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func knownType(t Type) bool {
	switch t {
	case TypeObject, TypeString, TypeInt32, TypeFloat32, TypePointer,
		TypeWideString, TypeColor, TypeUint64, TypeInt64:
		return true
	}
	return false
}

func (d *binaryDecoder) read(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.buf) {
		return nil, &SyntaxError{Offset: d.pos, Msg: "truncated document"}
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *binaryDecoder) readByte() (byte, error) {
	b, err := d.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *binaryDecoder) readUint32() (uint32, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *binaryDecoder) readUint64() (uint64, error) {
	b, err := d.read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *binaryDecoder) readKey() (string, error) {
	if d.keys == nil {
		return d.readCString()
	}
	idx, err := d.readUint32()
	if err != nil {
		return "", err
	}
	if int64(idx) >= int64(len(d.keys)) {
		return "", &SyntaxError{Offset: d.pos - 4, Msg: fmt.Sprintf("key index %d out of range", idx)}
	}
	return d.keys[idx], nil
}

func (d *binaryDecoder) readCString() (string, error) {
	start := d.pos
	for i := d.pos; i < len(d.buf); i++ {
		if d.buf[i] == 0 {
			d.pos = i + 1
			return string(d.buf[start:i]), nil
		}
	}
	return "", &SyntaxError{Offset: start, Msg: "unterminated string"}
}

// readWideString reads NUL-terminated UTF-16LE code units.
func (d *binaryDecoder) readWideString() (string, error) {
	start := d.pos
	for i := d.pos; i+1 < len(d.buf); i += 2 {
		if d.buf[i] == 0 && d.buf[i+1] == 0 {
			raw := d.buf[start:i]
			d.pos = i + 2
			out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
			if err != nil {
				return "", &SyntaxError{Offset: start, Msg: "invalid wide string"}
			}
			return string(out), nil
		}
	}
	return "", &SyntaxError{Offset: start, Msg: "unterminated wide string"}
}
