package vdf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binaryDoc assembles binary documents for tests. When keys is set, names are
// written as indices into it.
type binaryDoc struct {
	buf  bytes.Buffer
	keys []string
}

func newBinaryDoc() *binaryDoc { return &binaryDoc{} }

func (b *binaryDoc) name(s string) {
	if b.keys == nil {
		b.buf.WriteString(s)
		b.buf.WriteByte(0)
		return
	}
	for i, k := range b.keys {
		if k == s {
			_ = binary.Write(&b.buf, binary.LittleEndian, uint32(i))
			return
		}
	}
	b.keys = append(b.keys, s)
	_ = binary.Write(&b.buf, binary.LittleEndian, uint32(len(b.keys)-1))
}

func (b *binaryDoc) object(name string) *binaryDoc {
	b.buf.WriteByte(byte(TypeObject))
	b.name(name)
	return b
}

func (b *binaryDoc) str(name, v string) *binaryDoc {
	b.buf.WriteByte(byte(TypeString))
	b.name(name)
	b.buf.WriteString(v)
	b.buf.WriteByte(0)
	return b
}

func (b *binaryDoc) int32(name string, v int32) *binaryDoc {
	b.buf.WriteByte(byte(TypeInt32))
	b.name(name)
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *binaryDoc) raw(p ...byte) *binaryDoc {
	b.buf.Write(p)
	return b
}

func (b *binaryDoc) end() *binaryDoc {
	b.buf.WriteByte(byte(typeEnd))
	return b
}

func (b *binaryDoc) bytes() []byte { return b.buf.Bytes() }

func TestParseBinary_AllScalarTypes(t *testing.T) {
	doc := newBinaryDoc().object("root").
		str("s", "hello").
		int32("i", -7)

	doc.raw(byte(TypeFloat32))
	doc.name("f")
	_ = binary.Write(&doc.buf, binary.LittleEndian, math.Float32bits(1.5))

	doc.raw(byte(TypePointer))
	doc.name("p")
	_ = binary.Write(&doc.buf, binary.LittleEndian, uint32(99))

	doc.raw(byte(TypeWideString))
	doc.name("w")
	doc.raw('h', 0, 'i', 0, 0, 0)

	doc.raw(byte(TypeColor))
	doc.name("c")
	doc.raw(1, 2, 3, 4)

	doc.raw(byte(TypeUint64))
	doc.name("u")
	_ = binary.Write(&doc.buf, binary.LittleEndian, uint64(76561197960265729))

	doc.raw(byte(TypeInt64))
	doc.name("l")
	_ = binary.Write(&doc.buf, binary.LittleEndian, int64(-1))

	doc.end().end()

	root, err := ParseBinary(doc.bytes())
	require.NoError(t, err)
	assert.Equal(t, "root", root.Name)
	assert.Equal(t, []string{"s", "i", "f", "p", "w", "c", "u", "l"}, childNames(root))

	want := map[string]struct {
		typ   Type
		value any
	}{
		"s": {TypeString, "hello"},
		"i": {TypeInt32, int32(-7)},
		"f": {TypeFloat32, float32(1.5)},
		"p": {TypePointer, int32(99)},
		"w": {TypeWideString, "hi"},
		"c": {TypeColor, color.RGBA{R: 1, G: 2, B: 3, A: 4}},
		"u": {TypeUint64, uint64(76561197960265729)},
		"l": {TypeInt64, int64(-1)},
	}
	for name, w := range want {
		c, ok := root.Child(name)
		require.True(t, ok, name)
		assert.Equal(t, w.typ, c.Type, name)
		assert.Equal(t, w.value, c.Value, name)
	}

	rgba, ok := mustChild(t, root, "c").Color()
	require.True(t, ok)
	assert.Equal(t, uint8(4), rgba.A)
}

func mustChild(t *testing.T, n *Node, name string) *Node {
	t.Helper()
	c, ok := n.Child(name)
	require.True(t, ok, name)
	return c
}

func TestParseBinary_StopsAtRootEnd(t *testing.T) {
	doc := newBinaryDoc().object("shortcuts").
		object("0").str("AppName", "Game").end().
		end().
		raw(0xde, 0xad, 0xbe, 0xef)

	root, err := ParseBinary(doc.bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, childNames(root))

	name, ok := mustChild(t, root, "0").GetString("appname")
	require.True(t, ok)
	assert.Equal(t, "Game", name)
}

func TestParseBinary_AlternateEndMarker(t *testing.T) {
	doc := newBinaryDoc().object("r").str("k", "v").raw(byte(typeAltEnd))

	root, err := ParseBinary(doc.bytes())
	require.NoError(t, err)
	v, _ := root.GetString("k")
	assert.Equal(t, "v", v)
}

func TestParseBinary_Malformed(t *testing.T) {
	cases := map[string][]byte{
		"empty input":      {},
		"empty document":   {byte(typeEnd)},
		"missing end":      newBinaryDoc().object("r").str("k", "v").bytes(),
		"truncated int":    append(newBinaryDoc().object("r").bytes(), byte(TypeInt32), 'k', 0, 1, 2),
		"unterminated key": {byte(TypeObject), 'r'},
		"unknown tag":      newBinaryDoc().object("r").raw(0x42, 'k', 0).end().bytes(),
		"odd wide string":  newBinaryDoc().object("r").raw(byte(TypeWideString), 'w', 0, 'a').bytes(),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBinary(data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
		})
	}
}

func TestParseBinary_UnknownTagMessage(t *testing.T) {
	data := newBinaryDoc().object("r").raw(0x42, 'k', 0).end().bytes()
	_, err := ParseBinary(data)

	var syn *SyntaxError
	require.True(t, errors.As(err, &syn))
	assert.Contains(t, syn.Msg, "0x42")
	assert.Equal(t, 3, syn.Offset)
}

func TestParseBinaryIndexed(t *testing.T) {
	doc := &binaryDoc{keys: []string{}}
	doc.object("appinfo").
		object("common").
		str("name", "Portal").
		str("type", "Game").
		end().
		end()

	root, err := ParseBinaryIndexed(doc.bytes(), doc.keys)
	require.NoError(t, err)
	assert.Equal(t, "appinfo", root.Name)

	typ, ok := root.Path("common", "type")
	require.True(t, ok)
	assert.Equal(t, "Game", typ.Value)
}

func TestParseBinaryIndexed_KeyOutOfRange(t *testing.T) {
	data := []byte{byte(TypeObject), 5, 0, 0, 0, byte(typeEnd)}
	_, err := ParseBinaryIndexed(data, []string{"a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}
