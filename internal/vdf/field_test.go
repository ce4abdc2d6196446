package vdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInt64Value(t *testing.T) {
	tests := []struct {
		value any
		want  int64
		ok    bool
	}{
		{"42", 42, true},
		{" 42 ", 42, true},
		{"-3", -3, true},
		{"2.9", 2, true},
		{"-2.9", -2, true},
		{"abc", 0, false},
		{"", 0, false},
		{int32(-5), -5, true},
		{int64(1 << 40), 1 << 40, true},
		{uint64(1 << 63), 0, false},
		{float32(7.75), 7, true},
		{"1e30", 0, false},
	}
	for _, tt := range tests {
		n := &Node{Type: TypeString, Value: tt.value}
		got, ok := n.Int64Value()
		assert.Equal(t, tt.ok, ok, "%v", tt.value)
		assert.Equal(t, tt.want, got, "%v", tt.value)
	}
}

func TestUint64Value(t *testing.T) {
	n := NewString("id", "76561198000000000")
	v, ok := n.Uint64Value()
	assert.True(t, ok)
	assert.Equal(t, uint64(76561198000000000), v)

	_, ok = NewString("id", "-1").Uint64Value()
	assert.False(t, ok)

	v, ok = (&Node{Type: TypeUint64, Value: uint64(1 << 63)}).Uint64Value()
	assert.True(t, ok)
	assert.Equal(t, uint64(1<<63), v)
}

func TestBoolValue(t *testing.T) {
	tests := map[string]struct {
		want, ok bool
	}{
		"1":     {true, true},
		"0":     {false, true},
		"2":     {true, true},
		"true":  {true, true},
		"FALSE": {false, true},
		"yes":   {false, false},
	}
	for in, tt := range tests {
		got, ok := NewString("b", in).BoolValue()
		assert.Equal(t, tt.ok, ok, in)
		assert.Equal(t, tt.want, got, in)
	}

	var nilNode *Node
	_, ok := nilNode.BoolValue()
	assert.False(t, ok)
}

func TestTimeValue(t *testing.T) {
	ts, ok := NewString("t", "1700000000").TimeValue()
	assert.True(t, ok)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), ts)

	ts, ok = NewString("t", "1.5").TimeValue()
	assert.True(t, ok)
	assert.Equal(t, time.Unix(1, 500_000_000).UTC(), ts)

	_, ok = NewString("t", "never").TimeValue()
	assert.False(t, ok)
}

func TestGetHelpersOnScalarParent(t *testing.T) {
	scalar := NewString("k", "v")
	_, ok := scalar.GetString("anything")
	assert.False(t, ok)
	_, ok = scalar.Child("anything")
	assert.False(t, ok)

	var nilNode *Node
	_, ok = nilNode.GetInt("x")
	assert.False(t, ok)
}

func TestPathStopsAtMissingSegment(t *testing.T) {
	root := NewObject("r", NewObject("a", NewString("b", "1")))

	n, ok := root.Path("A", "B")
	assert.True(t, ok)
	assert.Equal(t, "1", n.Value)

	_, ok = root.Path("a", "c")
	assert.False(t, ok)
	_, ok = root.Path("a", "b", "deeper")
	assert.False(t, ok)
}
