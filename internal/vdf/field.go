package vdf

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// StringValue returns the scalar as a string. Numbers are formatted in base 10.
func (n *Node) StringValue() (string, bool) {
	if n == nil {
		return "", false
	}
	switch v := n.Value.(type) {
	case string:
		return v, true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), true
	}
	return "", false
}

// Int64Value returns the scalar as an int64. Floating values are truncated toward
// zero; values outside the int64 range are rejected.
func (n *Node) Int64Value() (int64, bool) {
	if n == nil {
		return 0, false
	}
	switch v := n.Value.(type) {
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return truncFloat(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return truncFloat(f)
		}
	}
	return 0, false
}

// Uint64Value returns the scalar as a uint64. Negative values are rejected.
func (n *Node) Uint64Value() (uint64, bool) {
	if n == nil {
		return 0, false
	}
	if s, ok := n.Value.(string); ok {
		if u, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err == nil {
			return u, true
		}
	}
	if u, ok := n.Value.(uint64); ok {
		return u, true
	}
	i, ok := n.Int64Value()
	if !ok || i < 0 {
		return 0, false
	}
	return uint64(i), true
}

// Float64Value returns the scalar as a float64. Integers convert exactly where
// float64 can represent them.
func (n *Node) Float64Value() (float64, bool) {
	if n == nil {
		return 0, false
	}
	switch v := n.Value.(type) {
	case float32:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// BoolValue treats any non-zero number as true. Strings that are not numbers are
// parsed with strconv.ParseBool.
func (n *Node) BoolValue() (bool, bool) {
	if f, ok := n.Float64Value(); ok {
		return f != 0, true
	}
	if n == nil {
		return false, false
	}
	if s, ok := n.Value.(string); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

// TimeValue reads the scalar as seconds since the Unix epoch, which may be fractional.
func (n *Node) TimeValue() (time.Time, bool) {
	f, ok := n.Float64Value()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
}

// GetString looks up a child scalar by name and coerces it to string.
func (n *Node) GetString(name string) (string, bool) {
	c, ok := n.Child(name)
	if !ok {
		return "", false
	}
	return c.StringValue()
}

// GetInt64 looks up a child scalar by name and coerces it to int64.
func (n *Node) GetInt64(name string) (int64, bool) {
	c, ok := n.Child(name)
	if !ok {
		return 0, false
	}
	return c.Int64Value()
}

// GetInt is GetInt64 narrowed to int.
func (n *Node) GetInt(name string) (int, bool) {
	i, ok := n.GetInt64(name)
	if !ok || i < math.MinInt || i > math.MaxInt {
		return 0, false
	}
	return int(i), true
}

func (n *Node) GetUint64(name string) (uint64, bool) {
	c, ok := n.Child(name)
	if !ok {
		return 0, false
	}
	return c.Uint64Value()
}

func (n *Node) GetFloat64(name string) (float64, bool) {
	c, ok := n.Child(name)
	if !ok {
		return 0, false
	}
	return c.Float64Value()
}

func (n *Node) GetBool(name string) (bool, bool) {
	c, ok := n.Child(name)
	if !ok {
		return false, false
	}
	return c.BoolValue()
}

// GetTime looks up an epoch timestamp. Callers that need a default for absent
// fields should use the zero epoch, time.Unix(0, 0).UTC().
func (n *Node) GetTime(name string) (time.Time, bool) {
	c, ok := n.Child(name)
	if !ok {
		return time.Time{}, false
	}
	return c.TimeValue()
}

func truncFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	t := math.Trunc(f)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, false
	}
	return int64(t), true
}
