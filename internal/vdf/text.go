package vdf

import (
	"strings"
)

const maxDepth = 256

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokString
	tokOpen
	tokClose
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

// textParser is a recursive-descent parser over the text encoding.
type textParser struct {
	data []byte
	pos  int
}

// ParseText decodes a text-encoded document and returns its first top-level node.
func ParseText(data []byte) (*Node, error) {
	p := &textParser{data: data}
	nodes, err := p.parsePairs(0)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, &SyntaxError{Offset: 0, Msg: "empty document"}
	}
	return nodes[0], nil
}

// parsePairs reads key/value pairs until the closing brace of the current object,
// or end of input at the top level.
func (p *textParser) parsePairs(depth int) ([]*Node, error) {
	if depth > maxDepth {
		return nil, &SyntaxError{Offset: p.pos, Msg: "nesting too deep"}
	}

	nodes := []*Node{}
	for {
		key, err := p.next()
		if err != nil {
			return nil, err
		}

		switch key.kind {
		case tokEOF:
			if depth > 0 {
				return nil, &SyntaxError{Offset: key.offset, Msg: "unexpected end of document, missing '}'"}
			}
			return nodes, nil
		case tokClose:
			if depth == 0 {
				return nil, &SyntaxError{Offset: key.offset, Msg: "unexpected '}'"}
			}
			return nodes, nil
		case tokOpen:
			return nil, &SyntaxError{Offset: key.offset, Msg: "expected key, found '{'"}
		}

		value, err := p.next()
		if err != nil {
			return nil, err
		}

		switch value.kind {
		case tokString:
			nodes = append(nodes, &Node{Name: key.text, Type: TypeString, Value: value.text})
		case tokOpen:
			children, err := p.parsePairs(depth + 1)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &Node{Name: key.text, Type: TypeObject, Children: children})
		default:
			return nil, &SyntaxError{Offset: value.offset, Msg: "key " + quote(key.text) + " has no value"}
		}
	}
}

// next returns the next significant token. Conditional tags such as [$WIN32] are
// consumed and dropped here so the grammar never sees them.
func (p *textParser) next() (token, error) {
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return token{kind: tokEOF, offset: p.pos}, nil
		}

		start := p.pos
		switch c := p.data[p.pos]; c {
		case '{':
			p.pos++
			return token{kind: tokOpen, offset: start}, nil
		case '}':
			p.pos++
			return token{kind: tokClose, offset: start}, nil
		case '"':
			s, err := p.readQuoted()
			if err != nil {
				return token{}, err
			}
			return token{kind: tokString, text: s, offset: start}, nil
		case '[':
			if err := p.skipCondition(); err != nil {
				return token{}, err
			}
			continue
		default:
			return token{kind: tokString, text: p.readBare(), offset: start}, nil
		}
	}
}

func (p *textParser) skipSpaceAndComments() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == '\v':
			p.pos++
		case c == '/' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '/':
			for p.pos < len(p.data) && p.data[p.pos] != '\n' {
				p.pos++
			}
		case c == 0xEF && p.pos == 0 && len(p.data) >= 3 && p.data[1] == 0xBB && p.data[2] == 0xBF:
			// UTF-8 BOM
			p.pos += 3
		default:
			return
		}
	}
}

func (p *textParser) readQuoted() (string, error) {
	start := p.pos
	p.pos++ // opening quote

	var sb strings.Builder
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		switch c {
		case '"':
			p.pos++
			return sb.String(), nil
		case '\\':
			if p.pos+1 >= len(p.data) {
				return "", &SyntaxError{Offset: start, Msg: "unterminated string"}
			}
			switch esc := p.data[p.pos+1]; esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			default:
				sb.WriteByte('\\')
				sb.WriteByte(esc)
			}
			p.pos += 2
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", &SyntaxError{Offset: start, Msg: "unterminated string"}
}

func (p *textParser) readBare() string {
	start := p.pos
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '"' || c == '{' || c == '}' {
			break
		}
		p.pos++
	}
	return string(p.data[start:p.pos])
}

func (p *textParser) skipCondition() error {
	start := p.pos
	for p.pos < len(p.data) {
		if p.data[p.pos] == ']' {
			p.pos++
			return nil
		}
		if p.data[p.pos] == '\n' {
			break
		}
		p.pos++
	}
	return &SyntaxError{Offset: start, Msg: "unterminated conditional"}
}

func quote(s string) string {
	return `"` + s + `"`
}
