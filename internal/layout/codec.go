package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrChecksumMismatch is matched by *ChecksumError.
var ErrChecksumMismatch = errors.New("layout checksum mismatch")

// SyntaxError reports malformed layout text.
type SyntaxError struct {
	Offset int // byte offset into the input
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("layout syntax error at offset %d: %s", e.Offset, e.Msg)
}

// ChecksumError reports a checksum prefix that does not match the geometry
// that follows it.
type ChecksumError struct {
	Got  string // checksum carried by the input
	Want string // checksum computed over the geometry
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("layout checksum mismatch: got %s, want %s", e.Got, e.Want)
}

// Is makes errors.Is(err, ErrChecksumMismatch) true.
func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksumMismatch
}

// Checksum computes tmux's 16-bit layout checksum as four lower-case hex
// digits: rotate right by one bit, then add the next byte.
func Checksum(s string) string {
	var csum uint16
	for i := 0; i < len(s); i++ {
		csum = (csum >> 1) | (csum << 15)
		csum += uint16(s[i])
	}
	return fmt.Sprintf("%04x", csum)
}

// Parse decodes a layout string, with or without a leading checksum. When a
// checksum is present it must match the rest of the string.
func Parse(s string) (*Box, error) {
	body, base := s, 0
	if comma := strings.IndexByte(s, ','); comma > 0 && !strings.ContainsRune(s[:comma], 'x') {
		sum := s[:comma]
		if !isChecksum(sum) {
			return nil, &SyntaxError{Offset: 0, Msg: fmt.Sprintf("invalid checksum %q", sum)}
		}
		body, base = s[comma+1:], comma+1
		if want := Checksum(body); want != sum {
			return nil, &ChecksumError{Got: sum, Want: want}
		}
	}

	p := &parser{s: body, base: base}
	b, err := p.box()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, p.errorf("unexpected %q after layout", p.s[p.pos])
	}
	return b, nil
}

func isChecksum(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

// Serialize encodes b in tmux's layout grammar. Only the outermost string
// carries a checksum.
func Serialize(b *Box, withChecksum bool) string {
	var sb strings.Builder
	writeBox(&sb, b)
	geom := sb.String()
	if !withChecksum {
		return geom
	}
	return Checksum(geom) + "," + geom
}

// String returns the checksummed layout string.
func (b *Box) String() string {
	return Serialize(b, true)
}

func writeBox(sb *strings.Builder, b *Box) {
	sb.WriteString(strconv.Itoa(b.Width))
	sb.WriteByte('x')
	sb.WriteString(strconv.Itoa(b.Height))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(b.X))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(b.Y))

	var open, closing byte
	switch b.Kind {
	case Pane:
		sb.WriteByte(',')
		sb.WriteString(strings.TrimPrefix(b.PaneID, "%"))
		return
	case HBox:
		open, closing = '{', '}'
	case VBox:
		open, closing = '[', ']'
	}
	sb.WriteByte(open)
	for i, c := range b.Children {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeBox(sb, c)
	}
	sb.WriteByte(closing)
}

// parser is a recursive-descent reader over the geometry part of a layout.
type parser struct {
	s    string
	pos  int
	base int // offset of s within the full input, for error reporting
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.base + p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.s) {
		return 0, false
	}
	return p.s[p.pos], true
}

func (p *parser) expect(c byte) error {
	got, ok := p.peek()
	if !ok {
		return p.errorf("unexpected end of layout, want %q", c)
	}
	if got != c {
		return p.errorf("unexpected %q, want %q", got, c)
	}
	p.pos++
	return nil
}

func (p *parser) number() (int, error) {
	start := p.pos
	for p.pos < len(p.s) && '0' <= p.s[p.pos] && p.s[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		if c, ok := p.peek(); ok {
			return 0, p.errorf("unexpected %q, want digit", c)
		}
		return 0, p.errorf("unexpected end of layout, want digit")
	}
	digits := p.s[start:p.pos]
	n, err := strconv.Atoi(digits)
	if err != nil {
		p.pos = start
		return 0, p.errorf("bad number %q: %v", digits, err)
	}
	return n, nil
}

// box parses: W 'x' H ',' X ',' Y tail
func (p *parser) box() (*Box, error) {
	var b Box
	var err error
	if b.Width, err = p.number(); err != nil {
		return nil, err
	}
	if err = p.expect('x'); err != nil {
		return nil, err
	}
	if b.Height, err = p.number(); err != nil {
		return nil, err
	}
	if err = p.expect(','); err != nil {
		return nil, err
	}
	if b.X, err = p.number(); err != nil {
		return nil, err
	}
	if err = p.expect(','); err != nil {
		return nil, err
	}
	if b.Y, err = p.number(); err != nil {
		return nil, err
	}

	c, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of layout, want ',', '{' or '['")
	}
	p.pos++
	switch c {
	case ',':
		start := p.pos
		if _, err := p.number(); err != nil {
			return nil, err
		}
		b.Kind = Pane
		b.PaneID = "%" + p.s[start:p.pos]
		return &b, nil
	case '{':
		b.Kind = HBox
		if b.Children, err = p.children('}'); err != nil {
			return nil, err
		}
		return &b, nil
	case '[':
		b.Kind = VBox
		if b.Children, err = p.children(']'); err != nil {
			return nil, err
		}
		return &b, nil
	default:
		p.pos--
		return nil, p.errorf("unexpected %q, want ',', '{' or '['", c)
	}
}

// children parses: geom (',' geom)* closing
func (p *parser) children(closing byte) ([]*Box, error) {
	var out []*Box
	for {
		child, err := p.box()
		if err != nil {
			return nil, err
		}
		out = append(out, child)
		if c, ok := p.peek(); ok && c == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect(closing); err != nil {
		return nil, err
	}
	return out, nil
}
