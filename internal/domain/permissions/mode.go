package permissions

import (
	"fmt"
	"strconv"
)

// Bits is one rwx triple.
type Bits uint8

const (
	Read    Bits = 4
	Write   Bits = 2
	Execute Bits = 1

	All Bits = Read | Write | Execute
)

// Has reports whether every bit in want is set.
func (b Bits) Has(want Bits) bool {
	return b&want == want
}

func (b Bits) String() string {
	out := []byte("---")
	if b.Has(Read) {
		out[0] = 'r'
	}
	if b.Has(Write) {
		out[1] = 'w'
	}
	if b.Has(Execute) {
		out[2] = 'x'
	}
	return string(out)
}

// Mode is a node's permission set.
type Mode struct {
	Dir   bool
	Owner Bits
	Group Bits
	Other Bits
}

// Common modes.
var (
	DirDefault  = Mode{Dir: true, Owner: All, Group: Read | Execute, Other: Read | Execute}
	FileDefault = Mode{Owner: Read | Write, Group: Read, Other: Read}
	ExecDefault = Mode{Owner: All, Group: Read | Execute, Other: Read | Execute}
)

// String renders the ten character form, e.g. "-rw-r--r--".
func (m Mode) String() string {
	kind := "-"
	if m.Dir {
		kind = "d"
	}
	return kind + m.Owner.String() + m.Group.String() + m.Other.String()
}

// Octal returns the permission bits as a number such as 0755.
func (m Mode) Octal() uint16 {
	return uint16(m.Owner)<<6 | uint16(m.Group)<<3 | uint16(m.Other)
}

// WithOctal replaces the permission bits, keeping the directory flag.
func (m Mode) WithOctal(v uint16) Mode {
	m.Owner = Bits(v>>6) & All
	m.Group = Bits(v>>3) & All
	m.Other = Bits(v) & All
	return m
}

// OctalString formats the bits as three octal digits.
func (m Mode) OctalString() string {
	return fmt.Sprintf("%03o", m.Octal())
}

// ParseMode parses a ten character mode string ("drwxr-xr-x") or its nine character
// permission part ("rw-r--r--").
func ParseMode(s string) (Mode, error) {
	var m Mode
	switch len(s) {
	case 10:
		switch s[0] {
		case 'd':
			m.Dir = true
		case '-':
		default:
			return Mode{}, fmt.Errorf("invalid file type %q in mode %q", s[0], s)
		}
		s = s[1:]
	case 9:
	default:
		return Mode{}, fmt.Errorf("invalid mode %q: want 9 or 10 characters", s)
	}

	triples := [3]*Bits{&m.Owner, &m.Group, &m.Other}
	for i, dst := range triples {
		b, err := parseTriple(s[i*3 : i*3+3])
		if err != nil {
			return Mode{}, fmt.Errorf("invalid mode %q: %w", s, err)
		}
		*dst = b
	}
	return m, nil
}

// MustParseMode is ParseMode for package-level literals.
func MustParseMode(s string) Mode {
	m, err := ParseMode(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseOctal parses "755" or "0755".
func ParseOctal(s string) (uint16, error) {
	if len(s) < 3 || len(s) > 4 {
		return 0, fmt.Errorf("invalid octal mode %q", s)
	}
	v, err := strconv.ParseUint(s, 8, 16)
	if err != nil || v > 0o777 {
		return 0, fmt.Errorf("invalid octal mode %q", s)
	}
	return uint16(v), nil
}

// MarshalText stores modes in their string form so snapshots stay readable.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts the ten character form.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func parseTriple(s string) (Bits, error) {
	var b Bits
	for i, want := range [3]struct {
		ch  byte
		bit Bits
	}{{'r', Read}, {'w', Write}, {'x', Execute}} {
		switch s[i] {
		case want.ch:
			b |= want.bit
		case '-':
		default:
			return 0, fmt.Errorf("unexpected %q at position %d", s[i], i)
		}
	}
	return b, nil
}
