package permissions

import (
	"fmt"
	"strings"
)

// ApplySpec applies a chmod mode argument to m. Accepted forms:
//
//	755, 0644              octal
//	u+x, go-w, a=r, +x     symbolic, comma separated clauses
//	-rw-r--r--, rwxr-x---  literal mode strings
//
// The directory flag of m is always preserved.
func ApplySpec(m Mode, spec string) (Mode, error) {
	if spec == "" {
		return m, fmt.Errorf("empty mode")
	}

	if isDigits(spec) {
		v, err := ParseOctal(spec)
		if err != nil {
			return m, err
		}
		return m.WithOctal(v), nil
	}

	if len(spec) == 9 || len(spec) == 10 {
		if parsed, err := ParseMode(spec); err == nil {
			parsed.Dir = m.Dir
			return parsed, nil
		}
	}

	out := m
	for _, clause := range strings.Split(spec, ",") {
		var err error
		if out, err = applyClause(out, clause); err != nil {
			return m, fmt.Errorf("invalid mode %q: %w", spec, err)
		}
	}
	return out, nil
}

func applyClause(m Mode, clause string) (Mode, error) {
	who := strings.IndexAny(clause, "+-=")
	if who < 0 {
		return m, fmt.Errorf("missing operator in %q", clause)
	}

	var targets []*Bits
	for _, c := range clause[:who] {
		switch c {
		case 'u':
			targets = append(targets, &m.Owner)
		case 'g':
			targets = append(targets, &m.Group)
		case 'o':
			targets = append(targets, &m.Other)
		case 'a':
			targets = append(targets, &m.Owner, &m.Group, &m.Other)
		default:
			return m, fmt.Errorf("unexpected %q in %q", c, clause)
		}
	}
	if len(targets) == 0 {
		targets = []*Bits{&m.Owner, &m.Group, &m.Other}
	}

	rest := clause[who:]
	for len(rest) > 0 {
		op := rest[0]
		end := strings.IndexAny(rest[1:], "+-=")
		if end < 0 {
			end = len(rest) - 1
		}
		bits, err := parseBits(rest[1 : end+1])
		if err != nil {
			return m, fmt.Errorf("%w in %q", err, clause)
		}
		for _, t := range targets {
			switch op {
			case '+':
				*t |= bits
			case '-':
				*t &^= bits
			case '=':
				*t = bits
			}
		}
		rest = rest[end+1:]
	}
	return m, nil
}

func parseBits(s string) (Bits, error) {
	var b Bits
	for _, c := range s {
		switch c {
		case 'r':
			b |= Read
		case 'w':
			b |= Write
		case 'x':
			b |= Execute
		default:
			return 0, fmt.Errorf("unexpected %q", c)
		}
	}
	return b, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
