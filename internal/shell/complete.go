package shell

import (
	"sort"
	"strings"

	"github.com/GriffinCanCode/aurora/internal/domain/vfs"
	"github.com/GriffinCanCode/aurora/internal/shared/paths"
)

// Validity is the advisory colouring of the command word.
type Validity string

const (
	ValidityNone    Validity = ""
	ValidityValid   Validity = "valid"
	ValidityInvalid Validity = "invalid"
)

// completion is the outcome of a Tab press: either a rewritten line or a list
// of candidates to show.
type completion struct {
	line       string
	candidates []string
}

func (i *Interpreter) complete(fs *vfs.Guard, s *Session, input string) completion {
	cut := strings.LastIndexByte(input, ' ')
	if cut < 0 {
		return completeWith(input, input, i.commandCandidates(fs, s, input), " ")
	}
	return i.completePath(fs, s, input, input[cut+1:])
}

func (i *Interpreter) completePath(fs *vfs.Guard, s *Session, input, word string) completion {
	dirPart, partial := "", word
	if slash := strings.LastIndexByte(word, '/'); slash >= 0 {
		dirPart, partial = word[:slash+1], word[slash+1:]
	}
	dir := "."
	if dirPart != "" {
		dir = dirPart
	}
	entries, err := fs.List(paths.Resolve(dir, s.cwd, s.User.HomeDir))
	if err != nil {
		return completion{line: input}
	}

	var matches []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name, partial) {
			continue
		}
		if e.IsDir() {
			matches = append(matches, e.Name+"/")
		} else {
			matches = append(matches, e.Name)
		}
	}
	if len(matches) == 1 && !strings.HasSuffix(matches[0], "/") {
		return completeWith(input, partial, matches, " ")
	}
	return completeWith(input, partial, matches, "")
}

// completeWith replaces the trailing partial word when exactly one candidate
// remains.
func completeWith(input, partial string, candidates []string, suffix string) completion {
	switch len(candidates) {
	case 0:
		return completion{line: input}
	case 1:
		return completion{line: strings.TrimSuffix(input, partial) + candidates[0] + suffix}
	default:
		return completion{line: input, candidates: candidates}
	}
}

// commandCandidates lists built-ins and PATH executables starting with prefix.
func (i *Interpreter) commandCandidates(fs *vfs.Guard, s *Session, prefix string) []string {
	seen := make(map[string]bool)
	for _, name := range i.registry.Names() {
		if strings.HasPrefix(name, prefix) {
			seen[name] = true
		}
	}
	for _, dir := range s.searchPath() {
		entries, err := fs.List(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name, prefix) && executable(fs, paths.Child(dir, e.Name)) {
				seen[e.Name] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// validity colours the first word: a built-in, alias, existing file path or
// PATH executable is valid.
func (i *Interpreter) validity(fs *vfs.Guard, s *Session, input string) Validity {
	tokens := Tokenize(input)
	if len(tokens) == 0 {
		return ValidityNone
	}
	name := tokens[0]
	if i.registry.Has(name) {
		return ValidityValid
	}
	if _, ok := s.aliases[name]; ok {
		return ValidityValid
	}
	if strings.Contains(name, "/") {
		n, err := fs.Stat(paths.Resolve(name, s.cwd, s.User.HomeDir))
		if err == nil && !n.IsDir() {
			return ValidityValid
		}
		return ValidityInvalid
	}
	if target, ok := i.lookPath(fs, s, name); ok && executable(fs, target) {
		return ValidityValid
	}
	return ValidityInvalid
}

// ghost returns the rest of the newest history entry that extends input.
func ghost(history []string, input string) string {
	if input == "" {
		return ""
	}
	for n := len(history) - 1; n >= 0; n-- {
		if h := history[n]; len(h) > len(input) && strings.HasPrefix(h, input) {
			return h[len(input):]
		}
	}
	return ""
}
