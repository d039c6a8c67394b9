package shell

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/aurora/internal/domain/vfs"
	"github.com/GriffinCanCode/aurora/internal/shared/paths"
)

// Definition describes a command for help output and completion.
type Definition struct {
	Name        string
	Description string
	Usage       string
	Hidden      bool
}

// Command is a built-in.
type Command interface {
	Definition() Definition
	Execute(ctx *Context) Result
}

// Func adapts a plain function to Command.
type Func struct {
	Def Definition
	Run func(ctx *Context) Result
}

func (f Func) Definition() Definition      { return f.Def }
func (f Func) Execute(ctx *Context) Result { return f.Run(ctx) }

// Result is the outcome of one command line.
type Result struct {
	Output  []string `json:"output"`
	IsError bool     `json:"isError"`
	Clear   bool     `json:"clear,omitempty"`
	Closed  bool     `json:"closed,omitempty"`
	Cwd     string   `json:"cwd"`
}

// Context is what a command sees while it runs. The session is locked for the
// duration of the call.
type Context struct {
	Name    string
	Args    []string
	Session *Session
	FS      *vfs.Guard
	Shell   *Interpreter
}

// Resolve turns a user-supplied path into an absolute one.
func (c *Context) Resolve(p string) string {
	return paths.Resolve(p, c.Session.cwd, c.Session.User.HomeDir)
}

// Cwd returns the session's working directory.
func (c *Context) Cwd() string {
	return c.Session.cwd
}

// Chdir moves the session, remembering the previous directory in OLDPWD.
func (c *Context) Chdir(dir string) {
	c.Session.env["OLDPWD"] = c.Session.cwd
	c.Session.cwd = dir
	c.Session.env["PWD"] = dir
}

// Getenv reads a session variable.
func (c *Context) Getenv(name string) string {
	return c.Session.env[name]
}

// Setenv writes a session variable.
func (c *Context) Setenv(name, value string) {
	c.Session.env[name] = value
}

// flags splits arguments into option letters and operands. "--" ends options and
// a lone "-" is an operand.
func flags(args []string) (set map[rune]bool, operands []string) {
	set = make(map[rune]bool)
	done := false
	for _, a := range args {
		switch {
		case done || a == "-" || !strings.HasPrefix(a, "-"):
			operands = append(operands, a)
		case a == "--":
			done = true
		default:
			for _, r := range a[1:] {
				set[r] = true
			}
		}
	}
	return set, operands
}

// output builds a successful result.
func output(lines ...string) Result {
	if lines == nil {
		lines = []string{}
	}
	return Result{Output: lines}
}

// failf builds a single-line error result.
func failf(format string, args ...any) Result {
	return Result{Output: []string{fmt.Sprintf(format, args...)}, IsError: true}
}

// lines collects output across several operands. Any failure marks the result.
type lines struct {
	out    []string
	failed bool
}

func (l *lines) add(s ...string) {
	l.out = append(l.out, s...)
}

func (l *lines) fail(format string, args ...any) {
	l.out = append(l.out, fmt.Sprintf(format, args...))
	l.failed = true
}

func (l *lines) result() Result {
	r := output(l.out...)
	r.IsError = l.failed
	return r
}

// splitContent breaks file content into display lines, ignoring one trailing newline.
func splitContent(content string) []string {
	if content == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
