package shell

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/aurora/internal/domain/permissions"
	"github.com/GriffinCanCode/aurora/internal/domain/vfs"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/logging"
	"github.com/GriffinCanCode/aurora/internal/shared/paths"
)

// AppMarker prefixes the content of application launcher stubs.
const AppMarker = "#!app "

// DefaultHostname is reported by hostname and shown in prompts.
const DefaultHostname = "aurora"

// LaunchFunc opens a desktop application. It is called synchronously and its
// outcome is not reported back to the shell.
type LaunchFunc func(appID string, args []string)

// CommandRecorder receives per-command outcomes.
type CommandRecorder interface {
	RecordCommand(command string, failed bool, duration time.Duration)
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLauncher handles "#!app" executables.
func WithLauncher(fn LaunchFunc) Option {
	return func(i *Interpreter) { i.launch = fn }
}

// WithHostname overrides DefaultHostname.
func WithHostname(name string) Option {
	return func(i *Interpreter) {
		if name != "" {
			i.hostname = name
		}
	}
}

// WithRegistry replaces the built-in table.
func WithRegistry(r *Registry) Option {
	return func(i *Interpreter) { i.registry = r }
}

// WithMetrics reports command outcomes to r.
func WithMetrics(r CommandRecorder) Option {
	return func(i *Interpreter) { i.metrics = r }
}

// WithClock overrides the time source used by date and uptime.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

// Interpreter executes command lines against a shared store.
type Interpreter struct {
	store    *vfs.Store
	registry *Registry
	launch   LaunchFunc
	hostname string
	metrics  CommandRecorder
	logger   *logging.Logger
	now      func() time.Time
	bootTime time.Time
}

// NewInterpreter creates an interpreter with the default built-ins.
func NewInterpreter(store *vfs.Store, logger *logging.Logger, opts ...Option) *Interpreter {
	if logger == nil {
		logger = logging.NewNop()
	}
	i := &Interpreter{
		store:    store,
		hostname: DefaultHostname,
		logger:   logger.Named("shell"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.registry == nil {
		i.registry = Builtins()
	}
	i.bootTime = i.now()
	return i
}

// Registry returns the built-in table.
func (i *Interpreter) Registry() *Registry {
	return i.registry
}

// Hostname returns the reported host name.
func (i *Interpreter) Hostname() string {
	return i.hostname
}

// Store returns the shared filesystem.
func (i *Interpreter) Store() *vfs.Store {
	return i.store
}

// Prompt renders "user@host:dir$ " with the home directory shown as "~".
func (i *Interpreter) Prompt(s *Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return i.promptLocked(s)
}

func (i *Interpreter) promptLocked(s *Session) string {
	cwd := s.cwd
	home := paths.Clean(s.User.HomeDir)
	switch {
	case cwd == home:
		cwd = "~"
	case home != paths.Root && paths.IsWithin(cwd, home):
		cwd = "~" + strings.TrimPrefix(cwd, home)
	}
	sigil := "$"
	if s.User.IsRoot() {
		sigil = "#"
	}
	return fmt.Sprintf("%s@%s:%s%s ", s.User.Username, i.hostname, cwd, sigil)
}

// Execute runs one line in session s.
func (i *Interpreter) Execute(s *Session, line string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return i.executeLocked(s, line)
}

func (i *Interpreter) executeLocked(s *Session, line string) Result {
	s.lastActive = i.now()
	if s.closed {
		return Result{Output: []string{"session closed"}, IsError: true, Closed: true, Cwd: s.cwd}
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Result{Output: []string{}, Cwd: s.cwd}
	}
	s.record(trimmed)

	tokens := i.expandAlias(s, Tokenize(trimmed))
	ctx := &Context{
		Name:    tokens[0],
		Session: s,
		FS:      i.store.As(s.User),
		Shell:   i,
	}
	ctx.Args = i.expandGlobs(ctx, tokens[1:])

	start := time.Now()
	res := i.dispatch(ctx)
	if res.Output == nil {
		res.Output = []string{}
	}
	if res.Closed {
		s.closed = true
	}
	res.Cwd = s.cwd

	if i.metrics != nil {
		i.metrics.RecordCommand(metricName(i.registry, ctx.Name), res.IsError, time.Since(start))
	}
	i.logger.Debug("command executed",
		zap.String("session", s.ID.String()),
		zap.String("user", s.User.Username),
		zap.String("command", ctx.Name),
		zap.Bool("error", res.IsError))
	return res
}

// metricName keeps label cardinality bounded: unknown words collapse to "other".
func metricName(r *Registry, name string) string {
	if r.Has(name) {
		return name
	}
	return "other"
}

func (i *Interpreter) expandAlias(s *Session, tokens []string) []string {
	value, ok := s.aliases[tokens[0]]
	if !ok {
		return tokens
	}
	expanded := Tokenize(value)
	if len(expanded) == 0 {
		return tokens
	}
	return append(expanded, tokens[1:]...)
}

func (i *Interpreter) expandGlobs(ctx *Context, args []string) []string {
	hasGlob := false
	for _, a := range args {
		if IsGlob(a) {
			hasGlob = true
			break
		}
	}
	if !hasGlob {
		return args
	}
	entries, err := ctx.FS.List(ctx.Cwd())
	if err != nil {
		return args
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return ExpandGlobs(args, names)
}

func (i *Interpreter) dispatch(ctx *Context) Result {
	if cmd, ok := i.registry.Get(ctx.Name); ok {
		return cmd.Execute(ctx)
	}

	if strings.Contains(ctx.Name, "/") {
		target := ctx.Resolve(ctx.Name)
		n, err := ctx.FS.Stat(target)
		if err != nil {
			return failf("%s: %s", ctx.Name, vfs.Reason(err))
		}
		if n.IsDir() {
			return failf("%s: Is a directory", ctx.Name)
		}
		if cmd, ok := i.shadowedBuiltin(ctx.Session, target); ok {
			return cmd.Execute(ctx)
		}
		return i.run(ctx, target)
	}

	if target, ok := i.lookPath(ctx.FS, ctx.Session, ctx.Name); ok {
		return i.run(ctx, target)
	}
	return failf("%s: command not found", ctx.Name)
}

// shadowedBuiltin maps "/bin/ls" back to the ls built-in when /bin is on PATH.
func (i *Interpreter) shadowedBuiltin(s *Session, target string) (Command, bool) {
	cmd, ok := i.registry.Get(paths.Base(target))
	if !ok {
		return nil, false
	}
	dir := paths.Parent(target)
	for _, d := range s.searchPath() {
		if d == dir {
			return cmd, true
		}
	}
	return nil, false
}

// lookPath finds the first executable file called name on the session's PATH.
// When only non-executable matches exist the first of them is returned so the
// caller reports the permission failure.
func (i *Interpreter) lookPath(fs *vfs.Guard, s *Session, name string) (string, bool) {
	fallback := ""
	for _, dir := range s.searchPath() {
		candidate := paths.Child(dir, name)
		n, err := fs.Stat(candidate)
		if err != nil || n.IsDir() {
			continue
		}
		if fs.Can(candidate, permissions.ActionExecute) == nil {
			return candidate, true
		}
		if fallback == "" {
			fallback = candidate
		}
	}
	return fallback, fallback != ""
}

// executable reports whether path names a file the session may execute.
func executable(fs *vfs.Guard, path string) bool {
	n, err := fs.Stat(path)
	return err == nil && !n.IsDir() && fs.Can(path, permissions.ActionExecute) == nil
}

// run executes a file found on disk: app stubs launch, everything else is refused.
func (i *Interpreter) run(ctx *Context, target string) Result {
	if err := ctx.FS.Can(target, permissions.ActionExecute); err != nil {
		return failf("%s: %s", ctx.Name, vfs.Reason(err))
	}
	content, err := ctx.FS.ReadFile(target)
	if err != nil {
		return failf("%s: %s", ctx.Name, vfs.Reason(err))
	}

	switch {
	case strings.HasPrefix(content, AppMarker):
		appID := strings.TrimSpace(strings.TrimPrefix(content, AppMarker))
		if i.launch == nil {
			return failf("%s: cannot open application '%s': no display", ctx.Name, appID)
		}
		args := make([]string, len(ctx.Args))
		for n, a := range ctx.Args {
			args[n] = a
			if isPathLike(a) {
				args[n] = ctx.Resolve(a)
			}
		}
		i.launch(appID, args)
		i.logger.Info("application launched", zap.String("app", appID), zap.String("user", ctx.Session.User.Username))
		return output()
	case strings.HasPrefix(content, "#!"):
		interp, _, _ := strings.Cut(content, "\n")
		return failf("%s: unsupported script interpreter '%s'", ctx.Name, strings.TrimSpace(interp))
	default:
		return failf("%s: cannot execute binary file", ctx.Name)
	}
}

func isPathLike(arg string) bool {
	return strings.Contains(arg, "/") || strings.HasPrefix(arg, "~") || arg == "." || arg == ".."
}
