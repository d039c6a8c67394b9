package shell

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/GriffinCanCode/aurora/internal/shared/paths"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func cmdHelp(ctx *Context) Result {
	defs := ctx.Shell.registry.List(false)
	width := len("[app]")
	for _, d := range defs {
		width = max(width, len(d.Name))
	}
	width += 2

	out := []string{"Available commands:"}
	for _, d := range defs {
		line := fmt.Sprintf("  %-*s- %s", width, d.Name, d.Description)
		if d.Usage != "" {
			line += " (usage: " + d.Usage + ")"
		}
		out = append(out, line)
	}
	out = append(out, "",
		fmt.Sprintf("  %-*s- Launch an application found on PATH, e.g. finder or notes", width, "[app]"),
		"")
	return output(out...)
}

func cmdEcho(ctx *Context) Result {
	return output(strings.Join(ctx.Args, " "))
}

func cmdWhoami(ctx *Context) Result {
	return output(ctx.Session.User.Username)
}

func cmdHostname(ctx *Context) Result {
	return output(ctx.Shell.hostname)
}

func cmdWho(ctx *Context) Result {
	return output(ctx.Shell.store.CurrentUser().Username)
}

func cmdDate(ctx *Context) Result {
	return output(ctx.Shell.now().Format(time.UnixDate))
}

func cmdUptime(ctx *Context) Result {
	return output(formatUptime(ctx.Shell.now().Sub(ctx.Shell.bootTime)))
}

// formatUptime renders "up 1h 5m"; seconds only show during the first minute.
func formatUptime(d time.Duration) string {
	seconds := int(d.Seconds())
	minutes := seconds / 60
	hours := minutes / 60

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%dh ", hours)
	}
	if minutes%60 != 0 {
		fmt.Fprintf(&b, "%dm", minutes%60)
	}
	if minutes == 0 {
		fmt.Fprintf(&b, "%ds", seconds)
	}
	return "up " + strings.TrimSpace(b.String())
}

func cmdClear(*Context) Result {
	return Result{Output: []string{}, Clear: true}
}

func cmdExit(*Context) Result {
	return Result{Output: []string{"logout"}, Closed: true}
}

func cmdLogout(*Context) Result {
	return Result{Output: []string{"Logging out..."}, Closed: true}
}

// cmdReset restores the factory filesystem for every session and returns this
// one to its home directory.
func cmdReset(ctx *Context) Result {
	ctx.Shell.store.ResetFileSystem()
	home := paths.Clean(ctx.Session.User.HomeDir)
	if n, err := ctx.FS.Stat(home); err != nil || !n.IsDir() {
		home = paths.Root
	}
	ctx.Chdir(home)
	return output("System reset initiated...")
}

func cmdExport(ctx *Context) Result {
	env := ctx.Session.env
	if len(ctx.Args) == 0 {
		names := make([]string, 0, len(env))
		for name := range env {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]string, len(names))
		for i, name := range names {
			out[i] = name + "=" + env[name]
		}
		return output(out...)
	}

	var out lines
	for _, arg := range ctx.Args {
		name, value, hasValue := strings.Cut(arg, "=")
		if !identifier.MatchString(name) {
			out.fail("export: `%s': not a valid identifier", arg)
			continue
		}
		if hasValue {
			ctx.Setenv(name, value)
		} else if _, ok := env[name]; !ok {
			ctx.Setenv(name, "")
		}
	}
	return out.result()
}

func cmdAlias(ctx *Context) Result {
	aliases := ctx.Session.aliases
	if len(ctx.Args) == 0 {
		names := make([]string, 0, len(aliases))
		for name := range aliases {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]string, len(names))
		for i, name := range names {
			out[i] = fmt.Sprintf("alias %s='%s'", name, aliases[name])
		}
		return output(out...)
	}

	var out lines
	for _, arg := range ctx.Args {
		name, value, hasValue := strings.Cut(arg, "=")
		switch {
		case name == "":
			out.fail("alias: `%s': invalid alias name", arg)
		case hasValue:
			aliases[name] = strings.Trim(value, `'"`)
		default:
			v, ok := aliases[name]
			if !ok {
				out.fail("alias: %s: not found", name)
				continue
			}
			out.add(fmt.Sprintf("alias %s='%s'", name, v))
		}
	}
	return out.result()
}

func cmdHistory(ctx *Context) Result {
	out := make([]string, len(ctx.Session.history))
	for i, line := range ctx.Session.history {
		out[i] = fmt.Sprintf("%5d  %s", i+1, line)
	}
	return output(out...)
}
