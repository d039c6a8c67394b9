package shell

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/GriffinCanCode/aurora/internal/domain/permissions"
	"github.com/GriffinCanCode/aurora/internal/domain/vfs"
	"github.com/GriffinCanCode/aurora/internal/shared/paths"
)

// createReason phrases a failed create the way coreutils does.
func createReason(err error) string {
	switch {
	case errors.Is(err, vfs.ErrNotFound), errors.Is(err, vfs.ErrNotDirectory):
		return "No such file or directory"
	case errors.Is(err, vfs.ErrPermission):
		return "Permission denied"
	case errors.Is(err, vfs.ErrExists):
		return "File exists"
	default:
		return "Operation failed"
	}
}

func cmdLs(ctx *Context) Result {
	opts, targets := flags(ctx.Args)
	long := opts['l']
	if len(targets) == 0 {
		targets = []string{"."}
	}

	var out lines
	for i, target := range targets {
		if len(targets) > 1 {
			if i > 0 {
				out.add("")
			}
			out.add(target + ":")
		}
		path := ctx.Resolve(target)
		n, err := ctx.FS.Stat(path)
		if err != nil {
			lsFailure(&out, target, err)
			continue
		}
		if !n.IsDir() {
			out.add(lsEntry(*n, long))
			continue
		}
		entries, err := ctx.FS.List(path)
		if err != nil {
			lsFailure(&out, target, err)
			continue
		}
		if long {
			for _, e := range entries {
				out.add(lsEntry(e, true))
			}
		} else if len(entries) > 0 {
			names := make([]string, len(entries))
			for j, e := range entries {
				names[j] = lsEntry(e, false)
			}
			out.add(strings.Join(names, "  "))
		}
	}
	return out.result()
}

func lsFailure(out *lines, target string, err error) {
	if errors.Is(err, vfs.ErrPermission) {
		out.fail("ls: cannot open directory '%s': Permission denied", target)
		return
	}
	out.fail("ls: %s: No such file or directory", target)
}

func lsEntry(n vfs.Node, long bool) string {
	if !long {
		if n.IsDir() {
			return n.Name + "/"
		}
		return n.Name
	}
	return fmt.Sprintf("%s  %s %s  %6d  %s", n.Permissions, n.Owner, n.Group, n.Size, n.Name)
}

func cmdCd(ctx *Context) Result {
	target := ctx.Session.User.HomeDir
	shown := "~"
	if len(ctx.Args) > 0 {
		target, shown = ctx.Args[0], ctx.Args[0]
	}
	back := target == "-"
	if back {
		target = ctx.Getenv("OLDPWD")
		if target == "" {
			return failf("cd: OLDPWD not set")
		}
	}

	path := ctx.Resolve(target)
	n, err := ctx.FS.Stat(path)
	switch {
	case errors.Is(err, vfs.ErrPermission):
		return failf("cd: %s: Permission denied", shown)
	case errors.Is(err, vfs.ErrNotDirectory):
		return failf("cd: %s: Not a directory", shown)
	case err != nil:
		return failf("cd: %s: No such directory", shown)
	case !n.IsDir():
		return failf("cd: %s: Not a directory", shown)
	}
	if err := ctx.FS.Can(path, permissions.ActionExecute); err != nil {
		return failf("cd: %s: Permission denied", shown)
	}

	ctx.Chdir(path)
	if back {
		return output(path)
	}
	return output()
}

func cmdPwd(ctx *Context) Result {
	return output(ctx.Cwd())
}

func cmdCat(ctx *Context) Result {
	if len(ctx.Args) == 0 {
		return failf("cat: missing file operand")
	}
	var out lines
	for _, arg := range ctx.Args {
		content, err := ctx.FS.ReadFile(ctx.Resolve(arg))
		if err != nil {
			out.fail("cat: %s: %s", arg, vfs.Reason(err))
			continue
		}
		out.add(splitContent(content)...)
	}
	return out.result()
}

func cmdMkdir(ctx *Context) Result {
	opts, targets := flags(ctx.Args)
	if len(targets) == 0 {
		return failf("mkdir: missing operand")
	}
	var out lines
	for _, target := range targets {
		path := ctx.Resolve(target)
		if opts['p'] {
			if err := mkdirAll(ctx.FS, path); err != nil {
				out.fail("mkdir: cannot create directory '%s': Operation failed", target)
			}
			continue
		}
		if err := ctx.FS.CreateDirectory(paths.Parent(path), paths.Base(path)); err != nil {
			out.fail("mkdir: cannot create directory '%s': %s", target, createReason(err))
		}
	}
	return out.result()
}

// mkdirAll creates path and any missing parents. Existing directories are fine.
func mkdirAll(fs *vfs.Guard, path string) error {
	current := paths.Root
	for _, segment := range paths.Split(path) {
		next := paths.Child(current, segment)
		n, err := fs.Stat(next)
		switch {
		case err == nil && n.IsDir():
		case err == nil:
			return vfs.ErrNotDirectory
		case errors.Is(err, vfs.ErrNotFound):
			if err := fs.CreateDirectory(current, segment); err != nil {
				return err
			}
		default:
			return err
		}
		current = next
	}
	return nil
}

func cmdTouch(ctx *Context) Result {
	if len(ctx.Args) == 0 {
		return failf("touch: missing file operand")
	}
	var out lines
	for _, arg := range ctx.Args {
		path := ctx.Resolve(arg)
		_, err := ctx.FS.Stat(path)
		switch {
		case err == nil:
			if err := ctx.FS.Touch(path); err != nil {
				out.fail("touch: cannot touch '%s': %s", arg, vfs.Reason(err))
			}
			continue
		case errors.Is(err, vfs.ErrPermission):
			out.fail("touch: cannot touch '%s': Permission denied", arg)
			continue
		}

		err = ctx.FS.CreateFile(paths.Parent(path), paths.Base(path), "")
		switch {
		case err == nil:
		case errors.Is(err, vfs.ErrExists):
			// Lost a race with another session; the file is there either way.
			out.failed = true
		case errors.Is(err, vfs.ErrNotFound), errors.Is(err, vfs.ErrNotDirectory):
			out.fail("touch: cannot touch '%s': No such file or directory", arg)
		case errors.Is(err, vfs.ErrPermission):
			out.fail("touch: cannot touch '%s': Permission denied", arg)
		default:
			out.fail("touch: cannot create file '%s': Operation failed", arg)
		}
	}
	return out.result()
}

// cmdRm moves targets to the trash. Anything already in the trash is deleted for good.
func cmdRm(ctx *Context) Result {
	opts, targets := flags(ctx.Args)
	recursive := opts['r'] || opts['R']
	force := opts['f']
	if len(targets) == 0 {
		return failf("rm: missing operand")
	}

	var out lines
	for _, target := range targets {
		path := ctx.Resolve(target)
		n, err := ctx.FS.Stat(path)
		if err != nil {
			if !force || !errors.Is(err, vfs.ErrNotFound) {
				out.fail("rm: cannot remove '%s': %s", target, vfs.Reason(err))
			}
			continue
		}
		if n.IsDir() && !recursive {
			out.fail("rm: cannot remove '%s': Is a directory", target)
			continue
		}
		if vfs.InTrash(ctx.Session.User, path) {
			err = ctx.FS.Delete(path)
		} else {
			_, err = ctx.FS.Trash(path)
		}
		if err != nil {
			out.fail("rm: cannot remove '%s': %s", target, vfs.Reason(err))
		}
	}
	return out.result()
}

func cmdMv(ctx *Context) Result {
	_, operands := flags(ctx.Args)
	if len(operands) < 2 {
		return failf("mv: missing file operand")
	}
	srcArg, dstArg := operands[0], operands[1]
	src, dst := ctx.Resolve(srcArg), ctx.Resolve(dstArg)

	if _, err := ctx.FS.Stat(src); err != nil {
		return failf("mv: cannot stat '%s': %s", srcArg, vfs.Reason(err))
	}
	if err := ctx.FS.Can(paths.Parent(src), permissions.ActionWrite); err != nil {
		return failf("mv: cannot move '%s': Permission denied", srcArg)
	}

	targetDir := paths.Parent(dst)
	if n, err := ctx.FS.Stat(dst); err == nil && n.IsDir() {
		targetDir = dst
	}
	dir, err := ctx.FS.Stat(targetDir)
	if err != nil || !dir.IsDir() {
		return failf("mv: cannot move to '%s': No such file or directory", dstArg)
	}
	if err := ctx.FS.Can(targetDir, permissions.ActionWrite); err != nil {
		return failf("mv: cannot move to '%s': Permission denied", dstArg)
	}

	if _, err := ctx.FS.Move(src, dst); err != nil {
		return failf("mv: cannot move '%s' to '%s': %s", srcArg, dstArg, vfs.Reason(err))
	}
	return output()
}

func cmdCp(ctx *Context) Result {
	_, operands := flags(ctx.Args)
	if len(operands) < 2 {
		return failf("cp: missing file operand")
	}
	srcArg, dstArg := operands[0], operands[1]
	src, dst := ctx.Resolve(srcArg), ctx.Resolve(dstArg)

	n, err := ctx.FS.Stat(src)
	if err != nil {
		return failf("cp: cannot stat '%s': %s", srcArg, vfs.Reason(err))
	}
	if n.IsDir() {
		return failf("cp: -r not specified; omitting directory '%s'", srcArg)
	}
	content, err := ctx.FS.ReadFile(src)
	if err != nil {
		return failf("cp: cannot open '%s' for reading: %s", srcArg, vfs.Reason(err))
	}

	if d, err := ctx.FS.Stat(dst); err == nil && d.IsDir() {
		dst = paths.Child(dst, n.Name)
	}
	if existing, err := ctx.FS.Stat(dst); err == nil {
		if existing.IsDir() {
			return failf("cp: cannot overwrite directory '%s' with non-directory", dstArg)
		}
		if err := ctx.FS.WriteFile(dst, content); err != nil {
			return failf("cp: cannot create regular file '%s': %s", dstArg, createReason(err))
		}
		return output()
	}
	if err := ctx.FS.CreateFile(paths.Parent(dst), paths.Base(dst), content); err != nil {
		return failf("cp: cannot create regular file '%s': %s", dstArg, createReason(err))
	}
	return output()
}

// cmdGrep prints the lines of each file matching an RE2 pattern. Several files
// prefix each match with the file name.
func cmdGrep(ctx *Context) Result {
	_, operands := flags(ctx.Args)
	if len(operands) < 2 {
		return failf("grep: missing pattern or file operand")
	}
	pattern, files := operands[0], operands[1:]

	var (
		re  *regexp.Regexp
		out lines
	)
	for _, file := range files {
		content, err := ctx.FS.ReadFile(ctx.Resolve(file))
		if err != nil {
			out.fail("grep: %s: %s", file, vfs.Reason(err))
			continue
		}
		if re == nil {
			if re, err = regexp.Compile(pattern); err != nil {
				return failf("grep: invalid pattern '%s'", pattern)
			}
		}
		for _, line := range splitContent(content) {
			if !re.MatchString(line) {
				continue
			}
			if len(files) > 1 {
				line = file + ":" + line
			}
			out.add(line)
		}
	}
	return out.result()
}

func cmdChmod(ctx *Context) Result {
	if len(ctx.Args) < 2 {
		return failf("chmod: missing operand")
	}
	spec, targets := ctx.Args[0], ctx.Args[1:]
	var out lines
	for _, target := range targets {
		err := ctx.FS.Chmod(ctx.Resolve(target), spec)
		switch {
		case err == nil:
		case errors.Is(err, vfs.ErrInvalidMode):
			return failf("chmod: invalid mode: '%s'", spec)
		case errors.Is(err, vfs.ErrNotFound):
			out.fail("chmod: cannot access '%s': No such file or directory", target)
		case errors.Is(err, vfs.ErrNotPermitted):
			out.fail("chmod: changing permissions of '%s': Operation not permitted", target)
		default:
			out.fail("chmod: cannot access '%s': %s", target, vfs.Reason(err))
		}
	}
	return out.result()
}

func cmdChown(ctx *Context) Result {
	if len(ctx.Args) < 2 {
		return failf("chown: missing operand")
	}
	spec, targets := ctx.Args[0], ctx.Args[1:]
	if !ctx.Session.User.IsRoot() {
		return failf("chown: changing ownership of '%s': Operation not permitted", targets[0])
	}
	owner, group, _ := strings.Cut(spec, ":")

	var out lines
	for _, target := range targets {
		err := ctx.FS.Chown(ctx.Resolve(target), owner, group)
		switch {
		case err == nil:
		case errors.Is(err, vfs.ErrUnknownUser):
			return failf("chown: invalid user: '%s'", spec)
		case errors.Is(err, vfs.ErrNotFound):
			out.fail("chown: cannot access '%s': No such file or directory", target)
		default:
			out.fail("chown: changing ownership of '%s': %s", target, vfs.Reason(err))
		}
	}
	return out.result()
}
