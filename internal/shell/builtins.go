package shell

func builtin(name, description, usage string, run func(*Context) Result) Func {
	return Func{Def: Definition{Name: name, Description: description, Usage: usage}, Run: run}
}

// Builtins returns a fresh registry holding every built-in command.
func Builtins() *Registry {
	history := builtin("history", "Show command history", "history", cmdHistory)
	history.Def.Hidden = true

	return NewRegistry().MustRegister(
		builtin("help", "Show available commands", "help", cmdHelp),
		builtin("ls", "List directory contents", "ls [-l] [path...]", cmdLs),
		builtin("cd", "Change directory", "cd [path]", cmdCd),
		builtin("pwd", "Print working directory", "pwd", cmdPwd),
		builtin("cat", "Display file contents", "cat <file...>", cmdCat),
		builtin("mkdir", "Create directories", "mkdir [-p] <dir...>", cmdMkdir),
		builtin("touch", "Create empty files or update timestamps", "touch <file...>", cmdTouch),
		builtin("rm", "Move files to the trash", "rm [-rf] <path...>", cmdRm),
		builtin("mv", "Move or rename a file", "mv <source> <dest>", cmdMv),
		builtin("cp", "Copy a file", "cp <source> <dest>", cmdCp),
		builtin("echo", "Print arguments", "echo [text...]", cmdEcho),
		builtin("grep", "Search file contents", "grep <pattern> <file...>", cmdGrep),
		builtin("chmod", "Change file permissions", "chmod <mode> <file...>", cmdChmod),
		builtin("chown", "Change file owner", "chown <owner[:group]> <file...>", cmdChown),
		builtin("whoami", "Print the session user", "whoami", cmdWhoami),
		builtin("hostname", "Print the system name", "hostname", cmdHostname),
		builtin("who", "Show who is logged in", "who", cmdWho),
		builtin("date", "Print the current date and time", "date", cmdDate),
		builtin("uptime", "Show how long the system has been running", "uptime", cmdUptime),
		builtin("clear", "Clear the terminal screen", "clear", cmdClear),
		builtin("exit", "Close the terminal", "exit", cmdExit),
		builtin("logout", "Log out of the session", "logout", cmdLogout),
		builtin("reset", "Restore the default filesystem", "reset", cmdReset),
		builtin("export", "Set session environment variables", "export [NAME=value...]", cmdExport),
		builtin("alias", "Define command aliases", "alias [name=value...]", cmdAlias),
		history,
	)
}
