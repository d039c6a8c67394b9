// Package shell implements the terminal: tokenizing, glob expansion, command
// dispatch, built-in commands, per-session state and the interactive line editor.
//
// A line is split on whitespace (there is no quoting), the first word is expanded
// once through the session's aliases, and every argument containing '*' but no
// '/' is matched against the current directory. Dispatch tries the Registry
// first, then the directories on the session's PATH. An executable whose content
// starts with "#!app <id>" asks the desktop to open that application.
//
// Commands never fail with Go errors. Everything, including "foobar: command not
// found", comes back as output lines plus Result.IsError.
package shell
