package vfs

import "errors"

var (
	ErrNotFound     = errors.New("No such file or directory")
	ErrNotDirectory = errors.New("Not a directory")
	ErrIsDirectory  = errors.New("Is a directory")
	ErrExists       = errors.New("File exists")
	ErrPermission   = errors.New("Permission denied")
	ErrNotPermitted = errors.New("Operation not permitted")
	ErrInvalidName  = errors.New("Invalid argument")
	ErrInvalidMode  = errors.New("invalid mode")
	ErrProtected    = errors.New("Device or resource busy")
	ErrInvalidMove  = errors.New("cannot move a directory into itself")
	ErrUnknownUser  = errors.New("invalid user")
)

var sentinels = []error{
	ErrNotFound, ErrNotDirectory, ErrIsDirectory, ErrExists, ErrPermission, ErrNotPermitted,
	ErrInvalidName, ErrInvalidMode, ErrProtected, ErrInvalidMove, ErrUnknownUser,
}

// Reason returns the conventional message for err, e.g. "Permission denied".
// Errors outside this package read "Operation failed".
func Reason(err error) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "Operation failed"
}
