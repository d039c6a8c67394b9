package permissions

import "slices"

// RootUID is the superuser's uid.
const RootUID = 0

// RootName is the superuser's username.
const RootName = "root"

// Action is an access request.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
	ActionExecute
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionWrite:
		return "write"
	case ActionExecute:
		return "execute"
	default:
		return "unknown"
	}
}

func (a Action) bit() Bits {
	switch a {
	case ActionRead:
		return Read
	case ActionWrite:
		return Write
	case ActionExecute:
		return Execute
	default:
		return All
	}
}

// Subject is the acting user.
type Subject struct {
	Username string
	UID      int
	Groups   []string
}

// IsRoot reports whether the subject bypasses checks.
func (s Subject) IsRoot() bool {
	return s.UID == RootUID || s.Username == RootName
}

// InGroup reports group membership.
func (s Subject) InGroup(group string) bool {
	return group != "" && slices.Contains(s.Groups, group)
}

// Object is anything carrying ownership and a mode.
type Object struct {
	Owner string
	Group string
	Mode  Mode
}

// Triple returns the rwx triple that applies to sub.
func (o Object) Triple(sub Subject) Bits {
	switch {
	case sub.Username == o.Owner:
		return o.Mode.Owner
	case sub.InGroup(o.Group):
		return o.Mode.Group
	default:
		return o.Mode.Other
	}
}

// Check reports whether sub may perform action on obj.
func Check(obj Object, sub Subject, action Action) bool {
	if sub.IsRoot() {
		return true
	}
	return obj.Triple(sub).Has(action.bit())
}

// CanChmod is true for the owner and for root.
func CanChmod(obj Object, sub Subject) bool {
	return sub.IsRoot() || sub.Username == obj.Owner
}

// CanChown is true only for root.
func CanChown(sub Subject) bool {
	return sub.IsRoot()
}
