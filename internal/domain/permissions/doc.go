// Package permissions evaluates Unix-style owner/group/other access for
// virtual filesystem nodes.
//
// A Mode holds three rwx triples plus the directory flag and round-trips through the
// familiar ten character form ("drwxr-xr-x"). Check picks exactly one triple for the
// acting subject: owner if the usernames match, else group if the subject belongs to
// the node's group, else other. Root (uid 0 or the username "root") always passes.
//
// For directories, Execute gates traversal and Write gates adding or removing children.
package permissions
