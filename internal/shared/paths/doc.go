// Package paths normalizes virtual filesystem paths.
//
// Resolution never fails: relative paths are folded against a working directory,
// `~` expands to the acting user's home, and a small allow-list of absolute
// aliases (/Desktop, /Documents, /Downloads) is rewritten under home. Every other
// absolute path passes through untouched.
//
//	r := paths.NewResolver("/home/user")
//	r.Resolve("~/Desktop", "/")        // /home/user/Desktop
//	r.Resolve("/Documents/a.txt", "/") // /home/user/Documents/a.txt
//	r.Resolve("../etc", "/home")       // /etc
//	r.Resolve("/bin", "/tmp")          // /bin
package paths
