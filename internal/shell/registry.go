package shell

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is the table of built-in commands, kept in registration order.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command. Names must be unique.
func (r *Registry) Register(cmd Command) error {
	def := cmd.Definition()
	if def.Name == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[def.Name]; exists {
		return fmt.Errorf("command %q already registered", def.Name)
	}
	r.commands[def.Name] = cmd
	r.order = append(r.order, def.Name)
	return nil
}

// MustRegister is Register for static tables.
func (r *Registry) MustRegister(cmds ...Command) *Registry {
	for _, c := range cmds {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

// Get looks up a command by name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[name]
	return c, ok
}

// Has reports whether name is a built-in.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns definitions in registration order, skipping hidden commands
// unless includeHidden is set.
func (r *Registry) List(includeHidden bool) []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		def := r.commands[name].Definition()
		if def.Hidden && !includeHidden {
			continue
		}
		out = append(out, def)
	}
	return out
}

// Names returns every command name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.order))
	out = append(out, r.order...)
	sort.Strings(out)
	return out
}
