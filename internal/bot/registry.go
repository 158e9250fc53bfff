package bot

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds registered modules.
type Registry struct {
	mu      sync.RWMutex
	modules []Module
}

// NewRegistry creates a new module registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make([]Module, 0),
	}
}

// Register adds a module to the registry.
func (r *Registry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules = append(r.modules, m)
}

// Modules returns a snapshot of all registered modules.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Module, len(r.modules))
	copy(result, r.modules)
	return result
}

// Global registry instance for module self-registration via init()
var globalRegistry = NewRegistry()

// Register adds a module to the global registry.
// This is typically called from module init() functions.
func Register(m Module) {
	globalRegistry.Register(m)
}

// Modules returns all modules from the global registry.
func Modules() []Module {
	return globalRegistry.Modules()
}

// ResetGlobalRegistry resets the global registry.
// This is intended for testing purposes only.
func ResetGlobalRegistry() {
	globalRegistry = NewRegistry()
}

// CommandTable maps command names and aliases to commands.
// It is built once at startup and only read afterwards.
type CommandTable struct {
	byName   map[string]*Command
	commands []*Command
}

// NewCommandTable indexes commands by name and alias.
// Returns an error if two commands claim the same name or alias.
func NewCommandTable(commands ...*Command) (*CommandTable, error) {
	t := &CommandTable{byName: make(map[string]*Command)}

	for _, cmd := range commands {
		for _, key := range append([]string{cmd.Name}, cmd.Aliases...) {
			if existing, ok := t.byName[key]; ok {
				return nil, fmt.Errorf("command %q conflicts with %q", key, existing.Name)
			}
			t.byName[key] = cmd
		}
		t.commands = append(t.commands, cmd)
	}

	sort.Slice(t.commands, func(i, j int) bool {
		return t.commands[i].Name < t.commands[j].Name
	})

	return t, nil
}

// Lookup returns the command registered under name or alias.
func (t *CommandTable) Lookup(name string) (*Command, bool) {
	cmd, ok := t.byName[name]
	return cmd, ok
}

// List returns all commands sorted by name.
func (t *CommandTable) List() []*Command {
	result := make([]*Command, len(t.commands))
	copy(result, t.commands)
	return result
}
