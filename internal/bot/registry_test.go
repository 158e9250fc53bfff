package bot

import (
	"testing"
)

// stubModule is a test double for Module
type stubModule struct {
	name          string
	commands      []*Command
	eventHandlers []EventHandler
	initErr       error
	shutErr       error
}

func (m *stubModule) Name() string                       { return m.name }
func (m *stubModule) Commands() []*Command               { return m.commands }
func (m *stubModule) EventHandlers() []EventHandler      { return m.eventHandlers }
func (m *stubModule) Init(deps ModuleDependencies) error { return m.initErr }
func (m *stubModule) Shutdown() error                    { return m.shutErr }

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()

	mod := &stubModule{name: "test-module"}
	reg.Register(mod)

	modules := reg.Modules()
	if len(modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(modules))
	}

	if modules[0].Name() != "test-module" {
		t.Errorf("expected module name %q, got %q", "test-module", modules[0].Name())
	}
}

func TestRegistry_ModulesReturnsSnapshot(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubModule{name: "module-1"})

	modules := reg.Modules()

	// Register another module after getting snapshot
	reg.Register(&stubModule{name: "module-2"})

	if len(modules) != 1 {
		t.Errorf("expected snapshot to have 1 module, got %d", len(modules))
	}
}

func TestGlobalRegistry(t *testing.T) {
	ResetGlobalRegistry()
	defer ResetGlobalRegistry()

	Register(&stubModule{name: "global-test"})

	modules := Modules()
	if len(modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(modules))
	}
	if modules[0].Name() != "global-test" {
		t.Errorf("expected module name %q, got %q", "global-test", modules[0].Name())
	}
}

func TestCommandTable_LookupByNameAndAlias(t *testing.T) {
	join := &Command{Name: "join", Aliases: []string{"j"}}
	leave := &Command{Name: "leave", Aliases: []string{"l"}}

	table, err := NewCommandTable(leave, join)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range []string{"join", "j"} {
		if cmd, ok := table.Lookup(key); !ok || cmd != join {
			t.Errorf("Lookup(%q) = %v, %v; want join", key, cmd, ok)
		}
	}
	if _, ok := table.Lookup("missing"); ok {
		t.Error("expected missing command to be absent")
	}

	list := table.List()
	if len(list) != 2 || list[0].Name != "join" || list[1].Name != "leave" {
		t.Errorf("expected commands sorted by name, got %v", list)
	}
}

func TestCommandTable_RejectsConflicts(t *testing.T) {
	_, err := NewCommandTable(
		&Command{Name: "stop", Aliases: []string{"s"}},
		&Command{Name: "skip", Aliases: []string{"s"}},
	)
	if err == nil {
		t.Error("expected conflict error, got nil")
	}
}
