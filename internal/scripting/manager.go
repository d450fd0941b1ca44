package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// GlobalScope is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when a scope has no VM or lacks the hook.
const GlobalScope = "__global__"

// vm is one sandboxed LState. An LState is single-threaded, so every use
// holds mu.
type vm struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed LState per script scope and exposes hook
// dispatch. A scope is a location ID rendered as a string, or GlobalScope.
//
// Manager is safe for concurrent CallHook after loading completes. Calls into
// the same scope are serialized; different scopes run concurrently.
type Manager struct {
	mu     sync.RWMutex
	vms    map[string]*vm
	logger *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no scopes loaded.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		vms:    make(map[string]*vm),
		logger: logger,
	}
}

// LoadDir loads a script tree. Lua files directly under root go into the
// global VM; each subdirectory becomes the VM for the scope it is named after.
//
// Precondition: root must be a readable directory.
// Postcondition: Every scope found is loaded, or an error is returned.
func (m *Manager) LoadDir(root string, instLimit int) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("scripting: reading script root %q: %w", root, err)
	}
	if err := m.LoadGlobal(root, instLimit); err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := m.LoadScope(e.Name(), filepath.Join(root, e.Name()), instLimit); err != nil {
			return err
		}
	}
	m.logger.Info("scripts loaded",
		zap.String("root", root),
		zap.Int("scopes", m.ScopeCount()),
	)
	return nil
}

// LoadScope creates a sandboxed VM for scope, registers the engine module,
// then executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: scope must be non-empty; scriptDir must be a readable directory.
// Postcondition: The scope VM is registered; returns error on Lua load failure.
func (m *Manager) LoadScope(scope, scriptDir string, instLimit int) error {
	return m.loadInto(scope, scriptDir, instLimit)
}

// LoadGlobal creates the GlobalScope VM for shared scripts.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Global VM is registered; returns error on Lua load failure.
func (m *Manager) LoadGlobal(scriptDir string, instLimit int) error {
	return m.loadInto(GlobalScope, scriptDir, instLimit)
}

func (m *Manager) loadInto(key, scriptDir string, instLimit int) error {
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		err := withBudget(L, instLimit, func() error { return L.DoFile(path) })
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.vms[key]; ok {
		old.mu.Lock()
		old.L.Close()
		old.mu.Unlock()
	}
	m.vms[key] = &vm{L: L, limit: instLimit}
	m.mu.Unlock()
	return nil
}

// ScopeCount returns the number of loaded VMs, including the global one.
func (m *Manager) ScopeCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vms)
}

// HasHook reports whether hook is defined for scope or globally.
func (m *Manager) HasHook(scope, hook string) bool {
	for _, v := range m.candidates(scope) {
		v.mu.Lock()
		defined := v.L.GetGlobal(hook) != lua.LNil
		v.mu.Unlock()
		if defined {
			return true
		}
	}
	return false
}

// candidates returns the scope VM followed by the global VM, skipping missing ones.
func (m *Manager) candidates(scope string) []*vm {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*vm
	if v, ok := m.vms[scope]; ok {
		out = append(out, v)
	}
	if scope != GlobalScope {
		if v, ok := m.vms[GlobalScope]; ok {
			out = append(out, v)
		}
	}
	return out
}

// CallHook calls the named Lua global function in scope's VM. When the scope
// has no VM or does not define the hook, the GlobalScope VM is tried. Returns
// (LNil, nil) if the hook is not defined anywhere. Lua runtime errors,
// including an exhausted instruction budget, are logged at Warn level and
// never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error) {
	vms := m.candidates(scope)
	if len(vms) == 0 {
		m.logger.Info("scripting: no VM for scope",
			zap.String("scope", scope),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	for _, v := range vms {
		ret, found := m.call(v, scope, hook, args)
		if found {
			return ret, nil
		}
	}
	return lua.LNil, nil
}

func (m *Manager) call(v *vm, scope, hook string, args []lua.LValue) (lua.LValue, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, false
	}

	err := withBudget(v.L, v.limit, func() error {
		return v.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("scope", scope),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, true
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, true
}

// Close releases every VM.
//
// Postcondition: No scopes remain loaded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, v := range m.vms {
		v.mu.Lock()
		v.L.Close()
		v.mu.Unlock()
		delete(m.vms, key)
	}
}
