package module

import (
	"sort"
	"sync"

	"github.com/gantryhq/gantry"
	"github.com/gantryhq/gantry/errors"
	"github.com/gantryhq/gantry/extension"
)

// Spec carries everything needed to construct a Module. The assembler
// fills it from a resolved descriptor; tests fill it directly.
type Spec struct {
	Name        string
	Version     string
	EntryPoint  string
	Priority    int
	ContextPath string

	// Raw deny-import patterns, compiled at construction.
	DenyPackages  []string
	DenyClasses   []string
	DenyResources []string

	// InjectedDependencies are the extension names whose services are
	// injected into the module at activation time.
	InjectedDependencies []string

	// Extensions is the resolved dependency set in registry order.
	Extensions []*extension.Extension

	// Exports are the resolved export indices. Nil means empty.
	Exports *Exports

	// OwnPath is the module's private scope; SearchPath the combined
	// scope its namespace walks. Both are stored as given.
	OwnPath    []gantry.PathEntry
	SearchPath []gantry.PathEntry

	// Exploded marks the namespace as serving a directory-backed
	// artifact.
	Exploded bool

	// WorkDir is the module's filesystem work directory, or "" when the
	// artifact is a directory deployed in place.
	WorkDir string
}

// Module is an isolated, versioned application unit. All fields except
// the lifecycle state are fixed at construction; the state advances only
// through Transition. A Module owns its Namespace and Exports and holds
// non-owning references to its Extensions, which the registry keeps
// alive for the process lifetime.
type Module struct {
	name        string
	version     string
	entryPoint  string
	priority    int
	contextPath string

	deny       DenyLists
	injected   []string
	extensions []*extension.Extension
	exports    *Exports

	ownPath    []gantry.PathEntry
	searchPath []gantry.PathEntry
	namespace  *Namespace
	workDir    string

	mu     sync.Mutex
	state  State
	reason Reason
}

// New constructs a Module from spec in the Unresolved/Created phase and
// binds its namespace to the search path. The assembler transitions the
// module to Resolved before returning it.
func New(spec Spec) *Module {
	exports := spec.Exports
	if exports == nil {
		exports = NewExports()
	}

	m := &Module{
		name:        spec.Name,
		version:     spec.Version,
		entryPoint:  spec.EntryPoint,
		priority:    spec.Priority,
		contextPath: spec.ContextPath,
		deny:        CompileDenyLists(spec.DenyPackages, spec.DenyClasses, spec.DenyResources),
		injected:    sortUniqueNames(spec.InjectedDependencies),
		extensions:  copyExts(spec.Extensions),
		exports:     exports,
		ownPath:     copyPath(spec.OwnPath),
		searchPath:  copyPath(spec.SearchPath),
		workDir:     spec.WorkDir,
		state:       StateUnresolved,
		reason:      ReasonCreated,
	}
	m.namespace = newNamespace(m, m.searchPath, spec.Exploded)
	return m
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// Version returns the module version.
func (m *Module) Version() string { return m.version }

// Identity returns "name@version", the module's registry identity.
func (m *Module) Identity() string {
	return m.name + "@" + m.version
}

// EntryPoint returns the class started when the module activates.
func (m *Module) EntryPoint() string { return m.entryPoint }

// Priority returns the module's ordering priority.
func (m *Module) Priority() int { return m.priority }

// ContextPath returns the module's web context path.
func (m *Module) ContextPath() string { return m.contextPath }

// Deny returns the compiled deny-lists.
func (m *Module) Deny() DenyLists { return m.deny }

// InjectedDependencies returns the injected extension names, sorted.
func (m *Module) InjectedDependencies() []string {
	out := make([]string, len(m.injected))
	copy(out, m.injected)
	return out
}

// Extensions returns the resolved extensions in registry order. The
// returned slice is a copy.
func (m *Module) Extensions() []*extension.Extension {
	return copyExts(m.extensions)
}

// ExtensionNames returns the resolved extension names in registry order.
func (m *Module) ExtensionNames() []string {
	names := make([]string, len(m.extensions))
	for i, ext := range m.extensions {
		names[i] = ext.Name()
	}
	return names
}

// Exports returns the module's export indices.
func (m *Module) Exports() *Exports { return m.exports }

// OwnPath returns the module's private scope: its artifact entries
// followed by caller-supplied extras. The returned slice is a copy.
func (m *Module) OwnPath() []gantry.PathEntry {
	return copyPath(m.ownPath)
}

// SearchPath returns the combined scope the namespace walks: the own
// path followed by the resolved extensions' lookup roots. The returned
// slice is a copy.
func (m *Module) SearchPath() []gantry.PathEntry {
	return copyPath(m.searchPath)
}

// Namespace returns the module's isolated namespace.
func (m *Module) Namespace() *Namespace { return m.namespace }

// WorkDir returns the module's filesystem work directory, or "" when
// none was recorded.
func (m *Module) WorkDir() string { return m.workDir }

// ExportProvider resolves a symbol name against the export indices,
// honoring the deny-lists: a denied symbol resolves to nothing even when
// an extension claims it.
func (m *Module) ExportProvider(symbol string) (*extension.Extension, bool) {
	if m.deny.DeniesSymbol(symbol) {
		return nil, false
	}
	return m.exports.SymbolProvider(symbol)
}

// ResourceClaimants resolves a resource path against the export indices,
// honoring the deny-lists. All candidate extensions are returned in
// claim order.
func (m *Module) ResourceClaimants(path string) []*extension.Extension {
	if m.deny.DeniesResource(path) {
		return nil
	}
	return m.exports.ResourceProviders(path)
}

// State returns the current lifecycle phase.
func (m *Module) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Reason returns what caused the last state change.
func (m *Module) Reason() Reason {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reason
}

// Transition moves the module to next, recording why. Illegal moves are
// rejected without changing the module.
func (m *Module) Transition(next State, why Reason) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.state.CanTransition(next) {
		return errors.IllegalTransition(m.state.String(), next.String())
	}
	m.state = next
	m.reason = why
	return nil
}

func sortUniqueNames(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		if s != "" {
			set[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func copyPath(in []gantry.PathEntry) []gantry.PathEntry {
	if len(in) == 0 {
		return nil
	}
	out := make([]gantry.PathEntry, len(in))
	copy(out, in)
	return out
}
