package extension

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/gantryhq/gantry/errors"
)

// Registry owns the process's extensions for their lifetime. Methods
// are individually safe for concurrent use; callers are expected to
// finish registration before modules resolve against the registry. A
// resolution spanning several reads that races a mutation may observe a
// mix of old and new contents.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*Extension
	ordered []*Extension
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Extension)}
}

// Register adds ext to the registry. A second extension with the same
// name is rejected.
func (r *Registry) Register(ext *Extension) error {
	if ext == nil {
		return errors.New(errors.PhaseRegistry, errors.KindInvalidDeclaration).
			Detail("nil extension").
			Build()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[ext.Name()]; exists {
		return errors.Duplicate(errors.PhaseRegistry, "extension", ext.Name())
	}

	r.byName[ext.Name()] = ext
	r.ordered = append(r.ordered, ext)
	sort.SliceStable(r.ordered, func(i, j int) bool {
		a, b := r.ordered[i], r.ordered[j]
		if a.Priority() != b.Priority() {
			return a.Priority() < b.Priority()
		}
		return a.Name() < b.Name()
	})

	Logger().Info("extension registered",
		zap.String("name", ext.Name()),
		zap.String("version", ext.Version()),
		zap.Int("priority", ext.Priority()))

	return nil
}

// Unregister removes the named extension and reports whether it was
// present. Modules already holding the extension keep their references.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; !exists {
		return false
	}
	delete(r.byName, name)
	for i, ext := range r.ordered {
		if ext.Name() == name {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}
	return true
}

// FindByName returns the named extension.
func (r *Registry) FindByName(name string) (*Extension, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext, ok := r.byName[name]
	return ext, ok
}

// AllInPriorityOrder returns every extension in the registry's defined
// order: ascending priority, ties broken by name. The returned slice is
// a copy.
func (r *Registry) AllInPriorityOrder() []*Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Extension, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of registered extensions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byName)
}

// Names returns the registered names in registry order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.ordered))
	for i, ext := range r.ordered {
		names[i] = ext.Name()
	}
	return names
}
