package assembly

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gantryhq/gantry"
	gantryerrors "github.com/gantryhq/gantry/errors"
	"github.com/gantryhq/gantry/extension"
)

func makeExt(t *testing.T, spec extension.Spec) *extension.Extension {
	t.Helper()
	if spec.Version == "" {
		spec.Version = "1.0.0"
	}
	if spec.Root == "" {
		spec.Root = gantry.PathEntry("/opt/" + spec.Name)
	}
	ext, err := extension.New(spec)
	if err != nil {
		t.Fatalf("extension.New(%s): %v", spec.Name, err)
	}
	return ext
}

func makeRegistry(t *testing.T, exts ...*extension.Extension) *extension.Registry {
	t.Helper()
	reg := extension.NewRegistry()
	for _, ext := range exts {
		if err := reg.Register(ext); err != nil {
			t.Fatalf("Register(%s): %v", ext.Name(), err)
		}
	}
	return reg
}

func selectionNames(exts []*extension.Extension) []string {
	names := make([]string, len(exts))
	for i, e := range exts {
		names[i] = e.Name()
	}
	return names
}

func TestResolveExplicitEmptyDeps(t *testing.T) {
	reg := makeRegistry(t,
		makeExt(t, extension.Spec{Name: "ext-a", Priority: 10}),
	)
	r := NewResolver(gantry.PolicyExplicit)

	selected, exports, err := r.Resolve(nil, reg)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(selected) != 0 {
		t.Errorf("selected = %v, want none", selectionNames(selected))
	}
	if exports == nil {
		t.Fatal("exports = nil, want empty indices")
	}
	if !exports.IsEmpty() {
		t.Error("exports not empty for empty dependency list")
	}
}

func TestResolveExplicitMissingNames(t *testing.T) {
	reg := makeRegistry(t,
		makeExt(t, extension.Spec{Name: "ext-a", Priority: 10}),
	)
	r := NewResolver(gantry.PolicyExplicit)

	_, _, err := r.Resolve([]string{"ext-a", "ext-gone", "ext-lost", "ext-gone"}, reg)
	if err == nil {
		t.Fatal("Resolve() with missing names succeeded")
	}

	var unresolved *gantryerrors.UnresolvedDependencyError
	if !errors.As(err, &unresolved) {
		t.Fatalf("error = %T, want *UnresolvedDependencyError", err)
	}
	want := []string{"ext-gone", "ext-lost"}
	if !reflect.DeepEqual(unresolved.Names, want) {
		t.Errorf("missing names = %v, want %v (all missing, declaration order, de-duplicated)", unresolved.Names, want)
	}
}

func TestResolveExplicitRegistryOrderNotInputOrder(t *testing.T) {
	extA := makeExt(t, extension.Spec{Name: "ext-a", Priority: 10})
	extB := makeExt(t, extension.Spec{Name: "ext-b", Priority: 20})
	extC := makeExt(t, extension.Spec{Name: "ext-c", Priority: 30})
	reg := makeRegistry(t, extC, extA, extB)
	r := NewResolver(gantry.PolicyExplicit)

	selected, _, err := r.Resolve([]string{"ext-c", "ext-a"}, reg)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := selectionNames(selected); !reflect.DeepEqual(got, []string{"ext-a", "ext-c"}) {
		t.Errorf("selection = %v, want registry order [ext-a ext-c]", got)
	}
}

func TestResolveExplicitDuplicateNames(t *testing.T) {
	reg := makeRegistry(t,
		makeExt(t, extension.Spec{Name: "ext-a", Priority: 10, Resources: []string{"a.txt"}}),
	)
	r := NewResolver(gantry.PolicyExplicit)

	selected, exports, err := r.Resolve([]string{"ext-a", "ext-a", "ext-a"}, reg)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(selected) != 1 {
		t.Fatalf("selection = %v, want single ext-a", selectionNames(selected))
	}
	// One selection means one claim, not three.
	if got := exports.Resource("a.txt"); len(got) != 1 {
		t.Errorf("Resource(a.txt) has %d claimants, want 1", len(got))
	}
}

func TestResolveAllIgnoresDeclaredNames(t *testing.T) {
	extA := makeExt(t, extension.Spec{Name: "ext-a", Priority: 10})
	extB := makeExt(t, extension.Spec{Name: "ext-b", Priority: 20})
	reg := makeRegistry(t, extB, extA)
	r := NewResolver(gantry.PolicyAll)

	selected, _, err := r.Resolve([]string{"ext-nonexistent"}, reg)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := selectionNames(selected); !reflect.DeepEqual(got, []string{"ext-a", "ext-b"}) {
		t.Errorf("selection = %v, want every extension in priority order", got)
	}
}

func TestResolveAllEmptyRegistry(t *testing.T) {
	r := NewResolver(gantry.PolicyAll)
	selected, exports, err := r.Resolve(nil, extension.NewRegistry())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(selected) != 0 || !exports.IsEmpty() {
		t.Error("empty registry must yield empty selection and indices")
	}
}

func TestResolveSymbolFirstWriterWins(t *testing.T) {
	e1 := makeExt(t, extension.Spec{
		Name:     "e1",
		Priority: 10,
		Symbols:  []string{"pkg.Foo", "pkg.shared.*"},
	})
	e2 := makeExt(t, extension.Spec{
		Name:     "e2",
		Priority: 20,
		Symbols:  []string{"pkg.Foo", "pkg.shared.*"},
	})
	reg := makeRegistry(t, e2, e1)
	r := NewResolver(gantry.PolicyExplicit)

	_, exports, err := r.Resolve([]string{"e2", "e1"}, reg)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got, ok := exports.Symbol("pkg.Foo"); !ok || got.Name() != "e1" {
		t.Errorf("Symbol(pkg.Foo) = %v, want e1 (priority-first extension wins)", got)
	}
	if got, ok := exports.SymbolStem("pkg.shared."); !ok || got.Name() != "e1" {
		t.Errorf("SymbolStem(pkg.shared.) = %v, want e1", got)
	}
}

func TestResolveResourceAccumulates(t *testing.T) {
	e1 := makeExt(t, extension.Spec{
		Name:      "e1",
		Priority:  10,
		Resources: []string{"META-INF/x.txt", "config/*", "*.conf"},
	})
	e2 := makeExt(t, extension.Spec{
		Name:      "e2",
		Priority:  20,
		Resources: []string{"META-INF/x.txt", "config/*", "*.conf"},
	})
	reg := makeRegistry(t, e1, e2)
	r := NewResolver(gantry.PolicyAll)

	_, exports, err := r.Resolve(nil, reg)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := selectionNames(exports.Resource("META-INF/x.txt")); !reflect.DeepEqual(got, []string{"e1", "e2"}) {
		t.Errorf("Resource(META-INF/x.txt) = %v, want [e1 e2]", got)
	}
	if got := selectionNames(exports.ResourcePrefix("config/")); !reflect.DeepEqual(got, []string{"e1", "e2"}) {
		t.Errorf("ResourcePrefix(config/) = %v, want [e1 e2]", got)
	}
	if got := selectionNames(exports.ResourceSuffix(".conf")); !reflect.DeepEqual(got, []string{"e1", "e2"}) {
		t.Errorf("ResourceSuffix(.conf) = %v, want [e1 e2]", got)
	}
}

func TestResolveDeterministicAcrossCalls(t *testing.T) {
	e1 := makeExt(t, extension.Spec{
		Name:      "e1",
		Priority:  10,
		Symbols:   []string{"a.X", "b.*"},
		Resources: []string{"r.txt", "p/*", "*.s"},
	})
	e2 := makeExt(t, extension.Spec{
		Name:      "e2",
		Priority:  10, // same priority: name breaks the tie
		Symbols:   []string{"a.X"},
		Resources: []string{"r.txt"},
	})
	reg := makeRegistry(t, e2, e1)
	r := NewResolver(gantry.PolicyAll)

	first, firstExports, err := r.Resolve(nil, reg)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		selected, exports, err := r.Resolve(nil, reg)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !reflect.DeepEqual(selectionNames(selected), selectionNames(first)) {
			t.Fatalf("iteration %d: selection changed", i)
		}
		if !reflect.DeepEqual(exports.SymbolKeys(), firstExports.SymbolKeys()) {
			t.Fatalf("iteration %d: symbol keys changed", i)
		}
		if got, _ := exports.Symbol("a.X"); got.Name() != "e1" {
			t.Fatalf("iteration %d: Symbol(a.X) = %s, want e1", i, got.Name())
		}
	}
}
