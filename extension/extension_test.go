package extension

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gantryhq/gantry"
	gantryerrors "github.com/gantryhq/gantry/errors"
)

func TestNewExtension(t *testing.T) {
	ext, err := New(Spec{
		Name:      "ext-metrics",
		Version:   "1.4.0",
		Priority:  10,
		Symbols:   []string{"com.vendor.metrics.*", "com.vendor.Counter"},
		Resources: []string{"metrics/*", "*.prom", "metrics.yaml"},
		Root:      "/opt/ext-metrics",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if ext.Name() != "ext-metrics" {
		t.Errorf("Name() = %q", ext.Name())
	}
	if ext.Version() != "1.4.0" {
		t.Errorf("Version() = %q, want canonical 1.4.0", ext.Version())
	}
	if ext.Priority() != 10 {
		t.Errorf("Priority() = %d, want 10", ext.Priority())
	}
	if ext.Root() != gantry.PathEntry("/opt/ext-metrics") {
		t.Errorf("Root() = %q", ext.Root())
	}

	syms := ext.Symbols()
	if got := syms.Exact(); !reflect.DeepEqual(got, []string{"com.vendor.Counter"}) {
		t.Errorf("symbol exacts = %v", got)
	}
	if got := syms.Stems(); !reflect.DeepEqual(got, []string{"com.vendor.metrics."}) {
		t.Errorf("symbol stems = %v", got)
	}

	res := ext.Resources()
	if got := res.Exact(); !reflect.DeepEqual(got, []string{"metrics.yaml"}) {
		t.Errorf("resource exacts = %v", got)
	}
	if got := res.Prefixes(); !reflect.DeepEqual(got, []string{"metrics/"}) {
		t.Errorf("resource prefixes = %v", got)
	}
	if got := res.Suffixes(); !reflect.DeepEqual(got, []string{".prom"}) {
		t.Errorf("resource suffixes = %v", got)
	}
}

func TestNewExtensionValidation(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"empty name", Spec{Version: "1.0.0", Root: "/r"}},
		{"empty root", Spec{Name: "x", Version: "1.0.0"}},
		{"bad version", Spec{Name: "x", Version: "one.two", Root: "/r"}},
		{"loose version", Spec{Name: "x", Version: "1.0", Root: "/r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.spec); err == nil {
				t.Error("New() succeeded, want invalid_declaration")
			} else {
				var gerr *gantryerrors.Error
				if !errors.As(err, &gerr) || gerr.Kind != gantryerrors.KindInvalidDeclaration {
					t.Errorf("error = %v, want invalid_declaration", err)
				}
			}
		})
	}
}

func TestExtensionZeroPriority(t *testing.T) {
	ext, err := New(Spec{Name: "urgent", Version: "1.0.0", Priority: 0, Root: "/r"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if ext.Priority() != 0 {
		t.Errorf("Priority() = %d, want 0 kept as-is", ext.Priority())
	}
}
