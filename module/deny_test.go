package module

import "testing"

func TestDenyListsDeniesSymbol(t *testing.T) {
	d := CompileDenyLists(
		[]string{"com.legacy", "com.internal.*"},
		[]string{"com.vendor.Unsafe"},
		nil,
	)

	tests := []struct {
		name   string
		symbol string
		want   bool
	}{
		{"denied class", "com.vendor.Unsafe", true},
		{"sibling of denied class", "com.vendor.Safe", false},
		{"direct member of denied package", "com.legacy.Client", true},
		{"subpackage of exact package entry", "com.legacy.io.Reader", false},
		{"direct member under package stem", "com.internal.Secrets", true},
		{"deep member under package stem", "com.internal.io.Raw", true},
		{"stem does not bleed into sibling", "com.internals.Thing", false},
		{"undotted symbol", "Client", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.DeniesSymbol(tt.symbol); got != tt.want {
				t.Errorf("DeniesSymbol(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestDenyListsDeniesResource(t *testing.T) {
	d := CompileDenyLists(nil, nil, []string{"secret/*", "*.key", "exact.pem"})

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"under denied prefix", "secret/tls.crt", true},
		{"denied suffix", "certs/server.key", true},
		{"denied exact", "exact.pem", true},
		{"allowed", "config/app.yaml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.DeniesResource(tt.path); got != tt.want {
				t.Errorf("DeniesResource(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDenyListsIsEmpty(t *testing.T) {
	if !CompileDenyLists(nil, nil, nil).IsEmpty() {
		t.Error("empty deny-lists reported non-empty")
	}
	if CompileDenyLists([]string{"a.b"}, nil, nil).IsEmpty() {
		t.Error("deny-lists with a package entry reported empty")
	}
}
