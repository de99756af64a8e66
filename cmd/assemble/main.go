package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/gantryhq/gantry"
	"github.com/gantryhq/gantry/descriptor"
	"github.com/gantryhq/gantry/extension"
	"github.com/gantryhq/gantry/host"
	"github.com/gantryhq/gantry/module"
)

func main() {
	var (
		modulePath  = flag.String("module", "", "Path to module artifact (zip or exploded directory)")
		registry    = flag.String("registry", "", "Extension declarations file (YAML or JSON)")
		deps        = flag.String("deps", "", "Dependency override (comma-separated extension names)")
		version     = flag.String("version", "", "Version override")
		extra       = flag.String("extra", "", "Extra lookup entries (comma-separated)")
		policy      = flag.String("policy", "explicit", "Dependency policy: explicit or all")
		embedded    = flag.Bool("embedded", false, "Embedded-host mode (exploded artifacts skip the marker check)")
		unpack      = flag.Bool("unpack", false, "Unpack zip artifacts next to the source before assembly (embedded mode)")
		hostName    = flag.String("host", "", "Assemble the embedded host module under this name; trailing args are its path entries")
		list        = flag.Bool("list", false, "List registered extensions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *modulePath == "" && *hostName == "" && !*list {
		fmt.Fprintln(os.Stderr, "Usage: assemble -module <artifact> [-registry file] [-deps a,b] [-version v] [-extra p,q]")
		fmt.Fprintln(os.Stderr, "       assemble -registry <file> -list")
		fmt.Fprintln(os.Stderr, "       assemble -host <name> [entries...]")
		fmt.Fprintln(os.Stderr, "       assemble -module <artifact> -i  (interactive mode)")
		os.Exit(1)
	}

	cfg := &gantry.Config{
		Embedded:     *embedded,
		UnpackOnOpen: *unpack,
		HostName:     *hostName,
	}
	p, ok := gantry.ParsePolicy(*policy)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown policy %q (want explicit or all)\n", *policy)
		os.Exit(1)
	}
	cfg.DependencyPolicy = p

	if err := run(cfg, *modulePath, *registry, *deps, *version, *extra, *hostName, *list, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *gantry.Config, modulePath, registryPath, depsStr, versionStr, extraStr, hostName string, listOnly, interactiveMode bool) error {
	h, err := host.New(cfg, nil)
	if err != nil {
		return err
	}

	if registryPath != "" {
		n, err := h.LoadExtensions(registryPath)
		if err != nil {
			return fmt.Errorf("load extensions: %w", err)
		}
		fmt.Printf("Registry: %d extension(s) from %s\n", n, registryPath)
	}

	if listOnly {
		printExtensions(h.Registry())
		return nil
	}

	var ov descriptor.Overrides
	ov.SpecifiedVersion = versionStr
	if depsStr != "" {
		ov.Dependencies = splitList(depsStr)
	}
	for _, e := range splitList(extraStr) {
		ov.ExtraEntries = append(ov.ExtraEntries, gantry.PathEntry(e))
	}

	if interactiveMode {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive(h, modulePath, hostName, ov)
	}

	m, err := assembleOnce(h, modulePath, hostName, ov)
	if err != nil {
		return err
	}
	printModule(m)
	return nil
}

// assembleOnce builds either the embedded host module (when hostName is
// set) or the module packaged at modulePath.
func assembleOnce(h *host.Host, modulePath, hostName string, ov descriptor.Overrides) (*module.Module, error) {
	if hostName != "" {
		entries := make([]gantry.PathEntry, 0, flag.NArg())
		for _, arg := range flag.Args() {
			entries = append(entries, gantry.PathEntry(arg))
		}
		return h.AssembleHost(entries)
	}
	return h.AssembleFile(modulePath, ov)
}

func printExtensions(reg *extension.Registry) {
	all := reg.AllInPriorityOrder()
	if len(all) == 0 {
		fmt.Println("No extensions registered.")
		return
	}
	fmt.Printf("\nExtensions (%d, priority order):\n", len(all))
	for _, ext := range all {
		syms := ext.Symbols()
		res := ext.Resources()
		fmt.Printf("  %-20s v%-10s priority=%-4d root=%s\n",
			ext.Name(), ext.Version(), ext.Priority(), ext.Root())
		fmt.Printf("  %-20s symbols=%d stems=%d resources=%d prefixes=%d suffixes=%d\n",
			"", len(syms.Exact()), len(syms.Stems()),
			len(res.Exact()), len(res.Prefixes()), len(res.Suffixes()))
	}
}

func printModule(m *module.Module) {
	fmt.Printf("\nModule: %s\n", m.Identity())
	fmt.Printf("State: %s/%s\n", m.State(), m.Reason())
	if m.EntryPoint() != "" {
		fmt.Printf("Entry point: %s\n", m.EntryPoint())
	}
	fmt.Printf("Priority: %d\n", m.Priority())
	fmt.Printf("Context path: %s\n", m.ContextPath())
	if m.WorkDir() != "" {
		fmt.Printf("Work dir: %s\n", m.WorkDir())
	}

	exts := m.Extensions()
	fmt.Printf("\nExtensions (%d):\n", len(exts))
	for _, ext := range exts {
		fmt.Printf("  %s v%s (priority %d)\n", ext.Name(), ext.Version(), ext.Priority())
	}

	ex := m.Exports()
	fmt.Printf("\nExport indices:\n")
	fmt.Printf("  symbols:          %d\n", len(ex.SymbolKeys()))
	fmt.Printf("  symbol stems:     %d\n", len(ex.SymbolStemKeys()))
	fmt.Printf("  resources:        %d\n", len(ex.ResourceKeys()))
	fmt.Printf("  resource prefixes: %d\n", len(ex.ResourcePrefixKeys()))
	fmt.Printf("  resource suffixes: %d\n", len(ex.ResourceSuffixKeys()))

	fmt.Printf("\nOwn path (%d):\n", len(m.OwnPath()))
	for _, e := range m.OwnPath() {
		fmt.Printf("  %s\n", e)
	}
	fmt.Printf("\nSearch path (%d):\n", len(m.SearchPath()))
	for _, e := range m.SearchPath() {
		fmt.Printf("  %s\n", e)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
