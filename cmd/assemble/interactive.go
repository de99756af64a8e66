package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gantryhq/gantry/descriptor"
	"github.com/gantryhq/gantry/extension"
	"github.com/gantryhq/gantry/host"
	"github.com/gantryhq/gantry/module"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var tabNames = []string{"overview", "extensions", "symbols", "resources", "paths"}

const (
	tabOverview = iota
	tabExtensions
	tabSymbols
	tabResources
	tabPaths
)

type exportRow struct {
	kind   string
	key    string
	owners string
}

type inspectorModel struct {
	err      error
	h        *host.Host
	mod      *module.Module
	source   string
	hostName string
	ov       descriptor.Overrides

	symbolRows   []exportRow
	resourceRows []exportRow

	tab      int
	selected int
	query    textinput.Model
	querying bool
	answer   string
}

func newInspectorModel(h *host.Host, source, hostName string, ov descriptor.Overrides) *inspectorModel {
	ti := textinput.New()
	ti.Prompt = "lookup: "
	ti.Width = 48
	return &inspectorModel{
		h:        h,
		source:   source,
		hostName: hostName,
		ov:       ov,
		query:    ti,
	}
}

type assembledMsg struct {
	err error
	mod *module.Module
}

func (m *inspectorModel) Init() tea.Cmd {
	return m.assemble
}

func (m *inspectorModel) assemble() tea.Msg {
	mod, err := assembleOnce(m.h, m.source, m.hostName, m.ov)
	if err != nil {
		return assembledMsg{err: err}
	}
	return assembledMsg{mod: mod}
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.querying {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter":
				m.answer = m.lookup(m.query.Value())
				m.query.Blur()
				m.querying = false
				return m, nil
			case "esc":
				m.query.Blur()
				m.querying = false
				m.answer = ""
				return m, nil
			}
			var cmd tea.Cmd
			m.query, cmd = m.query.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "left", "h":
			if m.tab > 0 {
				m.tab--
				m.selected = 0
				m.answer = ""
			}

		case "right", "l", "tab":
			if m.tab < len(tabNames)-1 {
				m.tab++
				m.selected = 0
				m.answer = ""
			} else if msg.String() == "tab" {
				m.tab = 0
				m.selected = 0
				m.answer = ""
			}

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < m.listLen()-1 {
				m.selected++
			}

		case "/":
			if m.tab == tabSymbols || m.tab == tabResources {
				m.querying = true
				m.query.SetValue("")
				m.query.Focus()
				return m, textinput.Blink
			}
		}

	case assembledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mod = msg.mod
		m.buildRows()
	}

	return m, nil
}

// lookup resolves the query through the module's deny-list-aware
// accessors, so the answer matches what a dependent would observe.
func (m *inspectorModel) lookup(q string) string {
	q = strings.TrimSpace(q)
	if q == "" || m.mod == nil {
		return ""
	}
	switch m.tab {
	case tabSymbols:
		ext, ok := m.mod.ExportProvider(q)
		if !ok {
			return q + ": no provider"
		}
		return q + " -> " + ext.Name()
	case tabResources:
		claimants := m.mod.ResourceClaimants(q)
		if len(claimants) == 0 {
			return q + ": no claimants"
		}
		names := make([]string, len(claimants))
		for i, ext := range claimants {
			names[i] = ext.Name()
		}
		return q + " -> " + strings.Join(names, ", ")
	default:
		return ""
	}
}

func (m *inspectorModel) buildRows() {
	ex := m.mod.Exports()

	m.symbolRows = nil
	for _, k := range ex.SymbolKeys() {
		if ext, ok := ex.Symbol(k); ok {
			m.symbolRows = append(m.symbolRows, exportRow{kind: "exact", key: k, owners: ext.Name()})
		}
	}
	for _, k := range ex.SymbolStemKeys() {
		if ext, ok := ex.SymbolStem(k); ok {
			m.symbolRows = append(m.symbolRows, exportRow{kind: "stem", key: k + "*", owners: ext.Name()})
		}
	}

	m.resourceRows = nil
	for _, k := range ex.ResourceKeys() {
		m.resourceRows = append(m.resourceRows, exportRow{kind: "exact", key: k, owners: claimantNames(ex.Resource(k))})
	}
	for _, k := range ex.ResourcePrefixKeys() {
		m.resourceRows = append(m.resourceRows, exportRow{kind: "prefix", key: k + "*", owners: claimantNames(ex.ResourcePrefix(k))})
	}
	for _, k := range ex.ResourceSuffixKeys() {
		m.resourceRows = append(m.resourceRows, exportRow{kind: "suffix", key: "*" + k, owners: claimantNames(ex.ResourceSuffix(k))})
	}
}

func (m *inspectorModel) listLen() int {
	if m.mod == nil {
		return 0
	}
	switch m.tab {
	case tabExtensions:
		return len(m.mod.Extensions())
	case tabSymbols:
		return len(m.symbolRows)
	case tabResources:
		return len(m.resourceRows)
	case tabPaths:
		return len(m.mod.SearchPath())
	default:
		return 0
	}
}

func (m *inspectorModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.mod == nil {
		return "Assembling module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Gantry Inspector"))
	b.WriteString(" ")
	b.WriteString(m.mod.Identity())
	b.WriteString("\n\n")

	for i, name := range tabNames {
		if i == m.tab {
			b.WriteString(selectedStyle.Render(" " + name + " "))
		} else {
			b.WriteString(" " + name + " ")
		}
	}
	b.WriteString("\n\n")

	switch m.tab {
	case tabOverview:
		m.viewOverview(&b)
	case tabExtensions:
		m.viewExtensions(&b)
	case tabSymbols:
		m.viewRows(&b, m.symbolRows)
	case tabResources:
		m.viewRows(&b, m.resourceRows)
	case tabPaths:
		m.viewPaths(&b)
	}

	b.WriteString("\n")
	if m.querying {
		b.WriteString(m.query.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter lookup • esc cancel"))
	} else {
		if m.answer != "" {
			b.WriteString(resultStyle.Render(m.answer))
			b.WriteString("\n")
		}
		help := "←/→ tab • ↑/↓ select • q quit"
		if m.tab == tabSymbols || m.tab == tabResources {
			help = "←/→ tab • ↑/↓ select • / lookup • q quit"
		}
		b.WriteString(helpStyle.Render(help))
	}

	return b.String()
}

func (m *inspectorModel) viewOverview(b *strings.Builder) {
	ex := m.mod.Exports()
	fmt.Fprintf(b, "State:        %s/%s\n", m.mod.State(), m.mod.Reason())
	if m.mod.EntryPoint() != "" {
		fmt.Fprintf(b, "Entry point:  %s\n", m.mod.EntryPoint())
	}
	fmt.Fprintf(b, "Priority:     %d\n", m.mod.Priority())
	fmt.Fprintf(b, "Context path: %s\n", m.mod.ContextPath())
	if m.mod.WorkDir() != "" {
		fmt.Fprintf(b, "Work dir:     %s\n", m.mod.WorkDir())
	}
	fmt.Fprintf(b, "Extensions:   %d\n", len(m.mod.Extensions()))
	fmt.Fprintf(b, "Exports:      %d symbols, %d stems, %d resources\n",
		len(ex.SymbolKeys()), len(ex.SymbolStemKeys()),
		len(ex.ResourceKeys())+len(ex.ResourcePrefixKeys())+len(ex.ResourceSuffixKeys()))
	fmt.Fprintf(b, "Own path:     %d entries\n", len(m.mod.OwnPath()))
	fmt.Fprintf(b, "Search path:  %d entries\n", len(m.mod.SearchPath()))
}

func (m *inspectorModel) viewExtensions(b *strings.Builder) {
	exts := m.mod.Extensions()
	if len(exts) == 0 {
		b.WriteString("No extensions selected.\n")
		return
	}
	for i, ext := range exts {
		line := fmt.Sprintf("%s v%s (priority %d) root=%s",
			nameStyle.Render(ext.Name()), ext.Version(), ext.Priority(), ext.Root())
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if m.selected < len(exts) {
		ext := exts[m.selected]
		syms := ext.Symbols()
		res := ext.Resources()
		b.WriteString("\n")
		fmt.Fprintf(b, "Declares: %d symbols, %d stems, %d resources, %d prefixes, %d suffixes\n",
			len(syms.Exact()), len(syms.Stems()),
			len(res.Exact()), len(res.Prefixes()), len(res.Suffixes()))
	}
}

func (m *inspectorModel) viewRows(b *strings.Builder, rows []exportRow) {
	if len(rows) == 0 {
		b.WriteString("No entries in this index.\n")
		return
	}
	for i, r := range rows {
		line := fmt.Sprintf("%-7s %s -> %s", r.kind, keyStyle.Render(r.key), r.owners)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
}

func (m *inspectorModel) viewPaths(b *strings.Builder) {
	own := make(map[string]bool, len(m.mod.OwnPath()))
	for _, e := range m.mod.OwnPath() {
		own[string(e)] = true
	}
	for i, e := range m.mod.SearchPath() {
		tag := "ext"
		if own[string(e)] {
			tag = "own"
		}
		line := fmt.Sprintf("%-3s %s", tag, e)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
}

func claimantNames(claimants []*extension.Extension) string {
	names := make([]string, len(claimants))
	for i, ext := range claimants {
		names[i] = ext.Name()
	}
	return strings.Join(names, ", ")
}

func runInteractive(h *host.Host, source, hostName string, ov descriptor.Overrides) error {
	p := tea.NewProgram(newInspectorModel(h, source, hostName, ov), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
