package gantry

// PathEntry is a single location on a module's lookup path: the packaged
// artifact itself, a nested library inside it, an exploded directory, or an
// extension's lookup root. Entries compare by exact value equality; composed
// paths never contain the same entry twice.
type PathEntry string

// Policy selects how the extensions a module depends on are chosen.
// The policy is fixed per process for the lifetime of the host.
type Policy int

const (
	// PolicyExplicit selects only the extensions named by the module's
	// descriptor. Naming an unregistered extension fails the assembly.
	PolicyExplicit Policy = iota

	// PolicyAll selects every registered extension in registry priority
	// order, ignoring the descriptor's declared dependency names.
	PolicyAll
)

// String returns the policy name as used in configuration and CLI flags.
func (p Policy) String() string {
	switch p {
	case PolicyExplicit:
		return "explicit"
	case PolicyAll:
		return "all"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a configuration string into a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "explicit":
		return PolicyExplicit, true
	case "all":
		return PolicyAll, true
	default:
		return PolicyExplicit, false
	}
}

// Config carries the process-wide assembly configuration. Construct it once
// at host startup and pass it explicitly to the components that need it;
// nothing in this library reads ambient global state. A nil Config where one
// is required is an invalid-config error, not a silent default.
type Config struct {
	// DependencyPolicy picks explicit or all-extensions dependency selection
	// for every module assembled in this process.
	DependencyPolicy Policy

	// Embedded marks the host as running in embedded mode: exploded
	// directory-form artifacts are recognized as modules without the marker
	// entry check.
	Embedded bool

	// UnpackOnOpen unpacks zip-backed artifacts to an adjacent directory
	// when they are opened in embedded mode, so the module runs from an
	// exploded form.
	UnpackOnOpen bool

	// HostName is the module name used when assembling the embedded host
	// module. Required only for that construction path.
	HostName string
}

// DefaultConfig returns the configuration used by a standalone host:
// explicit dependency selection, no embedded mode.
func DefaultConfig() *Config {
	return &Config{DependencyPolicy: PolicyExplicit}
}
