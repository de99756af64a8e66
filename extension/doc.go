// Package extension models shared capability providers and the process
// registry that owns them.
//
// An Extension is immutable after construction: a name unique within
// the registry, a strict semver version, a priority (lower sorts
// earlier), compiled export surfaces (exact symbols, symbol stems,
// exact resource paths, resource prefix and suffix stems), and one
// lookup-root path entry contributed to dependent modules' search
// paths.
//
// The Registry hands extensions to dependency resolution in a single
// deterministic order: ascending priority, ties broken by name.
// Registration is expected to finish before modules resolve against the
// registry; a resolution racing a mutation may observe a mix of old and
// new contents.
//
// Extensions enter the registry either programmatically (New + Register)
// or from declaration files in YAML or JSON form:
//
//	extensions:
//	  - name: ext-metrics
//	    version: 1.4.0
//	    priority: 10
//	    root: /opt/ext-metrics
//	    exports:
//	      symbols: ["com.vendor.metrics.*", "com.vendor.Counter"]
//	      resources: ["metrics/*", "*.prom"]
package extension
