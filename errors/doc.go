// Package errors provides structured error types for the module engine.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes location context and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseNormalize, errors.KindInvalidManifest).
//		Path("META-INF/MANIFEST.MF").
//		Detail("continuation line before first attribute").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidArtifact("orders", "marker entry missing")
//	err := errors.NotFound(errors.PhaseResolve, "extension", "ext-cache")
//
// All errors implement the standard error interface and support errors.Is/As.
// Wrapped I/O causes stay reachable: errors.Is(err, fs.ErrNotExist) holds
// through the IO constructor.
package errors
