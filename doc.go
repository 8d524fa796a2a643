// Package rustext compiles Rust crates into Python extension modules.
//
// This package is the Go equivalent of the build_rust setup command: given
// descriptors of Rust extensions declared by a Python package, it drives
// cargo to compile each crate as a shared library and installs the result
// where the Python packaging layer expects compiled extension modules.
//
// # Build Flow
//
// For a batch of extensions the builder:
//  1. Probes the Rust toolchain once (rustc version)
//  2. Checks each extension's toolchain version constraint
//  3. Verifies the crate manifest exists
//  4. Selects the cargo feature for the target interpreter generation
//  5. Runs cargo with the proper profile flags and environment
//  6. Locates the built shared library and copies it into place
//
// # Basic Usage
//
// Create a builder and hand it the declared extensions:
//
//	builder := rustext.NewBuilder(&rustext.BuildConfig{
//	    BuildLib:      "build/lib",
//	    PythonPath:    "/usr/bin/python3",
//	    PythonVersion: "3.12.1",
//	})
//
//	extensions := []rustext.RustExtension{
//	    {Name: "mypkg._native", ManifestPath: "crate/Cargo.toml", Release: true},
//	}
//	results, err := builder.Build(ctx, extensions)
//
// Each extension is processed independently; a failing extension does not
// stop the rest of the batch. A missing toolchain fails the whole batch
// before any cargo invocation.
//
// # Editable Installs
//
// Development ("editable") install workflows rebuild extensions next to the
// package sources after their build_ext step. Chain BuildInplace for that:
//
//	results, err := builder.BuildInplace(ctx, extensions)
//
// # Error Handling
//
// Failures are typed and carry enough context to diagnose without a rerun:
// ToolchainMissingError, VersionMismatchError, ManifestNotFoundError,
// UnsupportedRuntimeError, CompilerFailedError and ArtifactNotFoundError
// all match with errors.As.
//
// # Platform Support
//
// Artifact lookup follows the host platform's shared-library extension
// (.dll on Windows, .dylib on macOS, .so elsewhere). Cross builds via
// CARGO_BUILD_TARGET are honored when locating cargo's output directory.
package rustext
