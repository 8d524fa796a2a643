package rustext

// RustExtension describes one Rust crate to compile into a Python extension
// module.
//
// A descriptor is immutable once constructed: the builder and installer
// only ever read it, and it carries no state between build invocations.
//
// Fields:
//   - Name: full dotted Python name of the extension (e.g. "mypkg._native"),
//     not a file name. When empty, a name is derived from the crate manifest
//     or, failing that, from the built library's file name.
//   - ManifestPath: path to the crate's Cargo.toml. Checked for existence
//     immediately before cargo runs, not at construction time, so build
//     scripts may generate the manifest after declaring the extension.
//   - Args: extra arguments appended verbatim to the cargo invocation,
//     in order.
//   - VersionConstraint: semver range the installed rustc must satisfy
//     (e.g. ">=1.50.0"). Empty accepts any installed toolchain.
//   - Quiet: suppresses echoing of the cargo command line and its output.
//     Captured output is still attached to failures.
//   - Release: selects cargo's release profile; debug is the default and
//     also determines which target subdirectory holds the built library.
type RustExtension struct {
	Name              string   // Dotted Python name, empty to derive from the crate
	ManifestPath      string   // Path to the crate's Cargo.toml
	Args              []string // Extra cargo arguments, order-significant
	VersionConstraint string   // Semver range for rustc, empty accepts any
	Quiet             bool     // Suppress command and output echoing
	Release           bool     // Build with cargo's release profile
}

// BuildConfig contains caller-side configuration for the build process.
//
// Install layout:
//   - BuildLib: staged build tree where compiled extensions are placed
//     (defaults to build/lib)
//   - SourceDir: package source root used for in-place installs
//   - Inplace: install compiled extensions alongside the package sources
//     instead of into BuildLib
//
// Python environment:
//   - PythonPath: path to the interpreter the extensions must link against.
//     Its directory is prepended to PATH for cargo so the interpreter
//     bindings detect this interpreter rather than whatever is on PATH.
//   - PythonVersion: interpreter version (e.g. "3.12.1") used to select the
//     cargo feature flag. When empty and PythonPath is set, the interpreter
//     is queried once per batch.
//
// Build behavior:
//   - ExtSuffix: file suffix for installed extension modules. Defaults to
//     .pyd on Windows and .so elsewhere.
//   - FeatureRules: overrides the interpreter-generation feature table.
//     Nil uses the built-in rules.
//   - Env: extra environment variables set for cargo, merged over the
//     ambient environment.
type BuildConfig struct {
	// Install layout
	BuildLib  string // Staged destination tree for compiled extensions
	SourceDir string // Package source root for in-place installs
	Inplace   bool   // Install next to sources instead of BuildLib

	// Python environment
	PythonPath    string // Interpreter the extensions link against
	PythonVersion string // Interpreter version, queried when empty

	// Build behavior
	ExtSuffix    string            // Installed extension suffix, "" for platform default
	FeatureRules []FeatureRule     // Interpreter feature table, nil for defaults
	Env          map[string]string // Extra environment variables for cargo
}

// BuildResult contains the outcome of building one extension.
//
// Exactly one result is produced per descriptor, in input order. On success
// InstalledPath names the copied shared library; on failure Err carries one
// of the typed error kinds and Output preserves any captured cargo output.
type BuildResult struct {
	Name          string   // Extension name from the descriptor
	Success       bool     // True if compile and install both completed
	Output        []string // Captured cargo output lines
	InstalledPath string   // Final path of the installed extension
	Err           error    // Typed failure, nil on success
}
