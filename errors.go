package rustext

import (
	"fmt"
	"strings"
)

// ToolchainMissingError indicates the Rust toolchain is absent or could not
// be launched.
//
// It is reported in two situations: the batch-wide probe found no rustc
// (every extension in the batch fails with it, and cargo is never invoked),
// or cargo itself could not be started for one extension even though the
// probe succeeded. The second case carries the launch error in Err.
type ToolchainMissingError struct {
	Tool string // Executable that was missing or unlaunchable
	Err  error  // Launch error, nil when the probe found nothing
}

func (e *ToolchainMissingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to execute %q - this package requires Rust to be installed and cargo to be on the PATH: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("can not find Rust compiler (%s)", e.Tool)
}

func (e *ToolchainMissingError) Unwrap() error { return e.Err }

// VersionMismatchError indicates the probed rustc version does not satisfy
// an extension's version constraint.
type VersionMismatchError struct {
	Actual   string // Probed toolchain version
	Required string // Constraint from the descriptor
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("rust %s does not match extension requirement %s", e.Actual, e.Required)
}

// ManifestNotFoundError indicates an extension's Cargo.toml does not exist.
type ManifestNotFoundError struct {
	Path string // Manifest path from the descriptor
}

func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("can not find rust extension project file: %s", e.Path)
}

// UnsupportedRuntimeError indicates the target Python generation has no
// mapped cargo feature flag.
type UnsupportedRuntimeError struct {
	Version string // Interpreter version that matched no feature rule
}

func (e *UnsupportedRuntimeError) Error() string {
	return fmt.Sprintf("unsupported python version: %s", e.Version)
}

// CompilerFailedError indicates cargo exited non-zero. The captured output
// is always preserved, even for quiet extensions.
type CompilerFailedError struct {
	ExitCode int      // Cargo's exit code
	Output   []string // Combined stdout/stderr lines
}

func (e *CompilerFailedError) Error() string {
	msg := fmt.Sprintf("cargo failed with code: %d", e.ExitCode)
	if len(e.Output) > 0 {
		return fmt.Sprintf("%s\n\nBuild output:\n%s", msg, strings.Join(e.Output, "\n"))
	}
	return msg
}

// ArtifactNotFoundError indicates cargo succeeded but no shared library
// matching the host platform was found in its output directory.
type ArtifactNotFoundError struct {
	Dir string // Profile directory that was searched
}

func (e *ArtifactNotFoundError) Error() string {
	return fmt.Sprintf("rust build succeeded but no %s library was found in %s", libExtension(), e.Dir)
}
