package rustext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ToolchainInfo reports the result of probing the installed Rust toolchain.
//
// An empty Version means the compiler was not found or could not be
// invoked; that is a normal, reportable outcome, distinct from "found but
// below an extension's constraint".
type ToolchainInfo struct {
	Version string // Probed rustc version, empty when absent
}

// Found reports whether a usable toolchain was detected.
func (t ToolchainInfo) Found() bool { return t.Version != "" }

// ProbeToolchain queries rustc for its version.
//
// Absence of the executable and non-zero exits are not errors: both return
// a zero ToolchainInfo. The rustc binary can be overridden with the RUSTC
// environment variable.
func ProbeToolchain(ctx context.Context) ToolchainInfo {
	cmd := exec.CommandContext(ctx, rustcPath(), "-V")
	cmd.Env = os.Environ()
	out, err := cmd.Output()
	if err != nil {
		return ToolchainInfo{}
	}
	return ToolchainInfo{Version: parseToolchainVersion(string(out))}
}

// parseToolchainVersion extracts the version token from rustc's version
// output, e.g. "rustc 1.50.0 (cb75ad5db 2021-02-10)". Extraction is
// best-effort: unexpected shapes yield an empty version.
func parseToolchainVersion(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// versionSatisfies reports whether the probed toolchain version satisfies a
// semver range expression such as ">=1.50.0".
func versionSatisfies(actual, required string) (bool, error) {
	constraint, err := semver.NewConstraint(required)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", required, err)
	}
	version, err := semver.NewVersion(actual)
	if err != nil {
		return false, fmt.Errorf("invalid toolchain version %q: %w", actual, err)
	}
	return constraint.Check(version), nil
}

// rustcPath returns the rustc executable, honoring the RUSTC override.
func rustcPath() string {
	if path := os.Getenv("RUSTC"); path != "" {
		return path
	}
	return "rustc"
}

// cargoPath returns the cargo executable, honoring the CARGO override.
func cargoPath() string {
	if path := os.Getenv("CARGO"); path != "" {
		return path
	}
	return "cargo"
}
