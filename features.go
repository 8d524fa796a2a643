package rustext

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// FeatureRule maps a range of interpreter versions to the cargo feature
// that selects the matching Python bindings for that ABI generation.
//
// Rules are evaluated in order; the first matching range wins. New
// interpreter generations are supported by appending rules, not by editing
// code paths.
type FeatureRule struct {
	Range   string // Semver range for the interpreter version
	Feature string // Cargo feature flag, e.g. "python3-sys"
}

// defaultFeatureRules covers the interpreter generations with published
// binding crates.
var defaultFeatureRules = []FeatureRule{
	{Range: ">=2.7.0, <2.8.0", Feature: "python27-sys"},
	{Range: ">=3.3.0", Feature: "python3-sys"},
}

// featureForRuntime returns the cargo feature flag for an interpreter
// version, or UnsupportedRuntimeError when no rule covers it.
//
// Rules with invalid range expressions are silently skipped.
func featureForRuntime(version string, rules []FeatureRule) (string, error) {
	parsed, err := semver.NewVersion(version)
	if err != nil {
		return "", &UnsupportedRuntimeError{Version: version}
	}

	for _, rule := range rules {
		constraint, err := semver.NewConstraint(rule.Range)
		if err != nil {
			continue
		}
		if constraint.Check(parsed) {
			return rule.Feature, nil
		}
	}

	return "", &UnsupportedRuntimeError{Version: version}
}

// probePythonVersion asks the configured interpreter for its version.
//
// The orchestrating process is not the target interpreter, so the version
// has to come from the interpreter the extensions will link against.
func probePythonVersion(ctx context.Context, pythonPath string) (string, error) {
	cmd := exec.CommandContext(ctx, pythonPath, "-c", "import platform; print(platform.python_version())")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to query %s for its version: %w", pythonPath, err)
	}
	return strings.TrimSpace(string(out)), nil
}
