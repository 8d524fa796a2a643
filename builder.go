package rustext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/kballard/go-shellquote"
)

// Builder compiles Rust crates into Python extension modules.
//
// A Builder holds no per-batch state: Build may be called repeatedly with
// the same extensions (e.g. once by the regular build step and once more by
// an editable-install workflow) and produces the same installed artifacts.
//
// The zero-value fields set by NewBuilder may be replaced before use:
// Probe to stub the toolchain query in tests, Logger to redirect the
// command echoing.
type Builder struct {
	// Probe queries the installed Rust toolchain. It is consulted once per
	// Build call and the result is shared read-only across the batch.
	Probe func(ctx context.Context) ToolchainInfo

	// Logger receives the echoed cargo command lines and captured output
	// for extensions that are not Quiet.
	Logger *log.Logger

	config *BuildConfig
}

// NewBuilder creates a Builder with the standard toolchain probe and a
// stderr logger. A nil config is treated as the zero configuration.
func NewBuilder(config *BuildConfig) *Builder {
	if config == nil {
		config = &BuildConfig{}
	}
	return &Builder{
		Probe:  ProbeToolchain,
		Logger: log.New(os.Stderr),
		config: config,
	}
}

// Build compiles and installs all given extensions, returning one result
// per extension in input order.
//
// The toolchain is probed once per call. If no toolchain is found, every
// extension fails with ToolchainMissingError and cargo is never invoked.
// All other failures are extension-specific and do not stop the rest of
// the batch; on context cancellation the unprocessed extensions fail with
// the context's error. The returned error is the first failure
// encountered, if any; the results always cover every extension.
func (b *Builder) Build(ctx context.Context, extensions []RustExtension) ([]*BuildResult, error) {
	return b.build(ctx, b.config, extensions)
}

// BuildInplace reruns the build with in-place installation forced, placing
// compiled extensions alongside the package sources.
//
// Editable-install workflows chain this explicitly after their build_ext
// step instead of patching shared build behavior.
func (b *Builder) BuildInplace(ctx context.Context, extensions []RustExtension) ([]*BuildResult, error) {
	config := *b.config
	config.Inplace = true
	return b.build(ctx, &config, extensions)
}

func (b *Builder) build(ctx context.Context, config *BuildConfig, extensions []RustExtension) ([]*BuildResult, error) {
	if len(extensions) == 0 {
		return nil, nil
	}

	toolchain := b.Probe(ctx)
	if !toolchain.Found() {
		// A missing toolchain fails the whole batch uniformly, before any
		// cargo invocation is attempted.
		err := &ToolchainMissingError{Tool: rustcPath()}
		results := make([]*BuildResult, len(extensions))
		for i := range extensions {
			results[i] = &BuildResult{Name: extensions[i].Name, Err: err}
		}
		return results, err
	}

	pythonVersion := config.PythonVersion
	var pythonErr error
	if pythonVersion == "" && config.PythonPath != "" {
		pythonVersion, pythonErr = probePythonVersion(ctx, config.PythonPath)
	}

	var results []*BuildResult
	var firstErr error

	for i := 0; i < len(extensions); i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if firstErr == nil {
				firstErr = ctxErr
			}
			// Every remaining extension still gets a result.
			for ; i < len(extensions); i++ {
				results = append(results, &BuildResult{Name: extensions[i].Name, Err: ctxErr})
			}
			break
		}

		result := b.buildExtension(ctx, config, toolchain, pythonVersion, pythonErr, &extensions[i])
		if result.Err != nil && firstErr == nil {
			firstErr = result.Err
		}
		results = append(results, result)
	}

	return results, firstErr
}

// buildExtension processes a single descriptor: constraint check, manifest
// check, feature selection, cargo invocation, then artifact install.
func (b *Builder) buildExtension(ctx context.Context, config *BuildConfig, toolchain ToolchainInfo, pythonVersion string, pythonErr error, ext *RustExtension) *BuildResult {
	result := &BuildResult{Name: ext.Name}

	fail := func(err error) *BuildResult {
		result.Err = err
		return result
	}

	// Step 1: the descriptor's toolchain constraint
	if ext.VersionConstraint != "" {
		ok, err := versionSatisfies(toolchain.Version, ext.VersionConstraint)
		if err != nil {
			return fail(err)
		}
		if !ok {
			return fail(&VersionMismatchError{Actual: toolchain.Version, Required: ext.VersionConstraint})
		}
	}

	// Step 2: the manifest must exist right before cargo runs
	if err := validateManifest(ext.ManifestPath); err != nil {
		return fail(err)
	}

	// Step 3: the feature flag for the target interpreter generation. A
	// failed interpreter query surfaces here, where the version is needed.
	if pythonErr != nil {
		return fail(pythonErr)
	}
	rules := config.FeatureRules
	if rules == nil {
		rules = defaultFeatureRules
	}
	feature, err := featureForRuntime(pythonVersion, rules)
	if err != nil {
		return fail(err)
	}

	// Step 4: run cargo
	output, err := b.runCargo(ctx, config, ext, feature)
	result.Output = output
	if err != nil {
		return fail(err)
	}

	// Step 5: locate the built library and copy it into place
	installed, err := locateAndInstall(config, ext)
	if err != nil {
		return fail(err)
	}

	result.InstalledPath = installed
	result.Success = true
	return result
}

// runCargo executes the compiler invocation for one extension and returns
// the captured output lines.
func (b *Builder) runCargo(ctx context.Context, config *BuildConfig, ext *RustExtension, feature string) ([]string, error) {
	args := []string{"build", "--manifest-path", ext.ManifestPath, "--features", feature}
	args = append(args, ext.Args...)
	if ext.Release {
		args = append(args, "--release")
	}

	cargo := cargoPath()

	if !ext.Quiet {
		b.Logger.Info("running cargo", "cmd", shellquote.Join(append([]string{cargo}, args...)...))
	}

	cmd := exec.CommandContext(ctx, cargo, args...)
	cmd.Env = buildEnv(config)

	out, err := cmd.CombinedOutput()
	output := splitOutputLines(string(out))
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, &CompilerFailedError{ExitCode: exitErr.ExitCode(), Output: output}
		}
		// Probing succeeded but cargo could not be launched; report it
		// rather than crashing the batch.
		return output, &ToolchainMissingError{Tool: cargo, Err: err}
	}

	if !ext.Quiet {
		for _, line := range output {
			b.Logger.Print(line)
		}
	}

	return output, nil
}

// Clean removes the crate's build artifacts for one extension via
// cargo clean.
func (b *Builder) Clean(ctx context.Context, ext *RustExtension) error {
	cargo := cargoPath()
	args := []string{"clean", "--manifest-path", ext.ManifestPath}

	if !ext.Quiet {
		b.Logger.Info("running cargo", "cmd", shellquote.Join(append([]string{cargo}, args...)...))
	}

	cmd := exec.CommandContext(ctx, cargo, args...)
	cmd.Env = buildEnv(b.config)

	out, err := cmd.CombinedOutput()
	if err != nil {
		output := splitOutputLines(string(out))
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CompilerFailedError{ExitCode: exitErr.ExitCode(), Output: output}
		}
		return &ToolchainMissingError{Tool: cargo, Err: err}
	}

	return nil
}

// buildEnv copies the ambient environment and points cargo at the
// interpreter that is orchestrating the build.
func buildEnv(config *BuildConfig) []string {
	env := os.Environ()

	// Disable pkg-config discovery for the legacy 2.7 bindings so
	// python27-sys falls back to detecting the interpreter from PATH.
	env = append(env, "PYTHON_2.7_NO_PKG_CONFIG=1")

	// Prepend the target interpreter's directory so the binding crates
	// link against it rather than an unrelated interpreter on PATH.
	if config.PythonPath != "" {
		bindir := filepath.Dir(config.PythonPath)
		env = append(env, fmt.Sprintf("PATH=%s%c%s", bindir, os.PathListSeparator, os.Getenv("PATH")))
	}

	for key, value := range config.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	return env
}

// splitOutputLines splits captured process output into lines, dropping the
// trailing newline.
func splitOutputLines(raw string) []string {
	trimmed := strings.TrimRight(raw, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
