package rustext

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// locateAndInstall finds the shared library cargo produced for ext and
// copies it to the path the packaging layer expects, creating intermediate
// directories as needed.
//
// The source artifact is left untouched so repeated installs do not require
// a rebuild.
func locateAndInstall(config *BuildConfig, ext *RustExtension) (string, error) {
	targetDir := cargoTargetDir(ext)

	artifact, err := locateArtifact(targetDir)
	if err != nil {
		return "", err
	}

	name := ext.Name
	if name == "" {
		name = fallbackExtensionName(ext.ManifestPath, artifact)
	}

	dest := extensionDestPath(config, name)
	if err := copyFile(artifact, dest); err != nil {
		return "", err
	}

	return dest, nil
}

// cargoTargetDir computes the profile-specific output directory for the
// extension's crate.
func cargoTargetDir(ext *RustExtension) string {
	dir := filepath.Join(filepath.Dir(ext.ManifestPath), "target")

	// Cargo honors CARGO_BUILD_TARGET and nests output under the triple.
	if triple := os.Getenv("CARGO_BUILD_TARGET"); triple != "" {
		dir = filepath.Join(dir, triple)
	}

	profile := "debug"
	if ext.Release {
		profile = "release"
	}
	return filepath.Join(dir, profile)
}

// locateArtifact returns the shared library in targetDir matching the host
// platform's native extension.
//
// Zero matches is an ArtifactNotFoundError. Multiple matches usually mean a
// stale build directory; the most recently modified library is selected,
// with ties broken lexicographically.
func locateArtifact(targetDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(targetDir, "*"+libExtension()))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", &ArtifactNotFoundError{Dir: targetDir}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return newestFile(matches), nil
}

// newestFile picks the most recently modified path. Paths are sorted first
// so equal timestamps resolve to the lexicographically first entry.
func newestFile(paths []string) string {
	sort.Strings(paths)

	best := paths[0]
	var bestTime time.Time
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(bestTime) {
			best = path
			bestTime = info.ModTime()
		}
	}
	return best
}

// extensionDestPath computes where the packaging layer expects the compiled
// extension module for a dotted name: the dotted packages become directories
// under either the staged build tree or, for in-place installs, the package
// source root.
func extensionDestPath(config *BuildConfig, dotted string) string {
	parts := strings.Split(dotted, ".")
	filename := parts[len(parts)-1] + extSuffix(config)

	root := config.BuildLib
	if config.Inplace {
		root = config.SourceDir
	}
	if root == "" {
		if config.Inplace {
			root = "."
		} else {
			root = filepath.Join("build", "lib")
		}
	}

	elems := append([]string{root}, parts[:len(parts)-1]...)
	return filepath.Join(append(elems, filename)...)
}

// extSuffix returns the installed extension module suffix.
func extSuffix(config *BuildConfig) string {
	if config.ExtSuffix != "" {
		return config.ExtSuffix
	}
	return defaultExtSuffix()
}
