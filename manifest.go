package rustext

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// cargoManifest is the subset of Cargo.toml this package reads.
type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Lib struct {
		Name string `toml:"name"`
	} `toml:"lib"`
}

// validateManifest checks that the crate manifest exists on disk.
//
// The check runs immediately before cargo is invoked rather than at
// descriptor construction: build scripts may legitimately generate the
// manifest after the extension is declared.
func validateManifest(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &ManifestNotFoundError{Path: path}
	}
	return nil
}

// manifestLibName returns the crate's declared library name.
//
// The [lib] name wins when set; otherwise the [package] name is used with
// cargo's dash-to-underscore rewrite. Returns "" when the manifest cannot
// be read or declares no name.
func manifestLibName(path string) string {
	var manifest cargoManifest
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		return ""
	}
	if manifest.Lib.Name != "" {
		return manifest.Lib.Name
	}
	if manifest.Package.Name != "" {
		return strings.ReplaceAll(manifest.Package.Name, "-", "_")
	}
	return ""
}
