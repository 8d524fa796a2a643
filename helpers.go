package rustext

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Platform constants
const (
	platformWindows = "windows"
	platformDarwin  = "darwin"
)

// libExtension returns the native shared-library extension cargo produces
// on the host platform.
func libExtension() string {
	switch runtime.GOOS {
	case platformWindows:
		return ".dll"
	case platformDarwin:
		return ".dylib"
	default:
		return ".so"
	}
}

// defaultExtSuffix returns the platform default suffix for installed Python
// extension modules.
func defaultExtSuffix() string {
	if runtime.GOOS == platformWindows {
		return ".pyd"
	}
	return ".so"
}

// fallbackExtensionName derives a module name for an extension declared
// without one: the crate's declared library name when the manifest yields
// one, otherwise the artifact's file name stripped of the platform library
// prefix and suffix.
func fallbackExtensionName(manifestPath, artifact string) string {
	if name := manifestLibName(manifestPath); name != "" {
		return name
	}
	base := filepath.Base(artifact)
	base = strings.TrimSuffix(base, libExtension())
	return strings.TrimPrefix(base, "lib")
}

// copyFile copies src to dest, creating intermediate directories and
// preserving the source file mode. An existing destination is overwritten.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if mkErr := os.MkdirAll(filepath.Dir(dest), 0o755); mkErr != nil {
		return mkErr
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
