package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	serviceName = "mvpd"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the directory for persistent data (the product database).
//
//	Linux:   ~/.local/share/mvpd
//	macOS:   ~/Library/Application Support/mvpd
func Data() string {
	return filepath.Join(xdg.DataHome, serviceName)
}

// Default path to the SQLite database file.
func Database() string {
	return filepath.Join(Data(), "products.db")
}

// Path to the directory for cached build artifacts (dependency layers).
//
//	Linux:   ~/.cache/mvpd
//	macOS:   ~/Library/Caches/mvpd
func Cache() string {
	return filepath.Join(xdg.CacheHome, serviceName)
}

// Default directory for cached dependency-layer archives.
func LayerCache() string {
	return filepath.Join(Cache(), "layers")
}

// Path to the directory for runtime files (PIDs).
//
//	Linux:   $XDG_RUNTIME_DIR/mvpd or /run/user/<uid>/mvpd
//	macOS:   ~/Library/Caches/mvpd/run
func Runtime() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, serviceName)
	}
	return filepath.Join(xdg.CacheHome, serviceName, "run")
}

// Default path to the PID file.
func PIDFile() string {
	return filepath.Join(Runtime(), "mvpd.pid")
}
