// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.raiz.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PresetStore: user-editable refine presets and audit template
//   - TokenStore: bearer token persisted in a 0600 file
//   - TokenWatcher: fsnotify watch on the token file
package file

import (
	"os"
	"path/filepath"
)

// DefaultDirName is the config directory under the user's home.
const DefaultDirName = ".raiz"

// DefaultDir returns ~/.raiz.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}
