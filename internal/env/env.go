// Package env resolves the directories depboot works in.
package env

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "depboot"

// CacheDir returns the depboot cache root.
//
//	Linux: $XDG_CACHE_HOME/depboot
//	macOS: ~/Library/Caches/depboot
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, appName)
}

// WorkRoot returns the directory under which transient source trees are
// checked out. Each bootstrap run creates its own subdirectory here and
// removes it on exit.
func WorkRoot() string {
	return filepath.Join(CacheDir(), "work")
}

// ConfigDir returns the directory searched for the depboot config file.
//
//	Linux: $XDG_CONFIG_HOME/depboot
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}
