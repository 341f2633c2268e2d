// Package api contains the file formats read and written by textdlg.
package api

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/macropower/textdlg/pkg/yaml"
)

// AppName names the directory holding textdlg's files under the user's
// config directory.
const AppName = "textdlg"

// GetConfigPath returns the path of filename in the user's config directory.
// It checks $XDG_CONFIG_HOME first, then falls back to ~/.config, and finally
// to a temp directory.
func GetConfigPath(filename string) string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, AppName, filename)
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", AppName, filename)
	}

	tmpPath := filepath.Join(os.TempDir(), AppName, filename)

	slog.Warn("could not determine user config directory, using temp path",
		slog.String("path", tmpPath),
		slog.Any("err", fmt.Errorf("$XDG_CONFIG_HOME is unset, fall back to home directory: %w", err)),
	)

	return tmpPath
}

// ReadFile reads a regular file.
func ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: path is a directory", path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: unknown file state", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Paths come from the user.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// MarshalYAML serializes obj to YAML.
func MarshalYAML(obj any) ([]byte, error) {
	b, err := yaml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b, nil
}

// WriteFile writes data to path, creating parent directories. An existing
// regular file is kept unless force is set, in which case it is moved to a
// timestamped backup first. It reports whether data was written.
func WriteFile(path string, data []byte, force bool) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return false, fmt.Errorf("%s: path is a directory", path)
	case err == nil && !info.Mode().IsRegular():
		return false, fmt.Errorf("%s: unknown file state", path)
	case err == nil && !force:
		slog.Debug("file already exists, skipping write", slog.String("path", path))

		return false, nil
	case err == nil:
		backup := fmt.Sprintf("%s.%d.old", path, time.Now().UnixNano())
		slog.Info("backing up existing file", slog.String("path", backup))

		err = os.Rename(path, backup)
		if err != nil {
			return false, fmt.Errorf("back up %s: %w", path, err)
		}
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return false, fmt.Errorf("create directories: %w", err)
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return false, fmt.Errorf("write file: %w", err)
	}

	return true, nil
}
