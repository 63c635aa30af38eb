package settings

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stickypack/pkg/pack"
)

// AppName names the per-user configuration directory.
const AppName = "stickypack"

// FileStore keeps the configuration in a TOML file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to path. The parent directory is
// created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the settings file location following the XDG
// convention (~/.config/stickypack/config.toml).
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName, Key+".toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, Key+".toml"), nil
}

// Path returns the file the store reads and writes.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(context.Context) (pack.Overrides, bool, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return pack.Overrides{}, false, nil
	}
	if err != nil {
		return pack.Overrides{}, false, err
	}
	var o pack.Overrides
	if err := toml.Unmarshal(data, &o); err != nil {
		return pack.Overrides{}, false, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return o, true, nil
}

func (f *FileStore) Save(_ context.Context, cfg pack.Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(stored(cfg)); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Delete removes the settings file. A missing file is not an error.
func (f *FileStore) Delete() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
