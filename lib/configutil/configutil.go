package configutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// localPath turns "dir/config.json5" into "dir/config.local.json5".
func localPath(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// readLayer unmarshals one config file into dst. A missing file is
// reported through the bool, not the error.
func readLayer[T any](path string, dst *T) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}
	return true, json5.Unmarshal(data, dst)
}

// ReadConfig reads <name> and merges <name>.local.<ext> on top of it,
// so secrets and machine-specific values stay out of the committed
// file. Returns os.ErrNotExist when neither file is present.
func ReadConfig[T any](name string) (T, error) {
	var out T

	found, err := readLayer(name, &out)
	if err != nil {
		return out, err
	}

	var override T
	local := localPath(name)
	foundLocal, err := readLayer(local, &override)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", local)
	}

	if !found && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively walks from the working directory up to the
// filesystem root looking for a config matching name.
func ReadRecursively[T any](name string) (T, error) {
	var zero T

	dir, err := os.Getwd()
	if err != nil {
		return zero, err
	}

	for {
		cfg, err := ReadConfig[T](filepath.Join(dir, name))
		if err == nil {
			return cfg, nil
		}
		if !os.IsNotExist(err) {
			return zero, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return zero, os.ErrNotExist
		}
		dir = parent
	}
}
