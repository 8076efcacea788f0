package configutil

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/titanous/json5"
)

type Options struct {
	// Path names the config file, extension included.
	Path string
	// Search looks for Path in the working directory and then in every
	// parent. A config that is found nowhere is not an error then, T keeps
	// its zero value.
	Search bool
	// EnvPrefix overlays variables named <prefix>_<FIELD> on the file, a
	// field's envconfig tag replaces FIELD. Empty skips the environment.
	EnvPrefix string
	// DotenvFiles are loaded into the environment first when they exist.
	// Variables that are already set win over the files.
	DotenvFiles []string
}

// Load reads a layered config and overlays the environment on it.
func Load[T any](opts Options) (T, error) {
	var out T
	var err error
	if opts.Search {
		out, err = ReadRecursively[T](opts.Path)
		if errors.Is(err, fs.ErrNotExist) {
			err = nil
		}
	} else {
		out, err = ReadConfig[T](opts.Path)
	}
	if err != nil {
		return out, fmt.Errorf("read config %s: %w", opts.Path, err)
	}

	if opts.EnvPrefix == "" {
		return out, nil
	}
	err = overlayEnv(opts.EnvPrefix, &out, opts.DotenvFiles)
	if err != nil {
		return out, fmt.Errorf("read environment: %w", err)
	}
	return out, nil
}

// localPath turns "dir/steamtrader.json5" into "dir/steamtrader.local.json5".
func localPath(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// readLayer decodes one file over out. found is false when the file does
// not exist or is empty.
func readLayer[T any](path string, out *T) (found bool, err error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}

	var layer T
	err = json5.Unmarshal(contents, &layer)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	err = mergo.Merge(out, layer, mergo.WithOverride)
	if err != nil {
		return false, fmt.Errorf("merge %s: %w", path, err)
	}
	return true, nil
}

// ReadConfig merges <name>.<ext> and then <name>.local.<ext>, the local
// file holds machine specific values like secrets and is not checked in.
// It returns fs.ErrNotExist when neither exists.
func ReadConfig[T any](name string) (T, error) {
	var out T

	foundBase, err := readLayer(name, &out)
	if err != nil {
		return out, err
	}
	local := localPath(name)
	foundLocal, err := readLayer(local, &out)
	if err != nil {
		return out, err
	}
	if foundLocal {
		slog.Debug("merged local config overrides", "local", local)
	}

	if !foundBase && !foundLocal {
		return out, fs.ErrNotExist
	}
	return out, nil
}

// ReadRecursively is ReadConfig for the nearest directory, from the working
// directory up to the root, that holds the config.
func ReadRecursively[T any](name string) (T, error) {
	var out T

	current, err := os.Getwd()
	if err != nil {
		return out, err
	}
	for {
		out, err = ReadConfig[T](filepath.Join(current, name))
		if !errors.Is(err, fs.ErrNotExist) {
			return out, err
		}
		parent := filepath.Dir(current)
		if parent == current {
			var zero T
			return zero, fs.ErrNotExist
		}
		current = parent
	}
}

// ReadEnv reads T out of the environment alone, see Options.EnvPrefix.
func ReadEnv[T any](prefix string, dotenvFiles ...string) (T, error) {
	var out T
	err := overlayEnv(prefix, &out, dotenvFiles)
	return out, err
}

func overlayEnv(prefix string, out any, dotenvFiles []string) error {
	for _, f := range dotenvFiles {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	// only variables that are set replace what the file configured
	return envconfig.Process(prefix, out)
}
