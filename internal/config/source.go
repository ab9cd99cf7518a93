package config

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Source is a loosely typed key/value view over user settings. Values come
// from files edited by hand, so callers must never assume a type.
type Source interface {
	Get(key string) any
}

// MapSource is a Source backed by a plain map.
type MapSource map[string]any

// Get returns the value stored under key, or nil.
func (m MapSource) Get(key string) any {
	return m[key]
}

// Load layers the global settings file and the project settings file found
// in dir into a single viper-backed Source. Project values win. Files that
// are missing are skipped; files that fail to parse are logged and skipped,
// so Load always returns a usable Source.
func Load(dir string, logger *log.Logger) Source {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if global, err := GlobalPath(); err != nil {
		logger.Debug("no global settings location", "error", err)
	} else {
		mergeFile(v, global, logger)
	}
	mergeFile(v, ProjectPath(dir), logger)

	return v
}

func mergeFile(v *viper.Viper, path string, logger *log.Logger) {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("unable to open settings", "path", path, "error", err)
		}
		return
	}
	defer f.Close()

	if err := v.MergeConfig(f); err != nil {
		logger.Warn("ignoring malformed settings", "path", path, "error", err)
		return
	}
	logger.Debug("loaded settings", "path", path)
}
