package catalog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSystem assembles a System from the given paths, most specific
// first. Each path may be a YAML file or a directory walked recursively
// for *.yml files; missing paths are skipped. Later files never override
// ids defined earlier.
//
// Schemas are strict: an unknown field in any catalog file aborts the
// load, so malformed campaign data fails at startup rather than at
// request time.
func LoadSystem(log *slog.Logger, paths ...string) (*System, error) {
	system := NewSystem()
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := loadPath(log, system, path); err != nil {
			return nil, err
		}
	}
	return system, nil
}

func loadPath(log *slog.Logger, system *System, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		for _, entry := range entries {
			if err := loadPath(log, system, filepath.Join(path, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	}
	if !strings.HasSuffix(path, ".yml") && !strings.HasSuffix(path, ".yaml") {
		log.Debug("skipping non-catalog file", "path", path)
		return nil
	}
	layer := new(System)
	if err := decodeFileStrict(path, layer); err != nil {
		return err
	}
	system.Merge(layer)
	log.Debug("loaded catalog layer", "path", path)
	return nil
}

func decodeFileStrict(path string, out any) error {
	f, err := os.Open(path) // #nosec G304 -- catalog paths come from operator config
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := decodeStrict(f, out); err != nil {
		return fmt.Errorf("catalog: %s: %w", path, err)
	}
	return nil
}

func decodeStrict(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
