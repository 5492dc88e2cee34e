package urlmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidManifest is returned when a manifest is not a JSON object of strings.
var ErrInvalidManifest = errors.New("invalid url manifest")

// Load reads an asset-migration manifest: a JSON object mapping legacy URLs to
// migrated URLs.
func Load(r io.Reader, opts Options) (*Table, error) {
	var entries map[string]string
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("%w: manifest must be a JSON object", ErrInvalidManifest)
	}
	return New(entries, opts), nil
}

// LoadFile reads a manifest from path.
func LoadFile(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url manifest: %w", err)
	}
	defer f.Close()

	table, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return table, nil
}
