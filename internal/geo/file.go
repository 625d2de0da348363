package geo

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Marshal encodes collections as indented UTF-8 JSON without HTML escaping.
func Marshal(collections []FeatureCollection) ([]byte, error) {
	if collections == nil {
		collections = []FeatureCollection{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(collections); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes collections to path, creating parent directories and
// overwriting any existing file.
func Save(path string, collections []FeatureCollection) error {
	data, err := Marshal(collections)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}

	// We care about write errors on close
	if err := f.Close(); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to close file")
		return err
	}

	return nil
}

// Load reads a file produced by Save.
func Load(path string) ([]FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var collections []FeatureCollection
	if err := json.Unmarshal(data, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}
