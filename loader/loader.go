// Package loader reads a world document from disk, checks its cross
// references and builds the runtime World. Documents may be YAML, JSON or
// a Lua chunk that returns the world table.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/stageplay/logging"
	"github.com/nathoo/stageplay/types"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for a file extension with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported world document format")

// Load reads and validates the world document at path. Validation
// warnings are logged; validation errors fail the load.
func Load(path string, logger *slog.Logger) (*types.World, error) {
	logger = logging.OrNop(logger)

	w, warnings, err := LoadFile(path)
	for _, warning := range warnings {
		logger.Warn("world document warning", "path", path, "warning", warning)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("world loaded", "path", path, "name", w.Name, "stages", len(w.Stages))
	return w, nil
}

// LoadFile reads and validates the world document at path, returning the
// validation warnings alongside the world.
func LoadFile(path string) (*types.World, []string, error) {
	doc, err := decodeFile(path)
	if err != nil {
		return nil, nil, err
	}

	ve := check(doc)
	if len(ve.Errors) > 0 {
		return nil, ve.Warnings, fmt.Errorf("%s: %w", path, ve)
	}
	return compile(doc), ve.Warnings, nil
}

func decodeFile(path string) (*document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".lua" {
		return decodeLua(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world document: %w", err)
	}

	switch ext {
	case ".yaml", ".yml":
		return decodeYAML(data, path)
	case ".json":
		return decodeJSON(data, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func decodeYAML(data []byte, path string) (*document, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing %s: empty document", path)
		}
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &doc, nil
}

func decodeJSON(data []byte, path string) (*document, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &doc, nil
}
