package survey

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDefinition reads and parses a survey definition file without building it.
func LoadDefinition(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read survey definition: %w", err)
	}
	return parseDefinition(data, path)
}

// Load reads a survey definition file and builds the survey it describes.
func Load(path string) (*Survey, error) {
	def, err := LoadDefinition(path)
	if err != nil {
		return nil, err
	}
	return Build(def)
}

// MarshalDefinition renders a definition as YAML.
func MarshalDefinition(def Definition) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(def); err != nil {
		return nil, fmt.Errorf("encode survey definition: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode survey definition: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseDefinition decodes a YAML or JSON definition held in memory.
func ParseDefinition(data []byte) (Definition, error) {
	return parseDefinition(data, "")
}

// parseDefinition decodes JSON for .json files, or for unnamed input that
// starts with '{', and YAML otherwise.
func parseDefinition(data []byte, path string) (Definition, error) {
	if isJSON(data, path) {
		return parseJSONDefinition(data)
	}
	var def Definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil {
		if err == io.EOF {
			return Definition{}, fmt.Errorf("parse yaml: empty document")
		}
		return Definition{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Definition{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Definition{}, fmt.Errorf("parse yaml: %w", err)
	}
	return def, nil
}

func isJSON(data []byte, path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return true
	case "":
		return bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
	default:
		return false
	}
}

func parseJSONDefinition(data []byte) (Definition, error) {
	var def Definition
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&def); err != nil {
		if err == io.EOF {
			return Definition{}, fmt.Errorf("parse json: empty document")
		}
		return Definition{}, fmt.Errorf("parse json: %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return Definition{}, fmt.Errorf("parse json: unexpected data after the definition")
	}
	return def, nil
}
