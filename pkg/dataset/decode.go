package dataset

import (
	"bytes"
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeYAML(data)
}

// DecodeYAML decodes a {students, results} document. A bare list is
// treated as results.
func DecodeYAML(data []byte) (*Dataset, error) {
	var raw rawDataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		var list []rawResult
		if yaml.Unmarshal(data, &list) != nil {
			return nil, err
		}
		raw.Results = list
	}
	return raw.dataset(), nil
}

func loadJSON(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeJSON(data)
}

// DecodeJSON decodes a {students, results} object or a bare results array.
func DecodeJSON(data []byte) (*Dataset, error) {
	var raw rawDataset
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw.Results); err != nil {
			return nil, err
		}
		return raw.dataset(), nil
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, err
	}
	return raw.dataset(), nil
}
