// Package translate converts settings documents between TOML and YAML.
package translate

import (
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// YAMLToTOML converts YAML data to TOML data. An empty YAML document becomes
// an empty TOML document.
func YAMLToTOML(yamlData []byte) ([]byte, error) {
	var data map[string]any
	if err := yaml.Unmarshal(yamlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling yaml")
	}
	if data == nil {
		return []byte{}, nil
	}
	out, err := toml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling toml")
	}
	return out, nil
}

// TOMLToYAML converts TOML data to YAML data.
func TOMLToYAML(tomlData []byte) ([]byte, error) {
	var data map[string]any
	if err := toml.Unmarshal(tomlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling toml")
	}
	if data == nil {
		data = map[string]any{}
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling yaml")
	}
	return out, nil
}
