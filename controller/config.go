// Package controller implements the page controller (C6): the
// persisted page/plugin configuration, the active Page's live instances,
// and the dispatcher that routes device events to them.
package controller

import (
	"encoding/json"
	"fmt"

	"github.com/loupedeckhost/loupedeck"
	"github.com/xeipuuv/gojsonschema"
)

// configSchema validates a ControllerConfig document's shape before it's
// unmarshaled, so a malformed file fails with a readable error instead of
// a partially-populated struct.
const configSchema = `{
  "type": "object",
  "required": ["pages"],
  "properties": {
    "pages": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["name", "screen"],
        "properties": {
          "name": {"type": "string"},
          "screen": {
            "type": "array",
            "items": {
              "type": "array",
              "minItems": 2,
              "maxItems": 2
            }
          }
        }
      }
    }
  }
}`

// PluginIdentifier names a registered screen factory: the id of the
// loaded library it came from, and the ref it registered the factory
// under.
type PluginIdentifier struct {
	PluginID  string `json:"plugin_id"`
	PluginRef string `json:"plugin_ref"`
}

// PageConfig is the serialisable form of a Page: a name and a mapping
// from key location to the plugin identifier bound there.
//
// Screen marshals as a list of [KeyLocation, PluginIdentifier] pairs
// rather than a JSON object, because encoding/json forces object keys to
// strings and KeyLocation needs to stay a real struct key on the Go side
// (it's used directly as a map key in Page.Instances). This mirrors the
// Rust original's `#[serde_as(as = "Vec<(_, _)>")]` annotation on the
// same field.
type PageConfig struct {
	Name   string
	Screen map[loupedeck.KeyLocation]PluginIdentifier
}

// MarshalJSON encodes Screen as a list of pairs, per the persisted-state
// shape.
func (p PageConfig) MarshalJSON() ([]byte, error) {
	pairs := make([][2]json.RawMessage, 0, len(p.Screen))
	for k, v := range p.Screen {
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		valJSON, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]json.RawMessage{keyJSON, valJSON})
	}

	return json.Marshal(struct {
		Name   string               `json:"name"`
		Screen [][2]json.RawMessage `json:"screen"`
	}{Name: p.Name, Screen: pairs})
}

// UnmarshalJSON decodes a list-of-pairs Screen back into a map.
func (p *PageConfig) UnmarshalJSON(data []byte) error {
	var wire struct {
		Name   string               `json:"name"`
		Screen [][2]json.RawMessage `json:"screen"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	p.Name = wire.Name
	p.Screen = make(map[loupedeck.KeyLocation]PluginIdentifier, len(wire.Screen))
	for _, pair := range wire.Screen {
		var key loupedeck.KeyLocation
		var ident PluginIdentifier
		if err := json.Unmarshal(pair[0], &key); err != nil {
			return fmt.Errorf("controller: decode screen key: %w", err)
		}
		if err := json.Unmarshal(pair[1], &ident); err != nil {
			return fmt.Errorf("controller: decode screen value: %w", err)
		}
		p.Screen[key] = ident
	}
	return nil
}

// ControllerConfig holds every named page's configuration.
type ControllerConfig struct {
	Pages map[string]PageConfig `json:"pages"`
}

// LoadConfig validates raw against configSchema, then unmarshals it.
func LoadConfig(raw []byte) (ControllerConfig, error) {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return ControllerConfig{}, fmt.Errorf("controller: validate config: %w", err)
	}
	if !result.Valid() {
		return ControllerConfig{}, fmt.Errorf("controller: config failed schema validation: %v", result.Errors())
	}

	var cfg ControllerConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return ControllerConfig{}, fmt.Errorf("controller: decode config: %w", err)
	}
	return cfg, nil
}

// SaveConfig serialises cfg back to its persisted JSON shape.
func SaveConfig(cfg ControllerConfig) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}
