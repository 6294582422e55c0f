package config

import (
	"encoding/base64"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Load reads and strictly parses a YAML config file (teacher: main.go's
// *configPath branch).
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return parse(raw)
}

// LoadBase64 decodes and parses a base64-encoded YAML config (teacher:
// main.go's *configData branch, used when a file path isn't convenient —
// e.g. config passed through an orchestrator's environment).
func LoadBase64(data string) (Config, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode base64: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(raw, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
