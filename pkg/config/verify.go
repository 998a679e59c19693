package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// every top-level section of the config must be known to the schema
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := checkSections(schema, configMap); err != nil {
		return fmt.Errorf("schema mismatch: %w", err)
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// checkSections makes sure each config section is described by the schema definitions
func checkSections(schema, configMap map[string]any) error {
	defs, ok := schema["$defs"].(map[string]any)
	if !ok {
		return fmt.Errorf("schema has no definitions")
	}
	cfgDef, ok := defs["Config"].(map[string]any)
	if !ok {
		return fmt.Errorf("schema has no Config definition")
	}
	props, ok := cfgDef["properties"].(map[string]any)
	if !ok {
		return fmt.Errorf("schema Config definition has no properties")
	}
	for section := range configMap {
		if _, found := props[section]; !found {
			return fmt.Errorf("section %q is not in schema", section)
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	// check server config
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}

	// check search config
	if cfg.Search.Endpoint == "" {
		return fmt.Errorf("search.endpoint is required")
	}
	if cfg.Search.Timeout == 0 {
		return fmt.Errorf("search.timeout is required")
	}

	// check session config
	if cfg.Session.Backend == SessionBackendRedis && cfg.Session.RedisURL == "" {
		return fmt.Errorf("session.redis_url is required when session backend is redis")
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
