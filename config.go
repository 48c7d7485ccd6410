package ddns

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the state shared between runs,
// persisted as a flat JSON document.
// LastIP holds the last address successfully written to the provider;
// it is empty on the first run.
// HealthchecksUUID is optional and disables liveness reporting when empty.
type Config struct {
	APIKey           string `json:"apikey"`
	SecretAPIKey     string `json:"secretapikey"`
	Domain           string `json:"domain"`
	LastIP           string `json:"lastIP"`
	HealthchecksUUID string `json:"healthchecksUUID"`
}

// LoadConfig reads and parses the config file at path.
// apikey, secretapikey, and domain must be present and non-empty.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	cfg := new(Config)
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	for _, required := range []struct{ key, value string }{
		{"apikey", cfg.APIKey},
		{"secretapikey", cfg.SecretAPIKey},
		{"domain", cfg.Domain},
	} {
		if required.value == "" {
			return nil, &ConfigError{Path: path, Err: fmt.Errorf("missing required field %q", required.key)}
		}
	}
	return cfg, nil
}

// Save serializes the config back to path,
// rewriting the whole file with human-readable indentation.
func (c *Config) Save(path string) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, append(b, '\n'), 0600); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}

// Credentials returns the provider credentials held by the config.
func (c *Config) Credentials() Credentials {
	return Credentials{APIKey: c.APIKey, SecretAPIKey: c.SecretAPIKey}
}
