// Package config holds all resultgate configuration: the curated
// write-action table, the accepted success status codes and the gate
// strictness. The table is loaded once and exposed read-only so that the
// classification of a mutating action lives in exactly one place.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Strictness selects between the canonical gate behavior and the looser
// variant. There is one gate implementation; this knob is the only
// difference between the two.
type Strictness string

const (
	// StrictnessStrict is the reference behavior: success set as
	// configured, execution id required, attached audit proofs must
	// verify.
	StrictnessStrict Strictness = "strict"

	// StrictnessLenient accepts any 2xx at the transport gate, tolerates
	// a missing execution id and ignores an attached-but-unverified
	// audit proof.
	StrictnessLenient Strictness = "lenient"
)

// Config holds all resultgate configuration.
type Config struct {
	// Gate strictness: "strict" or "lenient".
	Strictness Strictness `yaml:"strictness"`

	// Status codes the transport gate accepts as success.
	SuccessStatusCodes []int `yaml:"success_status_codes"`

	// Curated set of mutating action identifiers. Anything not listed
	// here is classified READ, so omissions weaken the state-proof
	// requirement for that action; keep this table complete.
	WriteActions []string `yaml:"write_actions"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration, including the curated
// write-action table for the maintenance-management backend under test.
func DefaultConfig() *Config {
	return &Config{
		Strictness:         StrictnessStrict,
		SuccessStatusCodes: []int{200, 201},

		WriteActions: []string{
			"create_work_order",
			"update_work_order",
			"update_work_order_status",
			"close_work_order",
			"add_note_to_work_order",
			"assign_technician",
			"create_handover",
			"accept_handover",
			"order_part",
			"reserve_part",
			"consume_part",
			"record_compliance_check",
			"upload_attachment",
			"delete_attachment",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file, overlaying the defaults.
// A missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets CI tune the gate without a config file. The CLI
// surface is positional-args only, so environment variables are the
// override channel.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RESULTGATE_STRICTNESS"); v != "" {
		c.Strictness = Strictness(strings.ToLower(v))
	}
	if v := os.Getenv("RESULTGATE_WRITE_ACTIONS"); v != "" {
		// Comma-separated additions to the curated table, never removals.
		for _, action := range strings.Split(v, ",") {
			if action = strings.TrimSpace(action); action != "" {
				c.WriteActions = append(c.WriteActions, action)
			}
		}
	}
	if v := os.Getenv("RESULTGATE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Strictness {
	case StrictnessStrict, StrictnessLenient:
	default:
		return fmt.Errorf("invalid strictness: %q (want strict or lenient)", c.Strictness)
	}

	if len(c.SuccessStatusCodes) == 0 {
		return fmt.Errorf("success_status_codes must not be empty")
	}
	for _, code := range c.SuccessStatusCodes {
		if code < 100 || code > 599 {
			return fmt.Errorf("invalid success status code: %d", code)
		}
	}

	if len(c.WriteActions) == 0 {
		return fmt.Errorf("write_actions must not be empty")
	}
	return nil
}

// DefaultConfigPath returns the config file path: $RESULTGATE_CONFIG when
// set, otherwise resultgate.yaml in the working directory.
func DefaultConfigPath() string {
	if path := os.Getenv("RESULTGATE_CONFIG"); path != "" {
		return path
	}
	return "resultgate.yaml"
}
