package config

import (
	"fmt"
	"strings"
	"time"
)

// Duration wraps time.Duration for YAML unmarshalling.
type Duration struct {
	time.Duration
	explicit bool
}

// UnmarshalText parses a textual duration, accepting empty strings.
func (d *Duration) UnmarshalText(text []byte) error {
	d.explicit = true
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = dur
	return nil
}

// MarshalText renders the duration using time.Duration formatting.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// IsSet reports whether the duration was explicitly provided or non-zero.
func (d Duration) IsSet() bool {
	return d.explicit || d.Duration != 0
}

// Manifest mirrors the warden.yaml document structure.
type Manifest struct {
	Version string   `yaml:"version"`
	Helpers []string `yaml:"helpers"`
	Settle  Duration `yaml:"settle"`
}

// DefaultHelpers is the managed set supervised when no manifest overrides it:
// the language-analysis server and its completion server/client pair.
var DefaultHelpers = []string{
	"language-server",
	"completion-server",
	"completion-client",
}

// Default returns the manifest used when no file is present.
func Default() *Manifest {
	return &Manifest{
		Version: "1",
		Helpers: append([]string(nil), DefaultHelpers...),
		Settle:  Duration{Duration: time.Second},
	}
}

// ApplyDefaults fills unset fields with their defaults.
func (m *Manifest) ApplyDefaults() {
	if m.Version == "" {
		m.Version = "1"
	}
	if len(m.Helpers) == 0 {
		m.Helpers = append([]string(nil), DefaultHelpers...)
	}
	if !m.Settle.IsSet() {
		m.Settle = Duration{Duration: time.Second}
	}
}

// Validate checks manifest invariants after defaults have been applied.
func (m *Manifest) Validate() error {
	if m.Version != "1" {
		return fmt.Errorf("unsupported manifest version %q", m.Version)
	}
	if len(m.Helpers) == 0 {
		return fmt.Errorf("at least one helper is required")
	}
	seen := make(map[string]struct{}, len(m.Helpers))
	for _, name := range m.Helpers {
		if name == "" {
			return fmt.Errorf("helper names must not be empty")
		}
		if strings.ContainsAny(name, " \t/\\") {
			return fmt.Errorf("helper name %q must be a bare process name", name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate helper %q", name)
		}
		seen[name] = struct{}{}
	}
	if m.Settle.Duration < 0 {
		return fmt.Errorf("settle delay must not be negative")
	}
	return nil
}
