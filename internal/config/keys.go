package config

import (
	"fmt"
	"strings"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "base-uri").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Normalize, when set, rewrites user input before Set.
	Normalize func(value string) string
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "base-uri",
		Description: "API endpoint used when --base-uri is not specified",
		Get:         func(cfg *Config) string { return cfg.BaseURI },
		Set:         func(cfg *Config, v string) { cfg.BaseURI = v },
		Normalize:   func(v string) string { return strings.TrimRight(strings.TrimSpace(v), "/") },
	},
	{
		Name:        "default-project",
		Description: "Project used by server commands when --project is not specified",
		Get:         func(cfg *Config) string { return cfg.DefaultProject },
		Set:         func(cfg *Config, v string) { cfg.DefaultProject = v },
		Normalize:   strings.TrimSpace,
	},
	{
		Name:        "log-level",
		Description: "Minimum log level written to stderr (debug, info, warn, error)",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set:         func(cfg *Config, v string) { cfg.LogLevel = v },
		Normalize:   func(v string) string { return strings.ToLower(strings.TrimSpace(v)) },
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// Apply normalizes value and stores it on cfg.
func (k *KeySpec) Apply(cfg *Config, value string) string {
	if k.Normalize != nil {
		value = k.Normalize(value)
	}
	k.Set(cfg, value)
	return value
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
