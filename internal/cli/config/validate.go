package config

import (
	"os"
	"sort"

	"github.com/cockroachdb/errors"
)

// Validate checks if the configuration is valid. known lists the emitter
// names outputs may refer to.
func (c *Config) Validate(known []string) error {
	if c.MaxVersion < 0 {
		return errors.Newf("max_version must not be negative, got %d", c.MaxVersion)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return errors.Newf("unknown log_format %q", c.LogFormat)
	}

	valid := make(map[string]bool, len(known))
	for _, name := range known {
		valid[name] = true
	}
	targets := make([]string, 0, len(c.Outputs))
	for target := range c.Outputs {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	for _, target := range targets {
		if !valid[target] {
			return errors.WithHintf(
				errors.Newf("outputs: unknown target %q", target),
				"available targets: %v", known,
			)
		}
		if c.Outputs[target] == "" {
			return errors.Newf("outputs: empty path for target %q", target)
		}
	}
	return nil
}

// ValidateSources checks that at least one source is configured and that
// every source exists.
func (c *Config) ValidateSources() error {
	if len(c.Sources) == 0 {
		return errors.WithHint(
			errors.New("no sources configured"),
			"set sources in estreegen.yaml or pass --source",
		)
	}
	for _, src := range c.Sources {
		if _, err := os.Stat(src); err != nil {
			return errors.Wrapf(err, "source %s", src)
		}
	}
	return nil
}
