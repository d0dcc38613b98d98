package config

import (
	"fmt"
	"strings"
)

// Validate checks values that tags cannot express. Load calls it.
func (c *Config) Validate() error {
	switch c.Phonetics.Source {
	case "prosodic", "llm":
	default:
		return fmt.Errorf("phonetics.source must be prosodic or llm (got %q)", c.Phonetics.Source)
	}
	if c.Phonetics.Timeout <= 0 {
		return fmt.Errorf("phonetics.timeout must be > 0 (got %v)", c.Phonetics.Timeout)
	}

	switch strings.ToLower(c.Rhyme.Grouping) {
	case "union", "keyed":
	default:
		return fmt.Errorf("rhyme.grouping must be union or keyed (got %q)", c.Rhyme.Grouping)
	}
	if c.Rhyme.MaxDistance < 0 {
		return fmt.Errorf("rhyme.max_distance must be >= 0 (got %v)", c.Rhyme.MaxDistance)
	}

	if c.Meter.StressedMarker == "" || c.Meter.UnstressedMarker == "" {
		return fmt.Errorf("meter markers must not be empty")
	}

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}
