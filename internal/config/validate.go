package config

import (
	"errors"
	"fmt"

	"beetsedit/internal/logging"
)

// Validate ensures the configuration is usable, including that every rule
// expression compiles.
func (c *Config) Validate() error {
	if c.Beet.TimeoutSeconds < 0 {
		return errors.New("beet.timeout_seconds must be >= 0")
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("logging.format: unsupported value %q (use auto, console, or json)", c.Logging.Format)
	}
	if _, _, err := c.Matchers(); err != nil {
		return err
	}
	return nil
}
