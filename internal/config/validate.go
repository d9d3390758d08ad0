package config

import (
	"fmt"
	"strings"

	"nbhooks/internal/checks"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRepo(); err != nil {
		return err
	}
	if err := c.validateBadges(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRepo() error {
	if strings.ContainsAny(c.Repo.Owner, "/ ") {
		return fmt.Errorf("repo.owner %q must be a single GitHub account name", c.Repo.Owner)
	}
	if strings.ContainsAny(c.Repo.Name, "/ ") {
		return fmt.Errorf("repo.name %q must be a single repository name", c.Repo.Name)
	}
	return nil
}

func (c *Config) validateBadges() error {
	if _, ok := checks.ParseBadgeOrder(c.Badges.Order); !ok {
		return fmt.Errorf("badges.order: unsupported value %q (want strict or any)", c.Badges.Order)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// BadgeOrder returns the parsed badge comparison mode.
func (c *Config) BadgeOrder() checks.BadgeOrder {
	order, _ := checks.ParseBadgeOrder(c.Badges.Order)
	return order
}
