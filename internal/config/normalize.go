package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeRepo(); err != nil {
		return err
	}
	c.normalizeHeader()
	c.normalizeBadges()
	c.normalizeOutputs()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeRepo() error {
	c.Repo.Name = strings.TrimSpace(c.Repo.Name)
	if c.Repo.Name == "" {
		if value, ok := os.LookupEnv("NBHOOKS_REPO_NAME"); ok {
			c.Repo.Name = strings.TrimSpace(value)
		}
	}
	c.Repo.Owner = strings.TrimSpace(c.Repo.Owner)
	if value, ok := os.LookupEnv("NBHOOKS_REPO_OWNER"); ok && strings.TrimSpace(value) != "" {
		c.Repo.Owner = strings.TrimSpace(value)
	}
	if c.Repo.Owner == "" {
		c.Repo.Owner = defaultRepoOwner
	}
	c.Repo.PackageName = strings.TrimSpace(c.Repo.PackageName)

	var err error
	if c.Repo.Root, err = expandPath(strings.TrimSpace(c.Repo.Root)); err != nil {
		return fmt.Errorf("repo.root: %w", err)
	}
	return nil
}

func (c *Config) normalizeHeader() {
	c.Header.Version = strings.TrimSpace(c.Header.Version)
}

func (c *Config) normalizeBadges() {
	c.Badges.Order = strings.ToLower(strings.TrimSpace(c.Badges.Order))
	if c.Badges.Order == "" {
		c.Badges.Order = defaultBadgeOrder
	}
}

func (c *Config) normalizeOutputs() {
	if c.Outputs.StderrAllowPrefixes == nil {
		c.Outputs.StderrAllowPrefixes = []string{joblibStderrPrefix}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if value, ok := os.LookupEnv("NBHOOKS_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
