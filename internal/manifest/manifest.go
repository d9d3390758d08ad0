// Package manifest renders the .pre-commit-hooks.yaml that exposes the
// nbhooks commands to the pre-commit framework.
package manifest

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Hook is one entry of a pre-commit hooks manifest.
type Hook struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Entry       string   `yaml:"entry"`
	Language    string   `yaml:"language"`
	Types       []string `yaml:"types,flow"`
	Args        []string `yaml:"args,omitempty,flow"`
}

// Hooks returns the entries for the notebook hooks served by binary.
func Hooks(binary string) []Hook {
	if binary == "" {
		binary = "nbhooks"
	}
	return []Hook{
		{
			ID:          "check-badges",
			Name:        "check notebook badges and Colab header",
			Description: "Check the launch badges, the descriptive second cell, and the Colab bootstrap header of Jupyter notebooks",
			Entry:       binary + " check-badges",
			Language:    "golang",
			Types:       []string{"jupyter"},
		},
		{
			ID:          "check-notebooks",
			Name:        "check notebook outputs",
			Description: "Check that notebooks were executed and carry no error or stderr output",
			Entry:       binary + " check-notebooks",
			Language:    "golang",
			Types:       []string{"jupyter"},
		},
	}
}

// Encode renders hooks as a YAML sequence.
func Encode(hooks []Hook) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(hooks); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders hooks to w.
func Write(w io.Writer, hooks []Hook) error {
	data, err := Encode(hooks)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode parses a manifest, for validating hand-edited files.
func Decode(data []byte) ([]Hook, error) {
	var hooks []Hook
	if err := yaml.Unmarshal(data, &hooks); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return hooks, nil
}
