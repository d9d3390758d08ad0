// Package config loads, normalizes, and validates nbhooks configuration.
//
// It supplies repository defaults (the open-atmos owner, strict badge order,
// the joblib stderr allow-list), expands user paths, reads TOML files, and
// honours environment fallbacks such as NBHOOKS_REPO_OWNER. Command-line flags
// are applied on top by the CLI after Load returns.
//
// Always obtain settings through this package so the hooks receive trimmed
// values and clear validation errors.
package config
