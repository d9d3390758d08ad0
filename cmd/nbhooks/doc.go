// Package main hosts the nbhooks CLI entrypoint and command graph.
//
// The Cobra-based command tree exposes the notebook hooks pre-commit invokes
// (check-badges, check-notebooks) plus configuration scaffolding and manifest
// rendering. It centralizes configuration resolution, flag overrides, run ids,
// and logger setup so the hook logic in internal/hooks stays free of CLI
// concerns.
package main
