// Package preflight provides readiness checks for the environment the hooks
// run in: the repository root, git, and the badge identity.
//
// "nbhooks config validate" prints these so a misconfigured checkout is
// caught before pre-commit reports confusing badge mismatches.
package preflight
