// Package checks holds the independent notebook validators run by the hooks.
//
// Every validator is a pure predicate over a parsed notebook: it returns nil
// or a findings-tagged error describing the first problem it sees, and never
// mutates the notebook. Validators are grouped into the two hook suites by
// BadgeSuite and NotebookSuite so the driver can run each one separately and
// keep going after a failure.
package checks
