// Package hooks drives the notebook checks over the files pre-commit passes in.
//
// CheckBadges repairs the Colab header in place and then runs the structural
// badge checks; CheckNotebooks runs the execution and output checks. Each file
// is processed to completion before the next, one failing check never stops
// the others, and the resulting Report maps to the process exit code.
package hooks
