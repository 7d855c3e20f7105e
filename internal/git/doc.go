// Package git provides a typed interface over the git executable.
//
// It is split into three layers that the Repository facade composes:
//   - Command builders that turn typed parameters into argument vectors
//   - The Invoker that runs git and returns its output as lines
//   - Parsers that turn those lines into branches, tags, commits, trees, logs and diffs
//
// Values returned by this package are snapshots. They hold no reference back to
// the Repository, so callers re-query when they need fresh state.
//
// This package should be the only place where git commands are executed.
package git
