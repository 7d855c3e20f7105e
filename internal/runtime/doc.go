// Package runtime provides the execution context for gitkit commands.
//
// It wires the repository facade, logger, renderer and configuration
// together once per command so commands receive them as one value.
package runtime
