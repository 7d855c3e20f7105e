// Package config loads gitkit settings.
//
// Settings come from, in increasing precedence:
//   - built-in defaults
//   - a .gitkit.yaml file in the repository or the user config directory
//   - GITKIT_* environment variables (GITKIT_GIT_TIMEOUT, GITKIT_OUTPUT_FORMAT, ...)
package config
