// Package tui provides the interactive terminal pieces of gitkit.
//
// It handles:
//   - Branch selection for checkout (using survey)
//   - Yes/no confirmation before destructive operations (using bubbletea)
//   - A scrollable pager for long output (using bubbles/viewport)
package tui
