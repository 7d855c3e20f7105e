package tui

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// NoInteractiveEnv disables every prompt when set, e.g. in tests and CI
const NoInteractiveEnv = "GITKIT_NO_INTERACTIVE"

// ErrInteractiveDisabled is returned when prompts are disabled via GITKIT_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (%s is set)", NoInteractiveEnv)

// checkInteractiveAllowed returns an error if interactive mode is disabled
func checkInteractiveAllowed() error {
	if os.Getenv(NoInteractiveEnv) != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// IsTTY returns true if we can use a TTY for interactive UI
func IsTTY() bool {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return false
	}
	// Also try to open /dev/tty to verify it's actually available
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// Interactive reports whether prompts may be shown
func Interactive() bool {
	return checkInteractiveAllowed() == nil && IsTTY()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
