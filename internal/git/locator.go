package git

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultBinary is the executable name looked up on the search path
const DefaultBinary = "git"

// DefaultLocatorCacheTTL is how long a resolved executable path is reused
const DefaultLocatorCacheTTL = 10 * time.Minute

// Locator resolves the git executable to run
type Locator interface {
	// Locate returns the path of the executable
	Locate() (string, error)
	// Name returns the configured name, used in errors when Locate fails
	Name() string
}

// PathLocator finds an executable on $PATH and remembers the answer
type PathLocator struct {
	name     string
	resolved *cache.Cache
	lookPath func(string) (string, error)
}

// NewPathLocator creates a PathLocator for name. Results are cached per
// name and $PATH value for ttl.
func NewPathLocator(name string, ttl time.Duration) *PathLocator {
	if name == "" {
		name = DefaultBinary
	}
	if ttl <= 0 {
		ttl = DefaultLocatorCacheTTL
	}
	return &PathLocator{
		name:     name,
		resolved: cache.New(ttl, 2*ttl),
		lookPath: exec.LookPath,
	}
}

// Locate returns the absolute path of the executable
func (l *PathLocator) Locate() (string, error) {
	key := l.name + "\x00" + os.Getenv("PATH")
	if path, ok := l.resolved.Get(key); ok {
		return path.(string), nil
	}

	path, err := l.lookPath(l.name)
	if err != nil {
		return "", fmt.Errorf("failed to locate %s: %w", l.name, err)
	}
	l.resolved.SetDefault(key, path)
	return path, nil
}

// Name returns the executable name being looked up
func (l *PathLocator) Name() string {
	return l.name
}

// StaticLocator always returns the same path without looking it up
type StaticLocator string

// Locate returns the fixed path
func (s StaticLocator) Locate() (string, error) {
	if s == "" {
		return "", fmt.Errorf("no executable configured")
	}
	return string(s), nil
}

// Name returns the fixed path
func (s StaticLocator) Name() string {
	return string(s)
}
