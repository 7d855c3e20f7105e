package git

import "sync"

// repoLocks holds one mutex per absolute repository path
var repoLocks sync.Map

func lockFor(absPath string) *sync.Mutex {
	mu, _ := repoLocks.LoadOrStore(absPath, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// lock takes the repository's path lock and returns the matching unlock
func (r *Repository) lock() func() {
	r.mu.Lock()
	return r.mu.Unlock
}
