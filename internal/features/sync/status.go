package sync

import "sync/atomic"

// StatusStore holds the process-wide last-sync status. Replace swaps the
// whole record atomically; concurrent replacements are last-write-wins.
type StatusStore struct {
	current atomic.Pointer[Status]
}

func NewStatusStore() *StatusStore {
	s := &StatusStore{}
	s.current.Store(&Status{})
	return s
}

// Replace overwrites the status wholesale.
func (s *StatusStore) Replace(status Status) {
	s.current.Store(&status)
}

// Current returns a copy of the current status.
func (s *StatusStore) Current() Status {
	return *s.current.Load()
}
