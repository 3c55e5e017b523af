package dashboard

import "github.com/rileyhilliard/logchecker/internal/store"

// Snapshot is a host and its log entries as of one fetch. A nil Host means
// the host was not found.
type Snapshot struct {
	Host *store.Host
	Logs []store.LogEntry
}

// Selection tracks the selected host and the last snapshot committed for it.
// Every request for detail data is stamped with the generation current at
// dispatch time; Commit refuses anything older.
type Selection struct {
	hostID     string
	selected   bool
	snapshot   *Snapshot
	generation uint64
}

// Select makes id the selected host, clears the active snapshot and returns
// the generation to stamp the fetch with.
func (s *Selection) Select(id string) uint64 {
	s.hostID = id
	s.selected = true
	s.snapshot = nil
	s.generation++
	return s.generation
}

// Reload starts a new generation for the current selection without clearing
// the visible snapshot. Results of earlier fetches become stale.
func (s *Selection) Reload() uint64 {
	s.generation++
	return s.generation
}

// Clear drops the selection and its snapshot.
func (s *Selection) Clear() {
	s.hostID = ""
	s.selected = false
	s.snapshot = nil
	s.generation++
}

// Commit applies snap if it was fetched for the current selection at the
// current generation. It reports whether snap was applied.
func (s *Selection) Commit(id string, snap *Snapshot, generation uint64) bool {
	if !s.selected || id != s.hostID || generation != s.generation {
		return false
	}
	s.snapshot = snap
	return true
}

// Selected returns the selected host id, if any.
func (s *Selection) Selected() (string, bool) {
	return s.hostID, s.selected
}

// Snapshot returns the active snapshot, or nil while loading.
func (s *Selection) Snapshot() *Snapshot {
	return s.snapshot
}

// Generation returns the current generation.
func (s *Selection) Generation() uint64 {
	return s.generation
}

// Current reports whether generation is still the live one.
func (s *Selection) Current(generation uint64) bool {
	return generation == s.generation
}
