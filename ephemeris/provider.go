package ephemeris

import "time"

// NewDefaultManager wires up the standard primary/fallback provider pair
// (the truncated harmonic series backed by the low-order quick formula)
// with a bounded in-memory cache, suitable for most callers.
func NewDefaultManager() *Manager {
	return NewManager(NewHarmonicProvider(), NewQuickProvider(), NewMemoryCache(4096, 6*time.Hour))
}
