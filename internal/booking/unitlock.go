package booking

import "sync"

// unitLocks hands out one mutex per apartment so that the overlap
// re-check and the insert of a new booking execute as a single
// critical section per unit. Creates on different apartments proceed in
// parallel; only conflicting creates on the same unit serialize.
type unitLocks struct {
    mu    sync.Mutex
    units map[uint64]*sync.Mutex
}

func newUnitLocks() *unitLocks {
    return &unitLocks{units: make(map[uint64]*sync.Mutex)}
}

// get returns the mutex for the apartment, creating it on first use.
// Lock entries are never removed; the set of apartments is small and
// long-lived compared to the life of the process.
func (l *unitLocks) get(apartmentID uint64) *sync.Mutex {
    l.mu.Lock()
    defer l.mu.Unlock()
    m, ok := l.units[apartmentID]
    if !ok {
        m = &sync.Mutex{}
        l.units[apartmentID] = m
    }
    return m
}
