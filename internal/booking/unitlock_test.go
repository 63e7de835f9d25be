package booking

import (
    "sync"
    "testing"
)

func TestUnitLocksStablePerUnit(t *testing.T) {
    locks := newUnitLocks()
    if locks.get(1) != locks.get(1) {
        t.Error("same apartment must map to the same mutex")
    }
    if locks.get(1) == locks.get(2) {
        t.Error("different apartments must map to different mutexes")
    }
}

func TestUnitLocksConcurrentGet(t *testing.T) {
    locks := newUnitLocks()
    const goroutines = 32

    results := make([]*sync.Mutex, goroutines)
    var wg sync.WaitGroup
    for i := 0; i < goroutines; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            results[i] = locks.get(7)
        }(i)
    }
    wg.Wait()

    for i := 1; i < goroutines; i++ {
        if results[i] != results[0] {
            t.Fatal("concurrent get() handed out different mutexes for one apartment")
        }
    }
}
