package filelock

import (
	"path/filepath"
	"sync"
	"testing"
)

func TestLockUnlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefix", ".depboot.lock")

	unlock, err := MutexAt(path).Lock()
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	unlock()

	// Relockable after release.
	unlock2, err := MutexAt(path).Lock()
	if err != nil {
		t.Fatalf("relock: %v", err)
	}
	unlock2()
}

func TestLockSerializes(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	var mu sync.Mutex
	inCritical := 0
	maxSeen := 0

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := MutexAt(path).Lock()
			if err != nil {
				t.Errorf("Lock: %v", err)
				return
			}
			mu.Lock()
			inCritical++
			if inCritical > maxSeen {
				maxSeen = inCritical
			}
			mu.Unlock()

			mu.Lock()
			inCritical--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	if maxSeen > 1 {
		t.Errorf("critical section entered by %d goroutines at once", maxSeen)
	}
}
