package answer

import (
	"sync"
	"testing"
)

func TestKeyedLocks_SerializesSameKey(t *testing.T) {
	locks := newKeyedLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock("user-1:2026-08-31")
			counter++
			locks.Unlock("user-1:2026-08-31")
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("lost updates: counter=%d", counter)
	}
}

func TestKeyedLocks_EntriesReleased(t *testing.T) {
	locks := newKeyedLocks()

	locks.Lock("a")
	locks.Unlock("a")
	locks.Lock("b")
	locks.Unlock("b")

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.locks) != 0 {
		t.Fatalf("expected no retained entries, got %d", len(locks.locks))
	}
}

func TestKeyedLocks_DifferentKeysIndependent(t *testing.T) {
	locks := newKeyedLocks()

	locks.Lock("a")
	done := make(chan struct{})
	go func() {
		locks.Lock("b")
		locks.Unlock("b")
		close(done)
	}()
	<-done
	locks.Unlock("a")
}
