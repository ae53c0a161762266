package advisor

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
)

func TestSessionLocksSerializeSameID(t *testing.T) {
	locks := newSessionLocks()
	id := uuid.New()

	var (
		active  atomic.Int32
		overlap atomic.Bool
		wg      sync.WaitGroup
	)

	for range 16 {
		wg.Go(func() {
			release := locks.lock(id)
			defer release()

			if active.Add(1) > 1 {
				overlap.Store(true)
			}
			active.Add(-1)
		})
	}
	wg.Wait()

	if overlap.Load() {
		t.Error("two holders of the same session lock overlapped")
	}
	if n := locks.len(); n != 0 {
		t.Errorf("locks retained = %d, want 0", n)
	}
}

func TestSessionLocksIndependentIDs(t *testing.T) {
	locks := newSessionLocks()

	releaseA := locks.lock(uuid.New())
	done := make(chan struct{})

	go func() {
		release := locks.lock(uuid.New())
		release()
		close(done)
	}()

	<-done
	releaseA()

	if n := locks.len(); n != 0 {
		t.Errorf("locks retained = %d, want 0", n)
	}
}
