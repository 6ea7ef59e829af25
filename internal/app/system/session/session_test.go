// internal/app/system/session/session_test.go
package session

import (
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/redescolar/cartelera/internal/app/system/policy"
)

func newTestSession() *Session {
	return New(policy.Identity{UID: "uid-1", Nombre: "Camila Soto", Rol: policy.RolEstudiante}, zap.NewNop())
}

func TestTeardownRunsClosersNewestFirst(t *testing.T) {
	s := newTestSession()

	var order []int
	s.OnTeardown(func() { order = append(order, 1) })
	s.OnTeardown(func() { order = append(order, 2) })
	s.OnTeardown(func() { order = append(order, 3) })

	s.Teardown()

	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Fatalf("closer order = %v, want [3 2 1]", order)
	}
}

func TestTeardownIdempotent(t *testing.T) {
	s := newTestSession()

	calls := 0
	s.OnTeardown(func() { calls++ })

	s.Teardown()
	s.Teardown()
	s.Teardown()

	if calls != 1 {
		t.Fatalf("closer ran %d times, want 1", calls)
	}
}

func TestOnTeardownAfterTeardownRunsImmediately(t *testing.T) {
	s := newTestSession()
	s.Teardown()

	ran := false
	s.OnTeardown(func() { ran = true })

	if !ran {
		t.Fatal("closer registered after teardown did not run")
	}
}

func TestConcurrentTeardownRunsClosersOnce(t *testing.T) {
	s := newTestSession()

	var mu sync.Mutex
	calls := 0
	s.OnTeardown(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Teardown()
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Fatalf("closer ran %d times, want 1", calls)
	}
}
