package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

// TestWorkerPool_RunsAllTasks tests that every submitted task executes
func TestWorkerPool_RunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(4)

	var counter int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&counter, 1)
		})
	}
	wg.Wait()
	pool.Close()

	if counter != 100 {
		t.Errorf("Expected 100 tasks executed, got %d", counter)
	}
}

// TestWorkerPool_ClampWorkers tests that non-positive worker counts are clamped
func TestWorkerPool_ClampWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	done := make(chan struct{})
	pool.Submit(func() { close(done) })
	<-done
}

// TestWorkerPool_PanicRecovery tests that a panicking task doesn't kill workers
func TestWorkerPool_PanicRecovery(t *testing.T) {
	pool := NewWorkerPool(1)

	pool.Submit(func() { panic("boom") })

	done := make(chan struct{})
	pool.Submit(func() { close(done) })
	<-done
	pool.Close()
}
