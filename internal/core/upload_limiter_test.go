package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestUploadLimiter_SlotAccounting(t *testing.T) {
	limiter := NewUploadLimiter(2, time.Second)

	steps := []struct {
		name          string
		op            func()
		wantActive    int
		wantAvailable int
	}{
		{"initial", func() {}, 0, 2},
		{"first acquire", func() { mustAcquire(t, limiter) }, 1, 1},
		{"second acquire", func() { mustAcquire(t, limiter) }, 2, 0},
		{"first release", limiter.Release, 1, 1},
		{"second release", limiter.Release, 0, 2},
	}

	for _, step := range steps {
		step.op()
		status := limiter.Status()
		if status.Active != step.wantActive {
			t.Errorf("%s: Active = %d, want %d", step.name, status.Active, step.wantActive)
		}
		if status.Available != step.wantAvailable {
			t.Errorf("%s: Available = %d, want %d", step.name, status.Available, step.wantAvailable)
		}
	}
}

func TestUploadLimiter_TimesOutWhenFull(t *testing.T) {
	limiter := NewUploadLimiter(1, 80*time.Millisecond)
	ctx := context.Background()

	mustAcquire(t, limiter)
	defer limiter.Release()

	start := time.Now()
	err := limiter.Acquire(ctx)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTooManyUploads) {
		t.Fatalf("Acquire on full limiter = %v, want ErrTooManyUploads", err)
	}
	if elapsed < 70*time.Millisecond {
		t.Errorf("gave up after %v, want about 80ms", elapsed)
	}
}

func TestUploadLimiter_NeverExceedsCapacity(t *testing.T) {
	const capacity = 3
	limiter := NewUploadLimiter(capacity, 2*time.Second)

	var peak, current atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			defer limiter.Release()

			n := current.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			current.Add(-1)
		}()
	}
	wg.Wait()

	if got := peak.Load(); got > capacity {
		t.Errorf("peak concurrency = %d, want <= %d", got, capacity)
	}
	if got := limiter.Status().Active; got != 0 {
		t.Errorf("Active after all released = %d, want 0", got)
	}
}

func TestUploadLimiter_TryAcquireDoesNotWait(t *testing.T) {
	limiter := NewUploadLimiter(1, time.Second)

	if !limiter.tryAcquire() {
		t.Fatal("tryAcquire on empty limiter failed")
	}
	if limiter.tryAcquire() {
		limiter.Release()
		t.Error("tryAcquire on full limiter succeeded")
	}
	limiter.Release()
	if !limiter.tryAcquire() {
		t.Error("tryAcquire after Release failed")
	}
	limiter.Release()
}

func TestUploadLimiter_AcquireHonorsCancel(t *testing.T) {
	limiter := NewUploadLimiter(1, 5*time.Second)
	mustAcquire(t, limiter)
	defer limiter.Release()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- limiter.Acquire(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Acquire after cancel = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire did not return after cancel")
	}
}

func TestUploadLimiter_ReleaseWakesWaiter(t *testing.T) {
	limiter := NewUploadLimiter(1, time.Second)
	mustAcquire(t, limiter)

	acquired := make(chan struct{})
	go func() {
		if err := limiter.Acquire(context.Background()); err != nil {
			t.Errorf("waiting Acquire: %v", err)
			return
		}
		close(acquired)
		limiter.Release()
	}()

	time.Sleep(20 * time.Millisecond)
	limiter.Release()

	select {
	case <-acquired:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("waiter was not woken by Release")
	}
}

func TestUploadLimiter_WaitForDrain(t *testing.T) {
	limiter := NewUploadLimiter(2, time.Second)
	mustAcquire(t, limiter)
	mustAcquire(t, limiter)

	done := make(chan error, 1)
	go func() { done <- limiter.WaitForDrain(context.Background()) }()

	limiter.Release()
	select {
	case <-done:
		t.Fatal("WaitForDrain returned with one slot still held")
	case <-time.After(80 * time.Millisecond):
	}

	limiter.Release()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WaitForDrain = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitForDrain did not return after all slots were released")
	}
}

func TestUploadLimiter_WaitForDrainDeadline(t *testing.T) {
	limiter := NewUploadLimiter(1, time.Second)
	mustAcquire(t, limiter)
	defer limiter.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	if err := limiter.WaitForDrain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitForDrain = %v, want context.DeadlineExceeded", err)
	}
}

func TestUploadLimiter_Defaults(t *testing.T) {
	limiter := NewUploadLimiter(0, -time.Second)

	status := limiter.Status()
	if status.MaxConcurrent != DefaultMaxConcurrentUploads {
		t.Errorf("MaxConcurrent = %d, want %d", status.MaxConcurrent, DefaultMaxConcurrentUploads)
	}
	if status.Available != DefaultMaxConcurrentUploads || status.Active != 0 {
		t.Errorf("Status = %+v, want all slots free", status)
	}
	if limiter.maxWait != DefaultMaxWaitTime {
		t.Errorf("maxWait = %v, want %v", limiter.maxWait, DefaultMaxWaitTime)
	}
}

func mustAcquire(t *testing.T, l *UploadLimiter) {
	t.Helper()
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
}
