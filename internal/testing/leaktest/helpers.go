package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// DefaultSettle bounds how long Check waits for stopped workers, hub loops
// and sandbox callbacks to exit before reporting a leak.
const DefaultSettle = 500 * time.Millisecond

// GoroutineChecker records a goroutine baseline and later verifies the count
// has returned to it
type GoroutineChecker struct {
	t        testing.TB
	baseline int
	settle   time.Duration
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	return &GoroutineChecker{
		t:        t,
		baseline: stableCount(),
		settle:   DefaultSettle,
	}
}

// WithSettle overrides how long Check polls before failing
func (g *GoroutineChecker) WithSettle(d time.Duration) *GoroutineChecker {
	g.settle = d
	return g
}

// Check fails the test when more than tolerance goroutines outlive the baseline.
// Goroutines that are still unwinding get until the settle deadline.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	limit := g.baseline + tolerance
	if n, ok := waitFor(limit, g.settle); !ok {
		g.t.Errorf("goroutine leak: baseline=%d now=%d tolerance=%d\n%s",
			g.baseline, n, tolerance, dump())
	}
}

// CheckNoGoroutineLeak runs fn and requires every goroutine it started to exit
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines blocks until at most target goroutines are running
func WaitForGoroutines(t *testing.T, target int, timeout time.Duration) {
	t.Helper()

	if n, ok := waitFor(target, timeout); !ok {
		t.Errorf("timed out waiting for goroutines: current=%d target=%d", n, target)
	}
}

func waitFor(limit int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= limit {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// stableCount lets goroutines from a previous test finish before sampling
func stableCount() int {
	prev := runtime.NumGoroutine()
	for i := 0; i < 10; i++ {
		time.Sleep(5 * time.Millisecond)
		n := runtime.NumGoroutine()
		if n == prev {
			return n
		}
		prev = n
	}
	return prev
}

func dump() string {
	buf := make([]byte, 64<<10)
	return string(buf[:runtime.Stack(buf, true)])
}
