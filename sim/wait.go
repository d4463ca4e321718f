package sim

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"
)

// spinThreshold is how close to the deadline the wait switches from sleeping to polling.
const spinThreshold = time.Millisecond

// ErrTimerCancelled is reported by a TimerTask stopped before its deadline.
var ErrTimerCancelled = errors.New("timer task cancelled")

// WaitUntilElapsed blocks until at least target has elapsed since origin.
// It sleeps while the deadline is far and polls the monotonic clock for the
// last millisecond, so it never returns early.
func WaitUntilElapsed(origin time.Time, target time.Duration) {
	waitUntil(origin, target, nil)
}

// waitUntil returns false if stop closed before the deadline. A nil stop never fires.
// A non-positive target has already elapsed.
func waitUntil(origin time.Time, target time.Duration, stop <-chan struct{}) bool {
	if target <= 0 {
		return true
	}
	for {
		remaining := target - time.Since(origin)
		if remaining <= 0 {
			return true
		}
		if remaining > spinThreshold {
			timer := time.NewTimer(remaining - spinThreshold)
			select {
			case <-stop:
				timer.Stop()
				return false
			case <-timer.C:
			}
			continue
		}
		select {
		case <-stop:
			return false
		default:
			runtime.Gosched()
		}
	}
}

// TimerTask is a timed wait running on its own goroutine. The launching side
// owns the handle and joins it with Wait.
type TimerTask struct {
	origin time.Time
	target time.Duration

	done     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once

	// written by the task goroutine, read only after done is closed
	finished time.Duration
	err      error
}

// StartTimer launches a task that completes once target has elapsed since origin.
func StartTimer(origin time.Time, target time.Duration) *TimerTask {
	t := &TimerTask{
		origin: origin,
		target: target,
		done:   make(chan struct{}),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimerTask) run() {
	defer close(t.done)
	if !waitUntil(t.origin, t.target, t.stop) {
		t.err = ErrTimerCancelled
	}
	t.finished = time.Since(t.origin)
}

// Cancel stops the task early. Safe to call more than once.
func (t *TimerTask) Cancel() {
	t.stopOnce.Do(func() { close(t.stop) })
}

// Done is closed when the task has finished.
func (t *TimerTask) Done() <-chan struct{} {
	return t.done
}

// Wait joins the task and returns the elapsed time since origin at which it finished.
// If ctx ends first the task is cancelled and joined before returning ctx's error.
func (t *TimerTask) Wait(ctx context.Context) (time.Duration, error) {
	select {
	case <-t.done:
		return t.finished, t.err
	case <-ctx.Done():
		t.Cancel()
		<-t.done
		return t.finished, ctx.Err()
	}
}
