package forumsync

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunGuard_SerialRunsExecuteEveryTime(t *testing.T) {
	g := newRunGuard()
	var runs int32

	for i := 0; i < 3; i++ {
		g.Do("g1/library", func() { atomic.AddInt32(&runs, 1) })
	}
	if got := atomic.LoadInt32(&runs); got != 3 {
		t.Errorf("runs = %d, want 3", got)
	}
}

func TestRunGuard_CoalescesOverlappingTriggers(t *testing.T) {
	g := newRunGuard()
	var runs int32
	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		g.Do("g1/library", func() {
			if atomic.AddInt32(&runs, 1) == 1 {
				close(started)
				<-release
			}
		})
	}()

	<-started
	// Three triggers land while the first run is blocked; they must
	// coalesce into a single follow-up run.
	g.Do("g1/library", func() { atomic.AddInt32(&runs, 1) })
	g.Do("g1/library", func() { atomic.AddInt32(&runs, 1) })
	g.Do("g1/library", func() { atomic.AddInt32(&runs, 1) })
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&runs); got != 2 {
		t.Errorf("runs = %d, want 2 (initial + one coalesced follow-up)", got)
	}
}

func TestRunGuard_DistinctKeysDoNotBlockEachOther(t *testing.T) {
	g := newRunGuard()
	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})

	go g.Do("g1/library", func() {
		close(started)
		<-release
	})
	<-started

	go func() {
		g.Do("g1/suggestions", func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("a run for a different key was blocked")
	}
	close(release)
}
