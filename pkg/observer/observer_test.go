package observer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingObserver) OnEvent(ctx context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for condition")
}

func TestManagerNotifiesAllObservers(t *testing.T) {
	m := NewManager()
	r1 := &recordingObserver{}
	r2 := &recordingObserver{}
	m.Register(r1)
	m.Register(r2)

	m.Notify(context.Background(), Event{Type: EventComputeStart, SinkID: 1})

	waitFor(t, func() bool { return len(r1.snapshot()) == 1 && len(r2.snapshot()) == 1 })
}

func TestManagerRecoversFromObserverPanic(t *testing.T) {
	m := NewManager()
	panicker := observerFunc(func(ctx context.Context, event Event) { panic("boom") })
	ok := &recordingObserver{}
	m.Register(panicker)
	m.Register(ok)

	m.Notify(context.Background(), Event{Type: EventTransformStart})

	waitFor(t, func() bool { return len(ok.snapshot()) == 1 })
}

type observerFunc func(ctx context.Context, event Event)

func (f observerFunc) OnEvent(ctx context.Context, event Event) { f(ctx, event) }

func TestNoOpObserverIgnoresEvents(t *testing.T) {
	(&NoOpObserver{}).OnEvent(context.Background(), Event{Type: EventCacheHit})
}

func TestConsoleObserverHandlesErrorEvent(t *testing.T) {
	o := NewConsoleObserverWithLogger(&NoOpLogger{})
	o.OnEvent(context.Background(), Event{Type: EventComputeEnd, Err: errors.New("boom")})
}

func TestManagerCountAndHasObservers(t *testing.T) {
	m := NewManager()
	if m.HasObservers() {
		t.Fatal("expected no observers initially")
	}
	m.Register(&recordingObserver{})
	if !m.HasObservers() || m.Count() != 1 {
		t.Fatalf("expected 1 observer, got HasObservers=%v Count=%d", m.HasObservers(), m.Count())
	}
}
