package storage

import (
	"testing"
	"time"
)

func TestNotifierBroadcast(t *testing.T) {
	n := NewNotifier()

	ch1, cancel1 := n.Subscribe()
	ch2, cancel2 := n.Subscribe()
	defer cancel1()
	defer cancel2()

	n.Publish(TableReceipts)

	for i, ch := range []<-chan Table{ch1, ch2} {
		select {
		case got := <-ch:
			if got != TableReceipts {
				t.Errorf("subscriber %d: got %q, want %q", i, got, TableReceipts)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: no event received", i)
		}
	}
}

func TestNotifierCancelClosesChannel(t *testing.T) {
	n := NewNotifier()

	ch, cancel := n.Subscribe()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed after cancel")
	}

	// Publishing after cancel must not panic.
	n.Publish(TableCabInfo)

	// Double cancel is a no-op.
	cancel()
}

func TestNotifierDoesNotBlockOnSlowSubscriber(t *testing.T) {
	n := NewNotifier()

	_, cancel := n.Subscribe() // never drained
	defer cancel()

	done := make(chan struct{})
	go func() {
		// More events than the subscriber buffer holds.
		for i := 0; i < 100; i++ {
			n.Publish(TableReceipts)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}
