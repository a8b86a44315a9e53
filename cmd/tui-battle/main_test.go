package main

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

type stubEvent struct {
	tcell.EventTime
}

func TestPumpEvents_StopsOnCancelWhenNobodyReads(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan tcell.Event, 1)
	polled := make(chan struct{}, 16)
	poll := func() tcell.Event {
		select {
		case polled <- struct{}{}:
		default:
		}
		return &stubEvent{}
	}

	exited := make(chan struct{})
	go func() {
		pumpEvents(ctx, poll, events)
		close(exited)
	}()

	// One event fills the buffer; the pump is now stuck on the second send.
	<-polled
	<-polled
	cancel()

	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("pump still blocked after cancel")
	}
	if len(events) != 1 {
		t.Fatalf("buffered events %d", len(events))
	}
}

func TestPumpEvents_StopsOnNilEvent(t *testing.T) {
	events := make(chan tcell.Event, 4)
	n := 0
	poll := func() tcell.Event {
		n++
		if n > 2 {
			return nil
		}
		return &stubEvent{}
	}
	pumpEvents(context.Background(), poll, events)
	if len(events) != 2 {
		t.Fatalf("forwarded %d events, want 2", len(events))
	}
}
