package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/folionet/folionet"
)

// The websocket handler abandons its channels on disconnect without
// closing them; Realtime must wind down through ctx instead of relying
// on a channel close.
func TestRealtimeStopsOnContextCancel(t *testing.T) {
	s := NewSignalService(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))

	ctx, cancel := context.WithCancel(context.Background())
	input := make(chan []string)
	output := make(chan folionet.Event)

	done := make(chan struct{})
	go func() {
		s.Realtime(ctx, input, output)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Realtime did not stop after context cancellation")
	}
}

func TestRealtimeStopsOnInputClose(t *testing.T) {
	s := NewSignalService(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))

	input := make(chan []string)
	output := make(chan folionet.Event)

	done := make(chan struct{})
	go func() {
		s.Realtime(context.Background(), input, output)
		close(done)
	}()

	close(input)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Realtime did not stop after input was closed")
	}
}
