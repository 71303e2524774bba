// internal/ws/hub_test.go
package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"motomarket-service/internal/domain/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestSlowClientDroppedWithoutStallingHub(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	slow := NewClient(hub, nil, zap.NewNop())
	healthy := NewClient(hub, nil, zap.NewNop())
	hub.register <- slow
	hub.register <- healthy
	waitFor(t, func() bool { return hub.TotalClients() == 2 }, "clients never registered")

	// No write pump is draining the slow client, so its queue fills up.
	for i := 0; i < cap(slow.send); i++ {
		slow.send <- []byte("x")
	}

	hub.ListingStatusChanged("moto-1", listing.StatusActive)

	// The overflowing client goes away; the healthy one still gets the event.
	waitFor(t, func() bool { return hub.TotalClients() == 1 }, "slow client was never dropped")

	select {
	case data := <-healthy.send:
		var ev Event
		require.NoError(t, json.Unmarshal(data, &ev))
		assert.Equal(t, EventStatusChanged, ev.Type)
		assert.Equal(t, "moto-1", ev.ListingID)
		assert.Equal(t, string(listing.StatusActive), ev.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("healthy client never received the event")
	}

	// The hub must keep servicing registrations after the drop.
	fresh := NewClient(hub, nil, zap.NewNop())
	done := make(chan struct{})
	go func() {
		hub.register <- fresh
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped accepting registrations after dropping a slow client")
	}
	waitFor(t, func() bool { return hub.TotalClients() == 2 }, "fresh client never registered")
}
