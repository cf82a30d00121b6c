package notify

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/caresync/pkg/api"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHub_PublishToAccountSubscribers(t *testing.T) {
	hub := newTestHub()

	a1, cancelA1 := hub.Subscribe("alice")
	defer cancelA1()
	a2, cancelA2 := hub.Subscribe("alice")
	defer cancelA2()
	b, cancelB := hub.Subscribe("bob")
	defer cancelB()

	n := api.Notification{Type: api.NotificationRevisionsAvailable, Origin: "device-1"}
	hub.Publish("alice", n)

	assert.Equal(t, n, <-a1)
	assert.Equal(t, n, <-a2)
	select {
	case got := <-b:
		t.Fatalf("bob received foreign notification: %+v", got)
	default:
	}
}

func TestHub_Cancel(t *testing.T) {
	hub := newTestHub()

	ch, cancel := hub.Subscribe("alice")
	assert.Equal(t, 1, hub.Subscribers("alice"))

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok, "channel must be closed")
	assert.Zero(t, hub.Subscribers("alice"))

	// публикация без подписчиков
	hub.Publish("alice", api.Notification{Type: api.NotificationRevisionsAvailable})
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := newTestHub()

	ch, cancel := hub.Subscribe("alice")
	defer cancel()

	for range subscriberBuffer * 3 {
		hub.Publish("alice", api.Notification{Type: api.NotificationRevisionsAvailable})
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestHub_ConcurrentSubscribeAndPublish(t *testing.T) {
	hub := newTestHub()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ch, cancel := hub.Subscribe("alice")
			hub.Publish("alice", api.Notification{Type: api.NotificationRevisionsAvailable})
			<-ch
			cancel()
		}()
		go func() {
			defer wg.Done()
			hub.Publish("alice", api.Notification{Type: api.NotificationRevisionsAvailable})
		}()
	}
	wg.Wait()

	require.Zero(t, hub.Subscribers("alice"))
}
