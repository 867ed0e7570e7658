package socket

import (
	"testing"

	"buzzme_server/stream"

	socketio "github.com/googollee/go-socket.io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBridge() *bridge {
	return &bridge{
		hub:        stream.NewHub(),
		server:     socketio.NewServer(nil),
		forwarders: make(map[string]*stream.Subscription),
	}
}

func TestTopicForRoom(t *testing.T) {
	assert.Equal(t, stream.MatchTopic("alice_bob"), topicForRoom("alice_bob"))
	assert.Equal(t, stream.UserTopic("alice"), topicForRoom(stream.UserTopic("alice")))
}

func TestBridgeEnsureIsIdempotent(t *testing.T) {
	b := newTestBridge()

	b.ensure(stream.MatchTopic("alice_bob"), "alice_bob")
	b.ensure(stream.MatchTopic("alice_bob"), "alice_bob")

	assert.Len(t, b.forwarders, 1)
}

func TestBridgeReleaseCancelsForwarder(t *testing.T) {
	b := newTestBridge()
	topic := stream.UserTopic("alice")

	b.ensure(topic, topic)
	require.Len(t, b.forwarders, 1)
	sub := b.forwarders[topic]

	// No connection ever joined the room, so release must reap the forwarder
	// and cancel the hub subscription, closing its channel.
	b.release(topic, topic)
	assert.Empty(t, b.forwarders)

	_, open := <-sub.C()
	assert.False(t, open)

	// Releasing an already-reaped topic is a no-op.
	b.release(topic, topic)

	// A later join starts over with a fresh forwarder.
	b.ensure(topic, topic)
	assert.Len(t, b.forwarders, 1)
}
