package socket

import (
	"context"
	"log"
	"strings"
	"sync"

	"buzzme_server/services"
	"buzzme_server/stream"

	socketio "github.com/googollee/go-socket.io"
)

// bridge forwards hub topics into Socket.IO rooms. One forwarder goroutine per
// live topic; forwarders for emptied rooms are reaped on leave and disconnect.
type bridge struct {
	hub    *stream.Hub
	server *socketio.Server

	mu         sync.Mutex
	forwarders map[string]*stream.Subscription
}

func (b *bridge) ensure(topic, room string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.forwarders[topic]; ok {
		return
	}
	sub := b.hub.Subscribe(topic, 64)
	b.forwarders[topic] = sub

	go func() {
		for event := range sub.C() {
			b.server.BroadcastToRoom("/", room, event.Type, event.Data)
		}
	}()
}

// topicForRoom maps a Socket.IO room back to its hub topic. Per-user rooms
// are already topic-named; match rooms carry the bare match id.
func topicForRoom(room string) string {
	if strings.HasPrefix(room, "user:") {
		return room
	}
	return stream.MatchTopic(room)
}

func (b *bridge) release(topic, room string) {
	if b.server.RoomLen("/", room) > 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.forwarders[topic]; ok {
		sub.Cancel()
		delete(b.forwarders, topic)
	}
}

// NewSocketServer initializes and returns a new Socket.IO server bridged to the
// stream hub
func NewSocketServer(hub *stream.Hub, presenceService *services.PresenceService) *socketio.Server {
	server := socketio.NewServer(nil)
	b := &bridge{
		hub:        hub,
		server:     server,
		forwarders: make(map[string]*stream.Subscription),
	}

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	// Clients identify once per connection to receive their personal feed
	// (notifications, request inbox pokes).
	server.OnEvent("/", "identify", func(c socketio.Conn, data map[string]string) {
		uid := data["uid"]
		if uid == "" {
			log.Println("❌ Invalid uid in identify request")
			return
		}
		topic := stream.UserTopic(uid)
		c.Join(topic)
		b.ensure(topic, topic)
		log.Printf("👤 Socket %s identified as user %s\n", c.ID(), uid)
	})

	// Handle join events for match rooms
	server.OnEvent("/", "join", func(c socketio.Conn, data map[string]string) {
		matchID := data["matchId"]
		if matchID == "" {
			log.Println("❌ Invalid matchId in join request")
			return
		}
		c.Join(matchID)
		b.ensure(stream.MatchTopic(matchID), matchID)
		log.Printf("👥 Socket %s joined match %s\n", c.ID(), matchID)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, data map[string]string) {
		matchID := data["matchId"]
		if matchID == "" {
			return
		}
		c.Leave(matchID)
		b.release(stream.MatchTopic(matchID), matchID)
		log.Printf("👋 Socket %s left match %s\n", c.ID(), matchID)
	})

	// Heartbeats keep the sender's lastSeen fresh for presence checks.
	server.OnEvent("/", "heartbeat", func(c socketio.Conn, data map[string]string) {
		uid := data["uid"]
		if uid == "" {
			return
		}
		if err := presenceService.Touch(context.Background(), uid); err != nil {
			log.Printf("⚠️ Failed to record heartbeat for %s: %v\n", uid, err)
		}
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("⚠️ Socket error:", err)
	})

	// Most disconnects never emit leave, so the rooms this connection was in
	// are reaped here too; release keeps forwarders whose room still has other
	// members.
	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
		rooms := c.Rooms()
		c.LeaveAll()
		for _, room := range rooms {
			b.release(topicForRoom(room), room)
		}
	})

	return server
}
