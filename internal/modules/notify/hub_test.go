package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialTestConn(t *testing.T, hub *Hub, userID int64) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.Register(userID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	// Register runs in the server handler after the handshake returns.
	for i := 0; i < 200 && !hub.Online(userID); i++ {
		time.Sleep(5 * time.Millisecond)
	}
	if !hub.Online(userID) {
		t.Fatal("connection never registered")
	}
	return conn
}

func TestPublishDeliversEvent(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	conn := dialTestConn(t, hub, 1)

	hub.Publish(1, "booking_confirmed", map[string]any{"id": 7})

	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if ev.Event != "booking_confirmed" {
		t.Fatalf("expected booking_confirmed, got %s", ev.Event)
	}
}

func TestPublishConcurrentEventsSameUser(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	conn := dialTestConn(t, hub, 2)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Publish(2, "wallet_topup", nil)
		}()
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read %d failed: %v", i, err)
		}
		if ev.Event != "wallet_topup" {
			t.Fatalf("expected wallet_topup, got %s", ev.Event)
		}
	}
	if !hub.Online(2) {
		t.Fatal("connection dropped during concurrent publishes")
	}
}

func TestPublishToOfflineUserIsNoop(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	hub.Publish(99, "booking_confirmed", nil)

	if hub.Online(99) {
		t.Fatal("offline user must not appear online")
	}
}
