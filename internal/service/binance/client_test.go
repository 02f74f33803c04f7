package binance

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// announcementServer upgrades each connection, waits for the subscribe
// frame, pushes a single article and then drops the connection after
// holdFor. Article IDs increase across connections.
func announcementServer(t *testing.T, channel string, holdFor time.Duration) *httptest.Server {
	t.Helper()
	var nextID int64
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		id := atomic.AddInt64(&nextID, 1)
		frame := fmt.Sprintf(`{"channel":%q,"data":{"article_id":%d,"article_title":"Binance Will Delist TK%d","article_url":"https://binance.com/a/%d","article_body":"delist body"}}`,
			channel, id, id, id)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			return
		}
		time.Sleep(holdFor)
	}))
}

func TestClientStreamsAcrossReconnect(t *testing.T) {
	const channel = "binance_announcements"
	srv := announcementServer(t, channel, 40*time.Millisecond)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	c := New(wsURL, channel, 5*time.Millisecond, 2*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := c.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if !c.IsConnected() {
		t.Fatalf("expected connected")
	}

	// Poll the status from another goroutine while the stream churns.
	statusDone := make(chan struct{})
	go func() {
		defer close(statusDone)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				_ = c.IsConnected()
				time.Sleep(time.Millisecond)
			}
		}
	}()

	anns, errs := c.Read(ctx)
	first := <-anns
	if first == nil || first.Identifier != "1" {
		t.Fatalf("first = %+v", first)
	}
	if first.Title != "Binance Will Delist TK1" {
		t.Fatalf("title = %q", first.Title)
	}

	if err := <-errs; err == nil {
		t.Fatalf("expected read error after server drop")
	}

	// The reconnected stream gets its own ping loop; the old one must be
	// gone so a fresh subscribe never races another writer.
	if err := c.Reconnect(ctx); err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	anns, _ = c.Read(ctx)
	second := <-anns
	if second == nil || second.Identifier != "2" {
		t.Fatalf("second = %+v", second)
	}

	// Let a few ping intervals elapse on the live connection.
	time.Sleep(10 * time.Millisecond)

	cancel()
	<-statusDone
	_ = c.Close()
	if c.IsConnected() {
		t.Fatalf("expected disconnected after close")
	}
}
