package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"DelistRadar/internal/domain/models"
	drepo "DelistRadar/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements an AnnouncementStream backed by the Binance
// announcement WebSocket.
type Client struct {
	websocketURL   string
	channel        string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	mu        sync.Mutex // guards conn
	conn      *websocket.Conn
	connected atomic.Bool
}

// New creates a new Binance AnnouncementStream.
func New(websocketURL, channel string, reconnectDelay, pingInterval time.Duration) drepo.AnnouncementStream {
	return &Client{
		websocketURL:   websocketURL,
		channel:        channel,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.websocketURL, nil)
	if err != nil {
		return fmt.Errorf("binance connect: %w", err)
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.connected.Store(true)
	log.Printf("binance: connected")
	return nil
}

func (c *Client) current() *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

// Subscribe subscribes to the announcement channel.
func (c *Client) Subscribe(ctx context.Context) error {
	conn := c.current()
	if conn == nil || !c.connected.Load() {
		return fmt.Errorf("binance not connected")
	}
	msg := map[string]interface{}{
		"id":     "1",
		"method": "c_subscribe",
		"params": map[string]string{"channel": c.channel},
	}
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("subscribe %s: %w", c.channel, err)
	}
	log.Printf("binance: subscribed %s", c.channel)
	return nil
}

type wsArticle struct {
	ArticleID    int64  `json:"article_id"`
	ArticleTitle string `json:"article_title"`
	ArticleURL   string `json:"article_url"`
	ArticleBody  string `json:"article_body"`
}

type wsMessage struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// Read streams raw announcements and errors. Frames on other channels
// and subscription acks are ignored. Both loops are pinned to the
// connection current at call time, and the ping loop lives exactly as
// long as the read loop so a reconnect never leaves two writers on one
// connection.
func (c *Client) Read(ctx context.Context) (<-chan *models.RawAnnouncement, <-chan error) {
	anns := make(chan *models.RawAnnouncement, 64)
	errs := make(chan error, 1)
	conn := c.current()
	done := make(chan struct{})

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				if conn != nil {
					_ = conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(done)
		defer close(anns)
		defer close(errs)
		if conn == nil {
			errs <- fmt.Errorf("binance conn nil")
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			default:
				_, b, err := conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("binance read: %w", err)
					return
				}
				var m wsMessage
				if err := json.Unmarshal(b, &m); err != nil {
					continue
				}
				if m.Channel != c.channel || len(m.Data) == 0 {
					continue
				}
				var a wsArticle
				if err := json.Unmarshal(m.Data, &a); err != nil {
					continue
				}
				if a.ArticleID == 0 || a.ArticleTitle == "" {
					continue
				}
				raw := &models.RawAnnouncement{
					Source:     models.SourceBinance,
					Identifier: fmt.Sprintf("%d", a.ArticleID),
					Title:      a.ArticleTitle,
					Body:       a.ArticleBody,
					URL:        a.ArticleURL,
				}
				select {
				case anns <- raw:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return anns, errs
}

// Reconnect closes and reconnects, retrying until it succeeds or the
// context is cancelled.
func (c *Client) Reconnect(ctx context.Context) error {
	for {
		_ = c.Close()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.reconnectDelay):
		}
		if err := c.Connect(ctx); err != nil {
			log.Printf("binance: reconnect failed: %v", err)
			continue
		}
		if err := c.Subscribe(ctx); err != nil {
			log.Printf("binance: resubscribe failed: %v", err)
			continue
		}
		return nil
	}
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected.Store(false)
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected.Load() }
