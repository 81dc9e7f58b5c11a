package hub

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/oddsmash/oddsmash-engine/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// Buffer size for outbound messages
	sendBufferSize = 256
)

// MessageType identifies server message payloads.
type MessageType string

const MessageTypeArbitrage MessageType = "arbitrage_opportunity"

// ServerMessage wraps an outbound payload.
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// SubscriptionFilter narrows which opportunities a client receives.
// Empty fields match everything.
type SubscriptionFilter struct {
	Sports    []string `json:"sports"`
	Markets   []string `json:"markets"`
	Books     []string `json:"books"`
	MinArbPct float64  `json:"min_arb_pct"`
}

// clientMessage is the only inbound shape: a filter update.
type clientMessage struct {
	Type   string             `json:"type"`
	Filter SubscriptionFilter `json:"filter"`
}

// Client represents a WebSocket client connection.
type Client struct {
	ID   string
	Send chan ServerMessage

	conn *websocket.Conn
	hub  *Hub

	filter   SubscriptionFilter
	filterMu sync.RWMutex
}

// NewClient creates a new client instance.
func NewClient(id string, conn *websocket.Conn, h *Hub) *Client {
	return &Client{
		ID:   id,
		Send: make(chan ServerMessage, sendBufferSize),
		conn: conn,
		hub:  h,
	}
}

// ReadPump pumps messages from the WebSocket connection to the hub.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg clientMessage
			if err := c.conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					fmt.Printf("client %s unexpected close: %v\n", c.ID, err)
				}
				return
			}

			if msg.Type == "subscribe" {
				c.SetFilter(msg.Filter)
			}
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				fmt.Printf("client %s write error: %v\n", c.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend sends a message to the client without blocking.
// Returns false when the buffer is full.
func (c *Client) TrySend(msg ServerMessage) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// SetFilter updates the client's subscription filter.
func (c *Client) SetFilter(filter SubscriptionFilter) {
	c.filterMu.Lock()
	defer c.filterMu.Unlock()
	c.filter = filter
}

// MatchesFilter checks whether an opportunity passes the client's filter.
func (c *Client) MatchesFilter(opp models.ArbitrageOpportunity) bool {
	c.filterMu.RLock()
	defer c.filterMu.RUnlock()

	if opp.ArbPercentage < c.filter.MinArbPct {
		return false
	}

	if len(c.filter.Sports) > 0 && !contains(c.filter.Sports, opp.Sport) {
		return false
	}

	if len(c.filter.Markets) > 0 && !contains(c.filter.Markets, opp.MarketKey) {
		return false
	}

	if len(c.filter.Books) > 0 && !contains(c.filter.Books, opp.OverBook) && !contains(c.filter.Books, opp.UnderBook) {
		return false
	}

	return true
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
