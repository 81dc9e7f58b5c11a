package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/oddsmash/oddsmash-engine/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced by the router middleware
	},
}

// WebSocket upgrades the connection and subscribes the client to live
// arbitrage opportunities.
// GET /api/v1/ws
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Printf("websocket upgrade failed: %v\n", err)
		return
	}

	client := hub.NewClient(uuid.NewString(), conn, h.hub)
	h.hub.Register(client)

	// The request context dies when this handler returns; the pumps
	// outlive it and stop via the hub instead.
	go client.WritePump(context.Background())
	go client.ReadPump(context.Background())
}
