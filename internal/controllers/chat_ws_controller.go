package controllers

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"atuna_estate/internal/access"
	"atuna_estate/internal/middleware"
	"atuna_estate/internal/models"
	"atuna_estate/internal/policy"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// chatClient pairs a connection with a write mutex. gorilla permits only
// one concurrent writer per connection, and both the broadcast fan-out and
// the handler's error replies write to it.
type chatClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *chatClient) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// wsEnvelope carries one broadcast together with the room it belongs to.
type wsEnvelope struct {
	chatroomID string
	payload    interface{}
}

// ChatHub manages active WebSocket connections per chatroom and fans out
// new messages to everyone in the room.
type ChatHub struct {
	rooms     map[string]map[*chatClient]bool
	broadcast chan wsEnvelope
	mu        sync.Mutex
}

// NewChatHub creates a hub and starts its broadcast loop.
func NewChatHub() *ChatHub {
	hub := &ChatHub{
		rooms:     make(map[string]map[*chatClient]bool),
		broadcast: make(chan wsEnvelope, 100),
	}
	go hub.run()
	return hub
}

func (h *ChatHub) run() {
	for env := range h.broadcast {
		h.mu.Lock()
		if clients, exists := h.rooms[env.chatroomID]; exists {
			for client := range clients {
				go func(c *chatClient, payload interface{}) {
					if err := c.writeJSON(payload); err != nil {
						if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
							h.Unregister(env.chatroomID, c)
						} else {
							logrus.WithError(err).WithFields(logrus.Fields{
								"chatroom_id": env.chatroomID,
								"conn_ptr":    fmt.Sprintf("%p", c.conn),
							}).Warn("Failed to deliver chat broadcast to client.")
						}
					}
				}(client, env.payload)
			}
		}
		h.mu.Unlock()
	}
}

// Register adds a connection to a room and returns the client handle all
// further writes must go through.
func (h *ChatHub) Register(chatroomID string, conn *websocket.Conn) *chatClient {
	client := &chatClient{conn: conn}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[chatroomID]; !ok {
		h.rooms[chatroomID] = make(map[*chatClient]bool)
	}
	h.rooms[chatroomID][client] = true
	logrus.WithFields(logrus.Fields{
		"chatroom_id": chatroomID,
		"conn_ptr":    fmt.Sprintf("%p", conn),
	}).Info("Client joined chatroom hub.")
	return client
}

// Unregister removes a client from a room, dropping the room entry when
// it becomes empty.
func (h *ChatHub) Unregister(chatroomID string, client *chatClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.rooms[chatroomID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, chatroomID)
		}
	}
	logrus.WithFields(logrus.Fields{
		"chatroom_id": chatroomID,
		"conn_ptr":    fmt.Sprintf("%p", client.conn),
	}).Info("Client left chatroom hub.")
}

// Publish queues a payload for everyone in a room. Full channel drops the
// message rather than blocking the HTTP path.
func (h *ChatHub) Publish(chatroomID string, payload interface{}) {
	select {
	case h.broadcast <- wsEnvelope{chatroomID: chatroomID, payload: payload}:
	default:
		logrus.Warn("Chat broadcast channel full, dropping message.")
	}
}

var chatHub = NewChatHub()

// HandleChatWebSocket upgrades a connection into a chatroom session. The
// JWT travels as a query parameter because browsers cannot set headers on
// websocket handshakes. Incoming frames are persisted through the access
// service and then fanned out to the room.
func HandleChatWebSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication token."})
		return
	}
	claims, err := middleware.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	actor := access.Actor{ID: claims.UserID, Role: policy.Role(claims.Role)}

	chatroomID := c.Param("id")
	if _, err := accessSvc.GetChatroom(actor, chatroomID); err != nil {
		respondErr(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection.")
		return
	}
	defer conn.Close()

	client := chatHub.Register(chatroomID, conn)
	defer chatHub.Unregister(chatroomID, client)

	for {
		var frame struct {
			Content string `json:"content"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).WithField("chatroom_id", chatroomID).Warn("Error reading chat frame.")
			}
			break
		}
		if frame.Content == "" {
			client.writeJSON(gin.H{"error": "Message content is required."})
			continue
		}

		message := models.Message{ChatroomID: chatroomID, Content: frame.Content}
		if err := accessSvc.CreateMessage(actor, &message); err != nil {
			client.writeJSON(gin.H{"error": "Failed to save message."})
			continue
		}
		chatHub.Publish(chatroomID, gin.H{"event": "message", "message": message})
	}
}
