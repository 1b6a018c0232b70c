package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"dabois-portal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev (restrict in production)
	},
}

// Active WebSocket connections per user id. There is a single shared room.
var (
	activeConnections = make(map[string]*websocket.Conn)
	connectionsMutex  sync.RWMutex
)

// WSMessage is the envelope for everything on the chat socket.
type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

const chatHistoryOnConnect = 50

// ChatSocketHandler upgrades the request and joins the shared chat room. On
// connect the most recent messages are replayed; afterwards every
// chat_message from any member is persisted and fanned out to everyone.
func ChatSocketHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	connectionsMutex.Lock()
	activeConnections[actor.ID] = conn
	connectionsMutex.Unlock()
	log.Info().Str("user", actor.Name).Msg("chat connected")

	defer func() {
		connectionsMutex.Lock()
		delete(activeConnections, actor.ID)
		connectionsMutex.Unlock()
		log.Info().Str("user", actor.Name).Msg("chat disconnected")
	}()

	conn.WriteJSON(WSMessage{Type: "connected", Data: map[string]string{"status": "connected"}})
	replayRecentMessages(conn)

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Debug().Err(err).Str("user", actor.Name).Msg("chat read")
			break
		}

		switch msg.Type {
		case "chat_message":
			var req struct {
				Content string `json:"content"`
			}
			raw, err := json.Marshal(msg.Data)
			if err != nil {
				continue
			}
			if err := json.Unmarshal(raw, &req); err != nil {
				continue
			}
			if req.Content == "" {
				conn.WriteJSON(WSMessage{Type: "error", Data: "Message content cannot be empty"})
				continue
			}

			stored, err := appendChatMessage(actor.Name, req.Content)
			if err != nil {
				log.Error().Err(err).Msg("saving chat message")
				conn.WriteJSON(WSMessage{Type: "error", Data: "Failed to save message"})
				continue
			}
			broadcastToRoom("chat_message", stored)

		case "ping":
			conn.WriteJSON(WSMessage{Type: "pong", Data: "pong"})

		default:
			log.Debug().Str("type", msg.Type).Str("user", actor.Name).Msg("unknown chat message type")
		}
	}
}

// ListMessagesHandler returns the persisted chat history, oldest first, for
// clients that poll instead of holding a socket.
func ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}
	messages, err := appStore.LoadMessages()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	sorted := make([]models.ChatMessage, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	writeJSON(w, http.StatusOK, sorted)
}

// PostMessageHandler persists a chat message over plain HTTP and fans it out
// to any connected sockets.
func PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if !actor.CanCreateContent() {
		http.Error(w, "Parents have read-only access", http.StatusForbidden)
		return
	}
	var req struct {
		Content string `json:"content" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	stored, err := appendChatMessage(actor.Name, req.Content)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	broadcastToRoom("chat_message", stored)
	writeJSON(w, http.StatusCreated, stored)
}

func appendChatMessage(author, content string) (models.ChatMessage, error) {
	messagesMu.Lock()
	defer messagesMu.Unlock()
	messages, err := appStore.LoadMessages()
	if err != nil {
		return models.ChatMessage{}, err
	}
	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	messages = append(messages, msg)
	if err := appStore.SaveMessages(messages); err != nil {
		return models.ChatMessage{}, err
	}
	return msg, nil
}

func replayRecentMessages(conn *websocket.Conn) {
	messages, err := appStore.LoadMessages()
	if err != nil {
		log.Error().Err(err).Msg("loading chat history")
		return
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	if len(messages) > chatHistoryOnConnect {
		messages = messages[len(messages)-chatHistoryOnConnect:]
	}
	for _, m := range messages {
		if err := conn.WriteJSON(WSMessage{Type: "chat_message", Data: m}); err != nil {
			log.Debug().Err(err).Msg("replaying chat history")
			return
		}
	}
}

// broadcastToRoom fans a message out to every connected socket. Dead
// connections are dropped from the map.
func broadcastToRoom(msgType string, data interface{}) {
	connectionsMutex.Lock()
	defer connectionsMutex.Unlock()
	for userID, conn := range activeConnections {
		if err := conn.WriteJSON(WSMessage{Type: msgType, Data: data}); err != nil {
			log.Debug().Err(err).Str("user_id", userID).Msg("broadcast failed, dropping connection")
			conn.Close()
			delete(activeConnections, userID)
		}
	}
}
