package notify

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dojsystem/process-api/panel"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Event is the wire envelope pushed to websocket subscribers.
type Event struct {
	Type       string        `json:"type"`
	SurfaceID  string        `json:"surfaceId"`
	MessageRef string        `json:"messageRef,omitempty"`
	ParentID   string        `json:"parentId,omitempty"`
	Name       string        `json:"name,omitempty"`
	Message    *panel.Message `json:"message,omitempty"`
}

type surfaceState struct {
	parentID string
	name     string
	archived bool
	messages map[string]panel.Message
}

// Hub is a websocket-backed Sink. Every event is broadcast to all connected
// clients; per-surface message state is kept in memory so edits can be
// validated and late joiners could be replayed.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	surfaces map[string]*surfaceState
}

// NewHub returns an empty hub ready to accept connections.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[*websocket.Conn]struct{}),
		surfaces: make(map[string]*surfaceState),
	}
}

// ServeWS upgrades the request and registers the client with the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	zap.S().Infow("websocket client connected", "remote", conn.RemoteAddr().String())

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.conns, conn)
			h.mu.Unlock()
			conn.Close()
			zap.S().Infow("websocket client disconnected", "remote", conn.RemoteAddr().String())
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcast fans an event out to every connected client. Callers must hold
// h.mu.
func (h *Hub) broadcast(ev Event) {
	for conn := range h.conns {
		if err := conn.WriteJSON(ev); err != nil {
			zap.S().Warnw("websocket write failed, dropping client", "remote", conn.RemoteAddr().String(), "error", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *Hub) surface(surfaceID string) *surfaceState {
	s, ok := h.surfaces[surfaceID]
	if !ok {
		s = &surfaceState{messages: make(map[string]panel.Message)}
		h.surfaces[surfaceID] = s
	}
	return s
}

// Send publishes a message and returns its generated reference.
func (h *Hub) Send(_ context.Context, surfaceID string, msg panel.Message) (string, error) {
	ref := uuid.New().String()

	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.surface(surfaceID)
	if s.archived {
		return "", ErrSurfaceArchived
	}
	s.messages[ref] = msg
	h.broadcast(Event{Type: "message", SurfaceID: surfaceID, MessageRef: ref, Message: &msg})
	return ref, nil
}

// EditMessage replaces a previously sent message in place.
func (h *Hub) EditMessage(_ context.Context, surfaceID, messageRef string, msg panel.Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.surfaces[surfaceID]
	if !ok {
		return ErrUnknownSurface
	}
	if _, ok := s.messages[messageRef]; !ok {
		return ErrUnknownMessage
	}
	s.messages[messageRef] = msg
	h.broadcast(Event{Type: "message_edited", SurfaceID: surfaceID, MessageRef: messageRef, Message: &msg})
	return nil
}

// CreateDiscussionSurface opens a child surface under parentID.
func (h *Hub) CreateDiscussionSurface(_ context.Context, parentID, name string) (string, error) {
	id := uuid.New().String()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.surfaces[id] = &surfaceState{parentID: parentID, name: name, messages: make(map[string]panel.Message)}
	h.broadcast(Event{Type: "surface_created", SurfaceID: id, ParentID: parentID, Name: name})
	return id, nil
}

// ArchiveSurface closes a surface. Archiving is idempotent.
func (h *Hub) ArchiveSurface(_ context.Context, surfaceID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.surfaces[surfaceID]
	if !ok {
		return ErrUnknownSurface
	}
	if s.archived {
		return nil
	}
	s.archived = true
	h.broadcast(Event{Type: "surface_archived", SurfaceID: surfaceID})
	return nil
}
