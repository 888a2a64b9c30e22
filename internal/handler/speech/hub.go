package speech

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zhouzirui/persona-voice/backend/internal/service/voice"
	"github.com/zhouzirui/persona-voice/backend/pkg/log"
)

const (
	chunkSize    = 16 * 1024
	sendBuffer   = 256
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// 控制帧类型
const (
	TypeAudioStart = "audio_start"
	TypeAudioEnd   = "audio_end"
	TypeAudioStop  = "audio_stop"
	TypeStop       = "stop"
)

type outgoingMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type inboundMessage struct {
	Type string `json:"type"`
}

type frame struct {
	messageType int
	data        []byte
	// written 非空时，writePump 写出该帧后关闭它
	written chan struct{}
}

// Hub 把一个会话合成的音频广播给所有连接的客户端，实现 voice.Player。
type Hub struct {
	sessionID string

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates an empty hub for sessionID.
func NewHub(sessionID string) *Hub {
	return &Hub{sessionID: sessionID, clients: make(map[*client]struct{})}
}

// Clients reports the number of attached connections.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Play streams audio to every client as binary frames framed by JSON control messages.
// It returns once each attached client has written audio_end to its connection,
// so a completed Play means delivered to the socket, not heard by the listener.
// Clients that disconnect meanwhile are not waited for. With no client attached
// the audio is drained and dropped.
func (h *Hub) Play(ctx context.Context, audio voice.Audio) error {
	h.broadcastControl(TypeAudioStart, map[string]string{"format": audio.Format})

	buf := make([]byte, chunkSize)
	for {
		n, err := audio.Stream.Read(buf)
		if ctx.Err() != nil {
			h.broadcastControl(TypeAudioStop, nil)
			return ctx.Err()
		}
		if n > 0 {
			h.broadcast(frame{messageType: websocket.BinaryMessage, data: append([]byte(nil), buf[:n]...)}, false)
		}
		if errors.Is(err, io.EOF) {
			return h.finish(ctx)
		}
		if err != nil {
			h.broadcastControl(TypeAudioStop, nil)
			return err
		}
	}
}

// Attach serves conn until it closes. onStop runs when the client asks to stop playback.
func (h *Hub) Attach(conn *websocket.Conn, onStop func()) {
	c := &client{conn: conn, send: make(chan frame, sendBuffer), done: make(chan struct{})}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	log.Debugf("[audio] client attached session=%s", h.sessionID)

	go c.writePump()
	defer func() {
		h.detach(c)
		log.Debugf("[audio] client detached session=%s", h.sessionID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debugf("[audio] ignoring malformed message: %v", err)
			continue
		}
		if msg.Type == TypeStop && onStop != nil {
			onStop()
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

func (h *Hub) detach(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// finish 发送 audio_end 并等待各客户端写出。ctx 结束时改发 audio_stop。
func (h *Hub) finish(ctx context.Context) error {
	payload, ok := h.encodeControl(TypeAudioEnd, nil)
	if !ok {
		return nil
	}
	for _, d := range h.broadcast(frame{messageType: websocket.TextMessage, data: payload}, true) {
		select {
		case <-d.written:
		case <-d.client.done:
		case <-ctx.Done():
			h.broadcastControl(TypeAudioStop, nil)
			return ctx.Err()
		}
	}
	return nil
}

func (h *Hub) encodeControl(kind string, data any) ([]byte, bool) {
	payload, err := json.Marshal(outgoingMessage{
		Type:      kind,
		SessionID: h.sessionID,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		log.Warnf("[audio] failed to encode control message: %v", err)
		return nil, false
	}
	return payload, true
}

func (h *Hub) broadcastControl(kind string, data any) {
	if payload, ok := h.encodeControl(kind, data); ok {
		h.broadcast(frame{messageType: websocket.TextMessage, data: payload}, false)
	}
}

type delivery struct {
	client  *client
	written chan struct{}
}

// broadcast 非阻塞发送，缓冲区满的慢客户端会被断开。
// track 为 true 时为每个客户端附带写出通知并返回。
func (h *Hub) broadcast(f frame, track bool) []delivery {
	h.mu.Lock()
	var (
		slow       []*client
		deliveries []delivery
	)
	for c := range h.clients {
		cf := f
		if track {
			cf.written = make(chan struct{})
		}
		select {
		case c.send <- cf:
			if track {
				deliveries = append(deliveries, delivery{client: c, written: cf.written})
			}
		default:
			slow = append(slow, c)
			delete(h.clients, c)
		}
	}
	h.mu.Unlock()

	for _, c := range slow {
		log.Warnf("[audio] dropping slow client session=%s", h.sessionID)
		c.close()
	}
	return deliveries
}

type client struct {
	conn *websocket.Conn
	send chan frame
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case f := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(f.messageType, f.data); err != nil {
				c.close()
				return
			}
			if f.written != nil {
				close(f.written)
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}

// Hubs 按会话 ID 管理音频 Hub
type Hubs struct {
	mu   sync.Mutex
	hubs map[string]*Hub
}

// NewHubs creates an empty registry.
func NewHubs() *Hubs {
	return &Hubs{hubs: make(map[string]*Hub)}
}

// For returns the hub of sessionID, creating it on first use.
func (r *Hubs) For(sessionID string) *Hub {
	r.mu.Lock()
	defer r.mu.Unlock()
	hub, ok := r.hubs[sessionID]
	if !ok {
		hub = NewHub(sessionID)
		r.hubs[sessionID] = hub
	}
	return hub
}

// Remove closes and forgets the hub of sessionID.
func (r *Hubs) Remove(sessionID string) {
	r.mu.Lock()
	hub, ok := r.hubs[sessionID]
	delete(r.hubs, sessionID)
	r.mu.Unlock()
	if ok {
		hub.Close()
	}
}
