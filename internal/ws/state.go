// Package ws mirrors the panel over websockets so a browser can watch the
// scene live. Frame clients get one JSON topology message on connect, then
// binary frames; diagnostics clients get JSON events.
package ws

import (
	"encoding/binary"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	diag "github.com/tejaspatelll/warpdrive/internal/diagnostics"
	"github.com/tejaspatelll/warpdrive/internal/display"
)

type State struct {
	mu  sync.RWMutex
	log zerolog.Logger

	fb      *display.Framebuffer
	frameID uint64
	started time.Time

	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	minInterval time.Duration
	lastPush    time.Time

	// Mode and Object are updated by the frame loop for /health.
	Mode   string
	Object string
}

// NewState wraps the framebuffer the loop draws into. minInterval throttles
// frame broadcasts; zero means every frame.
func NewState(fb *display.Framebuffer, minInterval time.Duration, log zerolog.Logger) *State {
	return &State{
		log:         log,
		fb:          fb,
		started:     time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		minInterval: minInterval,
	}
}

// PushFrame snapshots the framebuffer and broadcasts it as little-endian
// RGB565, subject to the throttle.
func (s *State) PushFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frameID++
	if len(s.clients) == 0 {
		return
	}
	now := time.Now()
	if s.minInterval > 0 && now.Sub(s.lastPush) < s.minInterval {
		return
	}
	s.lastPush = now

	pix := s.fb.Pixels()
	buf := make([]byte, len(pix)*2)
	for i, c := range pix {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(c))
	}
	for c := range s.clients {
		c.SetWriteDeadline(now.Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.BinaryMessage, buf); err != nil {
			s.log.Debug().Err(err).Msg("write frame")
		}
	}
}

// PushDiag broadcasts a diagnostic to the diag clients.
func (s *State) PushDiag(d diag.Diagnostic) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, _ := json.Marshal(d)
	for c := range s.diagClients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}

// SetScene records the loop's current mode and object for /health.
func (s *State) SetScene(mode, object string) {
	s.mu.Lock()
	s.Mode = mode
	s.Object = object
	s.mu.Unlock()
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	s.sendTopology(conn)

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.diagClients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	width, height := s.fb.Size()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.started).Seconds(),
		"width":    width,
		"height":   height,
		"mode":     s.Mode,
		"object":   s.Object,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *State) sendTopology(conn *websocket.Conn) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	width, height := s.fb.Size()
	top := map[string]any{
		"w":      width,
		"h":      height,
		"format": "rgb565",
		"order":  "little-endian",
	}
	b, _ := json.Marshal(top)
	_ = conn.WriteMessage(websocket.TextMessage, b)
}
