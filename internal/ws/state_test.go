package ws

import (
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diag "github.com/tejaspatelll/warpdrive/internal/diagnostics"
	"github.com/tejaspatelll/warpdrive/internal/display"
)

func newTestState(t *testing.T) (*State, *httptest.Server) {
	t.Helper()
	fb := display.NewFramebuffer(8, 4)
	s := NewState(fb, 0, zerolog.Nop())
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/health", s.HandleHealth)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return s, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func TestFramesTopologyThenBinary(t *testing.T) {
	s, srv := newTestState(t)
	conn := dial(t, srv, "/ws")

	mt, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, mt)
	var top map[string]any
	require.NoError(t, json.Unmarshal(msg, &top))
	assert.EqualValues(t, 8, top["w"])
	assert.EqualValues(t, 4, top["h"])
	assert.Equal(t, "rgb565", top["format"])

	s.fb.DrawPixel(1, 0, display.RGB565(255, 0, 0))
	// the client registers asynchronously; retry until the frame lands
	deadline := time.Now().Add(2 * time.Second)
	var frame []byte
	for time.Now().Before(deadline) {
		s.PushFrame()
		conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		mt, frame, err = conn.ReadMessage()
		if err == nil {
			break
		}
	}
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, mt)
	require.Len(t, frame, 8*4*2)
	got := display.Color(binary.LittleEndian.Uint16(frame[2:4]))
	assert.Equal(t, display.RGB565(255, 0, 0), got)
}

func TestDiagBroadcast(t *testing.T) {
	s, srv := newTestState(t)
	conn := dial(t, srv, "/diag")

	sent := diag.Diagnostic{Severity: diag.Info, Code: "SCENE.SHOWCASE", Summary: "black_hole"}
	deadline := time.Now().Add(2 * time.Second)
	var (
		msg []byte
		err error
	)
	for time.Now().Before(deadline) {
		s.PushDiag(sent)
		conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		_, msg, err = conn.ReadMessage()
		if err == nil {
			break
		}
	}
	require.NoError(t, err)
	var got diag.Diagnostic
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, sent.Code, got.Code)
	assert.Equal(t, diag.Info, got.Severity)
}

func TestHealth(t *testing.T) {
	s, srv := newTestState(t)
	s.SetScene("showcase", "pulsar")
	s.PushFrame()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 1, body["frame_id"])
	assert.EqualValues(t, 8, body["width"])
	assert.Equal(t, "showcase", body["mode"])
	assert.Equal(t, "pulsar", body["object"])
}

func TestThrottleDropsRapidFrames(t *testing.T) {
	fb := display.NewFramebuffer(4, 4)
	s := NewState(fb, time.Hour, zerolog.Nop())
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleFramesWS)
	srv := httptest.NewServer(mux)
	defer srv.Close()
	conn := dial(t, srv, "/ws")

	_, _, err := conn.ReadMessage() // topology
	require.NoError(t, err)

	// wait for the client to register, then the first frame passes and the
	// second falls inside the throttle window
	deadline := time.Now().Add(2 * time.Second)
	for {
		s.mu.RLock()
		n := len(s.clients)
		s.mu.RUnlock()
		if n == 1 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	s.PushFrame()
	s.PushFrame()

	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err = conn.ReadMessage()
	require.NoError(t, err, "first frame should pass the throttle")

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err, "second frame should be throttled")
}
