// Package bridge connects the viewer to a browser viewport over a WebSocket.
// The browser page is a thin client: it executes render-engine commands sent
// by the server and holds no state of its own.
package bridge

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"lottie-viewer/internal/viewer"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// command is the wire format sent to the viewport client.
type command struct {
	Op       string          `json:"op"`
	Renderer viewer.Renderer `json:"renderer,omitempty"`
	Loop     bool            `json:"loop,omitempty"`
	Autoplay bool            `json:"autoplay,omitempty"`
	Frame    float64         `json:"frame,omitempty"`
	Speed    float64         `json:"speed,omitempty"`
	Document json.RawMessage `json:"document,omitempty"`
}

// Bridge implements viewer.Engine by forwarding engine commands to a single
// connected viewport client. A new connection replaces the previous one.
type Bridge struct {
	mu       sync.Mutex
	log      *slog.Logger
	conn     *websocket.Conn
	clientID string
}

// The viewer is a local single-user tool; the page and the websocket are
// served from the same origin.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// New returns a Bridge with no viewport connected.
func New(log *slog.Logger) *Bridge {
	return &Bridge{log: log}
}

// HandleWS handles GET /viewport/ws: upgrades the connection and adopts it as
// the viewport client, replacing any previous one.
func (b *Bridge) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Error("viewport upgrade failed", slog.String("error", err.Error()))
		return
	}

	id := uuid.NewString()

	b.mu.Lock()
	if b.conn != nil {
		b.conn.Close()
	}
	b.conn = conn
	b.clientID = id
	b.mu.Unlock()

	b.log.Info("viewport connected", slog.String("client_id", id))

	// Drain incoming frames so pings and close frames are processed; the
	// client never sends commands.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		b.mu.Lock()
		if b.clientID == id {
			b.conn = nil
			b.clientID = ""
		}
		b.mu.Unlock()
		conn.Close()
		b.log.Info("viewport disconnected", slog.String("client_id", id))
	}()
}

// Connected reports whether a viewport client is attached.
func (b *Bridge) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn != nil
}

// Load implements viewer.Engine. It fails with ErrEngineUnavailable when no
// viewport client is connected.
func (b *Bridge) Load(opts viewer.LoadOptions) (viewer.Instance, error) {
	cmd := command{
		Op:       "load",
		Renderer: opts.Renderer,
		Loop:     opts.Loop,
		Autoplay: opts.Autoplay,
		Document: opts.Document,
	}
	if err := b.send(cmd, true); err != nil {
		return nil, err
	}
	return &instance{bridge: b}, nil
}

// send writes a command to the viewport client. When required is false a
// missing client is tolerated (the instance methods fire and forget, per the
// engine contract).
func (b *Bridge) send(cmd command, required bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		if required {
			return viewer.ErrEngineUnavailable
		}
		return nil
	}

	if err := b.conn.WriteJSON(cmd); err != nil {
		b.log.Error("viewport write failed",
			slog.String("op", cmd.Op),
			slog.String("error", err.Error()))
		b.conn.Close()
		b.conn = nil
		b.clientID = ""
		if required {
			return viewer.ErrEngineUnavailable
		}
	}
	return nil
}

// instance is the live render instance handle. Its methods mirror the
// capability contract of the playback engine one to one.
type instance struct {
	bridge *Bridge
}

func (i *instance) Play()  { i.bridge.send(command{Op: "play"}, false) }
func (i *instance) Pause() { i.bridge.send(command{Op: "pause"}, false) }
func (i *instance) Stop()  { i.bridge.send(command{Op: "stop"}, false) }

func (i *instance) GoToAndPlay(frame float64) {
	i.bridge.send(command{Op: "seek", Frame: frame}, false)
}

func (i *instance) SetSpeed(factor float64) {
	i.bridge.send(command{Op: "speed", Speed: factor}, false)
}

func (i *instance) Destroy() { i.bridge.send(command{Op: "destroy"}, false) }
