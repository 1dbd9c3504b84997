package relay

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	errs "gorelay/internal/errors"
	"gorelay/internal/metrics"
	"gorelay/util"
)

// wsMaxMessageSize bounds a single inbound WebSocket message.  Larger
// payloads are rejected by gorilla's read limit; within the limit a
// message is still split into ReadBufSize chunks on the way out so
// WebSocket and TCP clients observe the same fan-out shape.
const wsMaxMessageSize = 32 * 1024

// Gateway is an optional secondary access point that lets WebSocket
// clients join the same registry (and id space) as TCP clients.
type Gateway struct {
	Addr         string // host:port for the HTTP listener
	WriteTimeout time.Duration

	Registry *Registry
	Logger   *util.Logger
	Stats    *metrics.Collector
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  util.ReadBufSize,
	WriteBufferSize: util.ReadBufSize,
	// The relay has no authentication story; browsers from any origin
	// may join, same as any TCP client can.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Run serves the /ws upgrade endpoint until ctx is cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.handleWS)

	srv := &http.Server{Addr: g.Addr, Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close() //nolint:errcheck
	}()

	g.Logger.Info("listening on %s (websocket, path /ws)", g.Addr)

	err := srv.ListenAndServe()
	if errs.Is(err, http.ErrServerClosed) {
		return nil
	}
	return errs.Wrap("listen", g.Addr, err)
}

// handleWS upgrades the request and runs the client's read pump.  The
// pump mirrors a TCP session: register, broadcast tagged chunks,
// deregister on the way out.
func (g *Gateway) handleWS(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		g.Logger.Warn("upgrade %s: %v", req.RemoteAddr, err)
		g.Stats.RecordError(err.Error())
		return
	}
	ws.SetReadLimit(wsMaxMessageSize)

	peer := &wsPeer{ws: ws, writeTimeout: g.WriteTimeout}
	id := g.Registry.Register(peer)
	g.Logger.Info("[%d] connected (%s, websocket)", id, ws.RemoteAddr())

	defer func() {
		g.Registry.Deregister(id)
		peer.Close() //nolint:errcheck
		g.Logger.Info("[%d] disconnected", id)
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.Logger.Verbose("[%d] read error: %v", id, err)
				g.Stats.RecordError(err.Error())
			}
			return
		}
		if len(data) == 0 {
			continue
		}
		g.Stats.BytesReceived(int64(len(data)))

		// Chunk at the same boundary as TCP reads; no reassembly.
		for off := 0; off < len(data); off += util.ReadBufSize {
			end := off + util.ReadBufSize
			if end > len(data) {
				end = len(data)
			}
			g.Registry.Broadcast(TagMessage(id, data[off:end]))
		}
	}
}

// wsPeer adapts a WebSocket connection to the Peer interface.  Writes
// follow the same busy-skip policy as TCP peers: a held write lock
// drops the chunk instead of blocking the fan-out.
type wsPeer struct {
	ws           *websocket.Conn
	writeTimeout time.Duration

	wmu sync.Mutex

	closeOnce sync.Once
	closeErr  error
}

func (p *wsPeer) Write(b []byte) (int, error) {
	if !p.wmu.TryLock() {
		return 0, nil
	}
	defer p.wmu.Unlock()

	if p.writeTimeout > 0 {
		if err := p.ws.SetWriteDeadline(time.Now().Add(p.writeTimeout)); err != nil {
			return 0, err
		}
	}
	if err := p.ws.WriteMessage(websocket.TextMessage, b); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (p *wsPeer) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.ws.Close()
	})
	return p.closeErr
}

func (p *wsPeer) RemoteAddr() net.Addr { return p.ws.RemoteAddr() }
