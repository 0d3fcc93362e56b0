package egress

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

var ErrWSNotConnected = errors.New("ws not connected")

// WSPublisher writes reply frames over a single WebSocket connection.
// Incoming frames are discarded.
type WSPublisher struct {
	wsURL          string
	headerProvider HeaderProvider

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWSPublisher(wsURL string, headers HeaderProvider) *WSPublisher {
	return &WSPublisher{wsURL: wsURL, headerProvider: headers}
}

func (ws *WSPublisher) Connect(ctx context.Context) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.conn != nil {
		return nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(dialCtx, ws.wsURL, &websocket.DialOptions{
		CompressionMode: websocket.CompressionNoContextTakeover,
		HTTPHeader:      ws.buildHeaders(),
	})
	if err != nil {
		return err
	}
	// keeps control frames flowing on a write-only connection
	conn.CloseRead(context.Background())
	ws.conn = conn
	return nil
}

func (ws *WSPublisher) Connected() bool {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.conn != nil
}

// WriteJSON serialises writers; wsjson.Write is not safe for concurrent use.
func (ws *WSPublisher) WriteJSON(ctx context.Context, v any) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.conn == nil {
		return ErrWSNotConnected
	}
	wctx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	return wsjson.Write(wctx, ws.conn, v)
}

func (ws *WSPublisher) Close() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.conn == nil {
		return nil
	}
	defer func() { ws.conn = nil }()
	return ws.conn.Close(websocket.StatusNormalClosure, "close")
}

func (ws *WSPublisher) buildHeaders() http.Header {
	hdr := http.Header{}
	if ws.headerProvider == nil {
		return hdr
	}
	for k, v := range ws.headerProvider() {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			continue
		}
		hdr.Set(k, v)
	}
	return hdr
}
