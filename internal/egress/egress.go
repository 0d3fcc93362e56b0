package egress

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Egress abstracts message/image sending over HTTP, WebSocket or Redis.
type Egress interface {
	SendText(ctx context.Context, room, message string) error
	SendImage(ctx context.Context, room, imageBase64 string) error
}

type transportMode string

const (
	transportHTTP  transportMode = "http"
	transportWS    transportMode = "ws"
	transportRedis transportMode = "redis"
)

// Transports carries the connected transport for the selected mode; the others may be nil.
type Transports struct {
	HTTP  *Client
	WS    *WSPublisher
	Redis *RedisPublisher
}

// NewEgress creates an Egress based on mode. With dryrun set, frames are logged
// instead of sent. Unknown modes yield an egress that drops everything.
func NewEgress(mode string, dryrun bool, t Transports, logger *zap.Logger) Egress {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dryrun {
		return &dryrunEgress{mode: mode, logger: logger}
	}
	switch transportMode(mode) {
	case transportHTTP:
		return &httpEgress{c: t.HTTP}
	case transportWS:
		return &wsEgress{ws: t.WS}
	case transportRedis:
		return &redisEgress{p: t.Redis}
	default:
		return nopEgress{}
	}
}

// httpEgress delegates to Client.
type httpEgress struct{ c *Client }

func (h *httpEgress) SendText(ctx context.Context, room, message string) error {
	if h == nil || h.c == nil {
		return errors.New("http egress not available")
	}
	return h.c.SendMessage(ctx, room, message)
}

func (h *httpEgress) SendImage(ctx context.Context, room, imageBase64 string) error {
	if h == nil || h.c == nil {
		return errors.New("http egress not available")
	}
	return h.c.SendImage(ctx, room, imageBase64)
}

// wsEgress writes ReplyRequest frames over WebSocket.
type wsEgress struct{ ws *WSPublisher }

func (w *wsEgress) SendText(ctx context.Context, room, message string) error {
	if w == nil || w.ws == nil {
		return errors.New("ws egress not available")
	}
	return w.ws.WriteJSON(ctx, &ReplyRequest{Type: replyText, Room: room, Data: message})
}

func (w *wsEgress) SendImage(ctx context.Context, room, imageBase64 string) error {
	if w == nil || w.ws == nil {
		return errors.New("ws egress not available")
	}
	return w.ws.WriteJSON(ctx, &ReplyRequest{Type: replyImage, Room: room, Data: imageBase64})
}

type redisEgress struct{ p *RedisPublisher }

func (r *redisEgress) SendText(ctx context.Context, room, message string) error {
	if r == nil || r.p == nil {
		return errors.New("redis egress not available")
	}
	return r.p.Publish(ctx, ReplyRequest{Type: replyText, Room: room, Data: message})
}

func (r *redisEgress) SendImage(ctx context.Context, room, imageBase64 string) error {
	if r == nil || r.p == nil {
		return errors.New("redis egress not available")
	}
	return r.p.Publish(ctx, ReplyRequest{Type: replyImage, Room: room, Data: imageBase64})
}

type dryrunEgress struct {
	mode   string
	logger *zap.Logger
}

func (d *dryrunEgress) SendText(ctx context.Context, room, message string) error {
	d.logger.Info("egress_dryrun", zap.String("mode", d.mode), zap.String("type", replyText), zap.String("room", room), zap.Int("bytes", len(message)))
	return nil
}

func (d *dryrunEgress) SendImage(ctx context.Context, room, imageBase64 string) error {
	d.logger.Info("egress_dryrun", zap.String("mode", d.mode), zap.String("type", replyImage), zap.String("room", room), zap.Int("bytes", len(imageBase64)))
	return nil
}

type nopEgress struct{}

func (nopEgress) SendText(context.Context, string, string) error { return nil }
func (nopEgress) SendImage(context.Context, string, string) error { return nil }
