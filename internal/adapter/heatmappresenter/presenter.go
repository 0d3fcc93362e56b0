package heatmappresenter

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/park285/presence-heatmap/pkg/heatmapdto"
)

type SendFunc func(ctx context.Context, room, payload string) error

// Presenter delivers the caption and board image without coupling to a transport.
type Presenter struct {
	sendMessage SendFunc
	sendImage   SendFunc
}

func NewPresenter(sendMessage, sendImage SendFunc) *Presenter {
	return &Presenter{
		sendMessage: sendMessage,
		sendImage:   sendImage,
	}
}

// Heatmap sends message first, then the PNG as base64 when the snapshot carries one.
func (p *Presenter) Heatmap(ctx context.Context, room, message string, snap *heatmapdto.Snapshot) error {
	if p == nil {
		return nil
	}

	if text := strings.TrimSpace(message); text != "" && p.sendMessage != nil {
		if err := p.sendMessage(ctx, room, message); err != nil {
			return err
		}
	}

	if snap != nil && len(snap.BoardImage) > 0 && p.sendImage != nil {
		encoded := base64.StdEncoding.EncodeToString(snap.BoardImage)
		if err := p.sendImage(ctx, room, encoded); err != nil {
			return err
		}
	}

	return nil
}
