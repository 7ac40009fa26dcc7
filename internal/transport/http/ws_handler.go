package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/doodle-lobby/internal/config"
	"github.com/vovakirdan/doodle-lobby/internal/core"
	"github.com/vovakirdan/doodle-lobby/internal/proto"
	"github.com/vovakirdan/doodle-lobby/internal/utils"
)

// WSHandler upgrades HTTP connections and bridges them to core.Client.
type WSHandler struct {
	hub    Hub
	log    *zerolog.Logger
	accept *websocket.AcceptOptions

	maxMessageBytes int64
	eventBuffer     int
	rate            float64
	burst           int
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub Hub, cfg *config.Config, logger *zerolog.Logger) stdhttp.Handler {
	accept := &websocket.AcceptOptions{}
	if hosts := originHosts(cfg.AllowedOrigins); hosts == nil {
		accept.InsecureSkipVerify = true
	} else {
		accept.OriginPatterns = hosts
	}
	return &WSHandler{
		hub:             hub,
		log:             logger,
		accept:          accept,
		maxMessageBytes: cfg.MaxMessageBytes,
		eventBuffer:     cfg.EventBuffer,
		rate:            cfg.RateLimit,
		burst:           cfg.RateBurst,
	}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, h.accept)
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")
	if h.maxMessageBytes > 0 {
		conn.SetReadLimit(h.maxMessageBytes)
	}

	client := core.NewClient(utils.NewID(), h.eventBuffer)
	h.hub.RegisterClient(client)
	defer h.hub.UnregisterClient(client)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("conn_id", client.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// readLoop decodes frames into commands. Bad frames are answered with an
// error event and the connection stays open.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	limiter := newRateLimiter(h.rate, h.burst)

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		if !limiter.allow() {
			if err := h.writeError(ctx, conn, &core.CoreError{
				Code:    core.ErrCodeRateLimited,
				Message: "too many messages",
			}); err != nil {
				return err
			}
			continue
		}

		var inbound proto.Inbound
		if typ != websocket.MessageText || json.Unmarshal(data, &inbound) != nil {
			h.log.Debug().Str("conn_id", client.ID).Msg("malformed ws frame")
			if err := h.writeError(ctx, conn, badRequest("malformed message")); err != nil {
				return err
			}
			continue
		}

		cmd, protoErr := inboundToCommand(inbound)
		if protoErr != nil {
			if err := h.writeError(ctx, conn, protoErr); err != nil {
				return err
			}
			continue
		}

		select {
		case client.Commands <- cmd:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("conn_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *WSHandler) writeError(ctx context.Context, conn *websocket.Conn, coreErr *core.CoreError) error {
	return wsjson.Write(ctx, conn, errorOutbound(coreErr))
}
