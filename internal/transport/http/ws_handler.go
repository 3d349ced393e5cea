package http

import (
	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
)

// StreamWS serves the same signal feed over a WebSocket, for observer
// clients that cannot hold an SSE connection open. The stream is
// one-directional: the first text frame is the "connected" sentinel, every
// following frame is one signal.
// GET /classrooms/:id/ws
func (h *ClassroomHandlers) StreamWS(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Str("classroom_id", session.ID()).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	sub := session.Subscribe()
	defer session.Unsubscribe(sub)
	h.metrics.ObserverConnected()
	defer h.metrics.ObserverDisconnected()

	// Observers never send application data; CloseRead keeps control frames
	// flowing and cancels the context when the peer goes away.
	ctx := conn.CloseRead(c.Request.Context())

	if err := conn.Write(ctx, websocket.MessageText, []byte("connected")); err != nil {
		h.log.Warn().Err(err).Str("subscription_id", sub.ID).Msg("write ws sentinel")
		return
	}

	h.log.Info().
		Str("classroom_id", session.ID()).
		Str("subscription_id", sub.ID).
		Msg("observer ws opened")

	for {
		select {
		case msg, open := <-sub.C():
			if !open {
				conn.Close(websocket.StatusNormalClosure, "subscription closed")
				return
			}
			if err := conn.Write(ctx, websocket.MessageText, []byte(msg)); err != nil {
				h.log.Warn().Err(err).Str("subscription_id", sub.ID).Msg("write ws signal")
				return
			}
		case <-ctx.Done():
			h.log.Info().
				Str("classroom_id", session.ID()).
				Str("subscription_id", sub.ID).
				Msg("observer ws disconnected")
			conn.Close(websocket.StatusNormalClosure, "closing")
			return
		}
	}
}
