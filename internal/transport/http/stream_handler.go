package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Stream subscribes the caller to a classroom's signal feed over
// server-sent events, one "data:" frame per signal. The subscription lives
// until the client disconnects or the fan-out prunes it as dead.
// GET /classrooms/:id/stream
func (h *ClassroomHandlers) Stream(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	sub := session.Subscribe()
	defer session.Unsubscribe(sub)
	h.metrics.ObserverConnected()
	defer h.metrics.ObserverDisconnected()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Sentinel frame so clients know the stream is live before any signal.
	fmt.Fprint(c.Writer, "data: connected\n\n")
	c.Writer.Flush()

	h.log.Info().
		Str("classroom_id", session.ID()).
		Str("subscription_id", sub.ID).
		Msg("observer stream opened")

	ctx := c.Request.Context()
	for {
		select {
		case msg, open := <-sub.C():
			if !open {
				// Pruned as a dead subscriber.
				h.log.Warn().
					Str("classroom_id", session.ID()).
					Str("subscription_id", sub.ID).
					Msg("observer stream dropped by fan-out")
				return
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", msg)
			c.Writer.Flush()
		case <-ctx.Done():
			h.log.Info().
				Str("classroom_id", session.ID()).
				Str("subscription_id", sub.ID).
				Msg("observer disconnected")
			return
		}
	}
}
