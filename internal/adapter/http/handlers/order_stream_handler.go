package handlers

import (
	"io"
	"time"

	response "handcrafted_gifts/internal/adapter/http/dto/response"
	"handcrafted_gifts/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const streamKeepAlive = 25 * time.Second

// OrderStreamHandler pushes the admin order list over server-sent events.
type OrderStreamHandler struct {
	feed      usecase.IOrderFeed
	keepAlive time.Duration
}

func NewOrderStreamHandler(feed usecase.IOrderFeed) *OrderStreamHandler {
	return &OrderStreamHandler{feed: feed, keepAlive: streamKeepAlive}
}

// StreamOrders godoc
// @Summary      Live admin order list
// @Description  Emits an "orders" event with the full list whenever it changes.
// @Tags         admin
// @Security     Bearer
// @Produce      text/event-stream
// @Router       /admin/orders/stream [get]
func (h *OrderStreamHandler) StreamOrders(c *gin.Context) {
	snapshots, unsubscribe := h.feed.Subscribe()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	log.Info().Str("remote", c.ClientIP()).Msg("[order][stream] subscriber connected")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case snap, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("orders", response.FromOrders(snap.Orders))
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
	log.Info().Str("remote", c.ClientIP()).Msg("[order][stream] subscriber gone")
}
