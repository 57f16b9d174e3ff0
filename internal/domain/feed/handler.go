package feed

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadcapture/internal/domain/auth"
	"leadcapture/internal/pkg/response"
)

// AccessReader resolves the page scope snapshot for a connecting sub-admin.
type AccessReader interface {
	ActivePageIDs(ctx context.Context, subAdminID int64) ([]int64, error)
}

// Handler upgrades authenticated requests into live lead feed subscriptions.
//
// Endpoint: GET /api/leads/feed?token=JWT_TOKEN
//
// Browsers cannot set headers on WebSocket handshakes, so the auth
// middleware also accepts the token as a query parameter.
type Handler struct {
	hub      *Hub
	accesses AccessReader
}

func NewHandler(hub *Hub, accesses AccessReader) *Handler {
	return &Handler{hub: hub, accesses: accesses}
}

func (h *Handler) Subscribe(c *gin.Context) {
	userID := c.GetInt64("user_id")
	role := auth.Role(c.GetString("role"))

	var pageIDs []int64
	if role != auth.RoleSuperAdmin {
		ids, err := h.accesses.ActivePageIDs(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to resolve feed scope")
			return
		}
		pageIDs = ids
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed user_id=%d error=%v", userID, err)
		return
	}

	h.hub.ServeWS(conn, userID, role, pageIDs)
}
