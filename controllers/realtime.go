package controllers

import (
	"strconv"

	"campushub_go/services/realtime"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
)

// RealtimeController serves the schedule event socket and its stats.
type RealtimeController struct {
	hub *realtime.Hub
}

func NewRealtimeController(hub *realtime.Hub) *RealtimeController {
	return &RealtimeController{hub: hub}
}

// WebSocketHandler upgrades the connection and subscribes it to the scope
// given in the query string. userID comes from the upgrade middleware.
func (rc *RealtimeController) WebSocketHandler() fiber.Handler {
	return fiberws.New(func(c *fiberws.Conn) {
		userID, _ := c.Locals("ws_user_id").(uint)
		scope, _ := c.Locals("ws_scope").(string)
		rc.hub.ServeFiberWS(c, userID, scope)
	})
}

// UpgradeMiddleware gates the upgrade and captures the subscription scope
// before the protocol switch, since fiber locals are the only way to pass
// request data into the websocket handler.
func (rc *RealtimeController) UpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !fiberws.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		semester, _ := strconv.Atoi(c.Query("semester"))
		departmentID, _ := strconv.ParseUint(c.Query("departmentId"), 10, 32)
		scope := realtime.ScopeKey(c.Query("academicYear"), semester, uint(departmentID), c.Query("classSection"))

		var userID uint
		if id, err := strconv.ParseUint(c.Query("userId"), 10, 32); err == nil {
			userID = uint(id)
		}

		c.Locals("ws_user_id", userID)
		c.Locals("ws_scope", scope)
		return c.Next()
	}
}

// GetStats reports connection counts per scope
func (rc *RealtimeController) GetStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"connected": rc.hub.GetClientCount(),
		"scopes":    rc.hub.GetScopeCounts(),
	})
}
