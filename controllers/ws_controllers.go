package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/notify"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type StaffSocketController struct {
	hub *notify.Hub
}

func NewStaffSocketController(hub *notify.Hub) *StaffSocketController {
	return &StaffSocketController{hub: hub}
}

// StaffSocket -> long-lived WebSocket for staff devices. The session
// receives attention requests and order/table updates; a "ping" text frame
// gets a pong reply so the client can keep the connection alive. The reply
// goes through the hub so it never interleaves with a broadcast write on
// the same socket. Any read failure tears the connection down and
// unregisters it.
func (sc *StaffSocketController) StaffSocket(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	if !models.ValidRole(role) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	sc.hub.Register(ws, role)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			break
		}
		if string(msg) == "ping" {
			if err := sc.hub.SendText(ws, []byte(`{"type":"pong"}`)); err != nil {
				break
			}
		}
	}

	sc.hub.Unregister(ws)
}
