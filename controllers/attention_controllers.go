package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/notify"
	"github.com/casafernando/comanda-backend/services"
	"github.com/casafernando/comanda-backend/utils"
)

type AttentionController struct {
	DB        *gorm.DB
	attention *services.AttentionService
}

func NewAttentionController(db *gorm.DB, hub *notify.Hub) *AttentionController {
	return &AttentionController{
		DB:        db,
		attention: services.NewAttentionService(db, hub),
	}
}

// RequestAttention -> public endpoint behind the "call the waiter" button.
// Persists the request and pushes it to every connected staff session.
func (ac *AttentionController) RequestAttention(c *gin.Context) {
	var req struct {
		TableID *uint  `json:"table_id"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	attention, err := ac.attention.RequestAttention(req.TableID, req.Message)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Attention request sent", attention)
}

// GetPendingRequests -> unhandled requests for the staff screen, most
// recent first.
func (ac *AttentionController) GetPendingRequests(c *gin.Context) {
	reqs, err := ac.attention.ListPending()
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending attention requests", reqs)
}

// AcknowledgeRequest -> staff marks a request handled. Idempotent.
func (ac *AttentionController) AcknowledgeRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		utils.RespondAppError(c, utils.ValidationError("invalid request id"))
		return
	}

	if err := ac.attention.Acknowledge(uint(id)); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Attention request acknowledged", gin.H{"request_id": id})
}
