package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/notify"
	"github.com/casafernando/comanda-backend/services"
	"github.com/casafernando/comanda-backend/utils"
)

type BillingController struct {
	DB      *gorm.DB
	billing *services.BillingService
	orders  *services.OrderService
}

func NewBillingController(db *gorm.DB, hub *notify.Hub) *BillingController {
	return &BillingController{
		DB:      db,
		billing: services.NewBillingService(db),
		orders:  services.NewOrderService(db, hub),
	}
}

// SearchOrders -> billing search with optional filters:
// ?name=&id_document=&date_from=2026-01-01&date_to=2026-01-31
func (bc *BillingController) SearchOrders(c *gin.Context) {
	in := services.SearchOrdersInput{
		Name:       c.Query("name"),
		IDDocument: c.Query("id_document"),
	}

	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondAppError(c, utils.ValidationError("date_from must be YYYY-MM-DD"))
			return
		}
		in.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondAppError(c, utils.ValidationError("date_to must be YYYY-MM-DD"))
			return
		}
		in.DateTo = &t
	}

	summaries, err := bc.billing.SearchOrders(in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Billing search results", summaries)
}

// GetOrderDetail -> full order for the billing detail view.
func (bc *BillingController) GetOrderDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondAppError(c, utils.ValidationError("invalid order id"))
		return
	}

	order, err := bc.orders.GetOrder(uint(id))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}
