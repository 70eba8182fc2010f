package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/notify"
	"github.com/casafernando/comanda-backend/services"
	"github.com/casafernando/comanda-backend/utils"
)

type OrderController struct {
	DB     *gorm.DB
	orders *services.OrderService
}

func NewOrderController(db *gorm.DB, hub *notify.Hub) *OrderController {
	return &OrderController{
		DB:     db,
		orders: services.NewOrderService(db, hub),
	}
}

// CreateOrder -> public self-service endpoint. The channel must be
// self_service; staff channels go through CreateStaffOrder.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body services.CreateOrderInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Channel != models.ChannelSelfService {
		utils.RespondAppError(c, utils.ValidationError("channel must be %s", models.ChannelSelfService))
		return
	}
	body.StaffID = nil

	order, err := oc.orders.CreateOrder(body)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// CreateStaffOrder -> floor staff and POS create orders on behalf of a
// customer. The creating user is recorded on the order.
func (oc *OrderController) CreateStaffOrder(c *gin.Context) {
	var body services.CreateOrderInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Channel != models.ChannelFloorStaff && body.Channel != models.ChannelPOS {
		utils.RespondAppError(c, utils.ValidationError("channel must be %s or %s", models.ChannelFloorStaff, models.ChannelPOS))
		return
	}

	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(uint); ok {
			body.StaffID = &id
		}
	}

	order, err := oc.orders.CreateOrder(body)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> staff listing, newest first, optional ?status= filter.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.orders.ListOrders(c.Query("status"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order with items, customer and table.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondAppError(c, utils.ValidationError("invalid order id"))
		return
	}

	order, err := oc.orders.GetOrder(uint(id))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrder -> partial update of status and/or payment method.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondAppError(c, utils.ValidationError("invalid order id"))
		return
	}

	var body services.UpdateOrderInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.orders.UpdateOrder(uint(id), body)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}
