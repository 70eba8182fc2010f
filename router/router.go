package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/controllers"
	"github.com/casafernando/comanda-backend/middlewares"
	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/notify"
)

func SetupRouter(db *gorm.DB, hub *notify.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db, hub)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db, hub)
	attentionCtrl := controllers.NewAttentionController(db, hub)
	billingCtrl := controllers.NewBillingController(db, hub)
	socketCtrl := controllers.NewStaffSocketController(hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- CUSTOMER (no auth) --
	r.GET("/menu", menuCtrl.GetPublicMenu)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.POST("/attention", attentionCtrl.RequestAttention)

	// Staff WebSocket: attention requests, order and table updates
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/staff", socketCtrl.StaffSocket)
	}

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	staff := r.Group("/staff")
	staff.Use(middlewares.AuthMiddleware())
	staff.Use(middlewares.RequireRoles(models.RoleMesonera, models.RolePOS, models.RoleKitchen))
	{
		staff.GET("/profile", userCtrl.GetProfile)
		staff.POST("/logout", userCtrl.Logout)

		// Table selector + availability for opening a comanda
		staff.GET("/tables", tableCtrl.GetActiveTables)
		staff.GET("/tables/available", tableCtrl.GetAvailableTables)

		// Comandas
		staff.POST("/orders", orderCtrl.CreateStaffOrder)
		staff.GET("/orders", orderCtrl.GetAllOrders)
		staff.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		staff.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)

		// Attention requests
		staff.GET("/attention", attentionCtrl.GetPendingRequests)
		staff.POST("/attention/:request_id/ack", attentionCtrl.AcknowledgeRequest)

		// Billing
		staff.GET("/billing/orders", billingCtrl.SearchOrders)
		staff.GET("/billing/orders/:order_id", billingCtrl.GetOrderDetail)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	admin.Use(middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.POST("/users", userCtrl.Register)

		admin.GET("/tables", tableCtrl.GetAllTables)
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		admin.GET("/categories", categoryCtrl.GetAllCategories)
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)

		admin.GET("/dishes", menuCtrl.GetAllDishes)
		admin.POST("/dishes", menuCtrl.CreateDish)
		admin.PATCH("/dishes/:dish_id", menuCtrl.UpdateDish)
		admin.DELETE("/dishes/:dish_id", menuCtrl.DeleteDish)
	}

	return r
}
