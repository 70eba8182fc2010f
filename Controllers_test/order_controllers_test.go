package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/notify"
	"github.com/casafernando/comanda-backend/router"
	"github.com/casafernando/comanda-backend/utils"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Customer{},
		&models.MenuCategory{},
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
		&models.AttentionRequest{},
		&models.OrderCounter{},
	)
	if err != nil {
		panic(err)
	}

	// Seed menu and a table
	category := models.MenuCategory{Name: "Bebidas", Active: true}
	db.Create(&category)
	db.Create(&models.Dish{CategoryID: category.ID, Name: "Limonada", Price: 3.00, Available: true})
	db.Create(&models.Table{TableNumber: "5", Capacity: 4, Active: true})
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	return router.SetupRouter(db, notify.NewHub())
}

func doJSON(r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func orderPayload(channel string, tableID interface{}) map[string]interface{} {
	return map[string]interface{}{
		"channel":  channel,
		"table_id": tableID,
		"customer": map[string]interface{}{
			"id_document": "V-123",
			"first_name":  "Ana",
			"last_name":   "Pérez",
			"phone":       "0414-1111111",
		},
		"items": []map[string]interface{}{
			{"dish_id": 1, "quantity": 2},
		},
	}
}

func TestPublicCreateOrder(t *testing.T) {
	db := setupTestDB()
	r := setupRouter(db)

	w := doJSON(r, "POST", "/orders", "", orderPayload(models.ChannelSelfService, nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Order created", resp["message"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "CMD-000001", data["number"])
	assert.Equal(t, models.OrderStatusPending, data["status"])
	assert.Equal(t, 6.72, data["total"].(float64))
}

func TestPublicEndpointRejectsStaffChannels(t *testing.T) {
	db := setupTestDB()
	r := setupRouter(db)

	w := doJSON(r, "POST", "/orders", "", orderPayload(models.ChannelFloorStaff, 1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStaffOrderFlow(t *testing.T) {
	db := setupTestDB()
	r := setupRouter(db)

	token, err := utils.GenerateToken(1, models.RoleMesonera)
	assert.NoError(t, err)

	// Staff route without a token is rejected
	w := doJSON(r, "POST", "/staff/orders", "", orderPayload(models.ChannelFloorStaff, 1))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// floor_staff order without a table fails validation
	w = doJSON(r, "POST", "/staff/orders", token, orderPayload(models.ChannelFloorStaff, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// With a table it goes through
	w = doJSON(r, "POST", "/staff/orders", token, orderPayload(models.ChannelFloorStaff, 1))
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	orderID := int(data["id"].(float64))

	// The occupied table disappears from availability
	w = doJSON(r, "GET", "/staff/tables/available", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if resp["data"] != nil {
		assert.Len(t, resp["data"].([]interface{}), 0)
	}

	// Move the order forward, then settle it
	url := fmt.Sprintf("/staff/orders/%d", orderID)
	w = doJSON(r, "PATCH", url, token, map[string]interface{}{"status": models.OrderStatusInPreparation})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "PATCH", url, token, map[string]interface{}{
		"status":         models.OrderStatusPaid,
		"payment_method": models.PaymentCash,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Settled order frees its table
	w = doJSON(r, "GET", "/staff/tables/available", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"].([]interface{}), 1)

	// Terminal state rejects further transitions
	w = doJSON(r, "PATCH", url, token, map[string]interface{}{"status": models.OrderStatusPending})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderDetailNotFound(t *testing.T) {
	db := setupTestDB()
	r := setupRouter(db)

	token, err := utils.GenerateToken(1, models.RolePOS)
	assert.NoError(t, err)

	w := doJSON(r, "GET", "/staff/orders/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
