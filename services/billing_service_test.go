package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/notify"
	"github.com/casafernando/comanda-backend/services"
)

func TestSearchOrders(t *testing.T) {
	db := setupTestDB()
	limonada, flan := seedMenu(db)
	table := seedTable(db, "4")

	orders := services.NewOrderService(db, notify.NewHub())
	billing := services.NewBillingService(db)

	_, err := orders.CreateOrder(services.CreateOrderInput{
		Channel:  models.ChannelSelfService,
		TableID:  &table.ID,
		Customer: anaPerez(),
		Items:    []services.OrderItemInput{{DishID: limonada.ID, Quantity: 2}},
	})
	assert.NoError(t, err)

	_, err = orders.CreateOrder(services.CreateOrderInput{
		Channel: models.ChannelSelfService,
		Customer: services.CustomerInput{
			IDDocument: "E-555",
			FirstName:  "Bruno",
			LastName:   "García",
			Phone:      "0212-5555555",
		},
		Items: []services.OrderItemInput{{DishID: flan.ID, Quantity: 1}},
	})
	assert.NoError(t, err)

	// No filters: everything, newest first
	all, err := billing.SearchOrders(services.SearchOrdersInput{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "CMD-000002", all[0].Number)
	assert.Equal(t, "CMD-000001", all[1].Number)

	// Case-insensitive substring on the customer name
	rows, err := billing.SearchOrders(services.SearchOrdersInput{Name: "ana"})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Ana Pérez", rows[0].CustomerName)
	assert.Equal(t, "4", rows[0].TableNumber)

	// Last-name match too
	rows, err = billing.SearchOrders(services.SearchOrdersInput{Name: "garc"})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "E-555", rows[0].IDDocument)

	// Substring on the id document
	rows, err = billing.SearchOrders(services.SearchOrdersInput{IDDocument: "V-1"})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "V-123", rows[0].IDDocument)

	// No match
	rows, err = billing.SearchOrders(services.SearchOrdersInput{Name: "zzz"})
	assert.NoError(t, err)
	assert.Len(t, rows, 0)
}

func TestSearchOrdersDateBoundsAreInclusive(t *testing.T) {
	db := setupTestDB()
	limonada, _ := seedMenu(db)

	orders := services.NewOrderService(db, notify.NewHub())
	billing := services.NewBillingService(db)

	order, err := orders.CreateOrder(services.CreateOrderInput{
		Channel:  models.ChannelSelfService,
		Customer: anaPerez(),
		Items:    []services.OrderItemInput{{DishID: limonada.ID, Quantity: 1}},
	})
	assert.NoError(t, err)

	today := time.Date(
		order.CreatedAt.Year(), order.CreatedAt.Month(), order.CreatedAt.Day(),
		0, 0, 0, 0, order.CreatedAt.Location(),
	)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	// The creation day itself is inside both bounds
	rows, err := billing.SearchOrders(services.SearchOrdersInput{DateFrom: &today, DateTo: &today})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = billing.SearchOrders(services.SearchOrdersInput{DateTo: &yesterday})
	assert.NoError(t, err)
	assert.Len(t, rows, 0)

	rows, err = billing.SearchOrders(services.SearchOrdersInput{DateFrom: &tomorrow})
	assert.NoError(t, err)
	assert.Len(t, rows, 0)
}
