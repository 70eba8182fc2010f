package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/notify"
	"github.com/casafernando/comanda-backend/services"
)

func TestListAvailableTables(t *testing.T) {
	db := setupTestDB()
	limonada, _ := seedMenu(db)
	t1 := seedTable(db, "1")
	t2 := seedTable(db, "2")
	inactive := models.Table{TableNumber: "3", Capacity: 2, Active: false}
	db.Create(&inactive)

	orders := services.NewOrderService(db, notify.NewHub())
	tables := services.NewTableService(db)

	// Nothing open yet: both active tables are free, inactive one never shows
	available, err := tables.ListAvailableTables()
	assert.NoError(t, err)
	assert.Len(t, available, 2)
	assert.Equal(t, "1", available[0].TableNumber)
	assert.Equal(t, "2", available[1].TableNumber)

	// An open order occupies its table
	order, err := orders.CreateOrder(services.CreateOrderInput{
		Channel:  models.ChannelSelfService,
		TableID:  &t1.ID,
		Customer: anaPerez(),
		Items:    []services.OrderItemInput{{DishID: limonada.ID, Quantity: 1}},
	})
	assert.NoError(t, err)

	available, err = tables.ListAvailableTables()
	assert.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Equal(t, t2.ID, available[0].ID)

	// Still occupied through the whole open lifecycle
	for _, next := range []string{
		models.OrderStatusInPreparation,
		models.OrderStatusReady,
		models.OrderStatusDelivered,
	} {
		s := next
		_, err = orders.UpdateOrder(order.ID, services.UpdateOrderInput{Status: &s})
		assert.NoError(t, err)

		available, err = tables.ListAvailableTables()
		assert.NoError(t, err)
		assert.Len(t, available, 1)
	}

	// Paid frees the table
	paid := models.OrderStatusPaid
	_, err = orders.UpdateOrder(order.ID, services.UpdateOrderInput{Status: &paid})
	assert.NoError(t, err)

	available, err = tables.ListAvailableTables()
	assert.NoError(t, err)
	assert.Len(t, available, 2)
}

// Two near-simultaneous orders on the same table both succeed: availability
// is advisory and creation never takes a table lock.
func TestSameTableCanBeDoubleBooked(t *testing.T) {
	db := setupTestDB()
	limonada, _ := seedMenu(db)
	table := seedTable(db, "1")

	orders := services.NewOrderService(db, notify.NewHub())
	items := []services.OrderItemInput{{DishID: limonada.ID, Quantity: 1}}

	first, err := orders.CreateOrder(services.CreateOrderInput{
		Channel:  models.ChannelSelfService,
		TableID:  &table.ID,
		Customer: anaPerez(),
		Items:    items,
	})
	assert.NoError(t, err)

	second, err := orders.CreateOrder(services.CreateOrderInput{
		Channel:  models.ChannelSelfService,
		TableID:  &table.ID,
		Customer: anaPerez(),
		Items:    items,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, first.Number, second.Number)
	assert.Equal(t, *first.TableID, *second.TableID)
}
