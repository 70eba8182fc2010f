package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/notify"
	"github.com/casafernando/comanda-backend/utils"
)

// TaxRate is the IVA applied uniformly to every order subtotal.
const TaxRate = 0.12

// OrderNumberFormat produces CMD-000042 style comanda numbers.
const OrderNumberFormat = "CMD-%06d"

// OrderService owns the comanda lifecycle: assembly, numbering and status
// transitions.
type OrderService struct {
	db  *gorm.DB
	hub *notify.Hub
}

func NewOrderService(db *gorm.DB, hub *notify.Hub) *OrderService {
	return &OrderService{db: db, hub: hub}
}

type CustomerInput struct {
	IDDocument string `json:"id_document" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Address    string `json:"address"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email"`
}

type OrderItemInput struct {
	DishID   uint   `json:"dish_id" binding:"required"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

type CreateOrderInput struct {
	Channel       string           `json:"channel" binding:"required"`
	TableID       *uint            `json:"table_id"`
	Customer      CustomerInput    `json:"customer" binding:"required"`
	Items         []OrderItemInput `json:"items" binding:"required"`
	PaymentMethod *string          `json:"payment_method"`
	Notes         string           `json:"notes"`

	// StaffID is set by the delivery layer from the authenticated caller,
	// never from the request body. Nil for self-service orders.
	StaffID *uint `json:"-"`
}

// CreateOrder validates and persists a new comanda. Validation fails fast
// with no state change; the customer upsert, number allocation and the
// order-plus-items write happen in one transaction so a reader never sees a
// half-written order.
func (s *OrderService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	if !models.ValidChannel(in.Channel) {
		return nil, utils.ValidationError("unknown origin channel %q", in.Channel)
	}
	if len(in.Items) == 0 {
		return nil, utils.ValidationError("order must contain at least one item")
	}

	// Table is mandatory for staff-side channels; self-service may omit it
	// (takeout / counter pickup).
	if in.TableID == nil && in.Channel != models.ChannelSelfService {
		return nil, utils.ValidationError("a table is required for %s orders", in.Channel)
	}

	if in.TableID != nil {
		var table models.Table
		if err := s.db.Where("id = ? AND active = ?", *in.TableID, true).First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, utils.ValidationError("table %d not found or inactive", *in.TableID)
			}
			return nil, utils.StoreError("looking up table", err)
		}
	}

	if in.PaymentMethod != nil && !models.ValidPaymentMethod(*in.PaymentMethod) {
		return nil, utils.ValidationError("unknown payment method %q", *in.PaymentMethod)
	}

	// Resolve every dish up front so a bad line aborts before anything is
	// written. Prices and names are snapshotted from this lookup.
	items := make([]models.OrderItem, 0, len(in.Items))
	var subtotal float64
	for _, line := range in.Items {
		qty := line.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 1 {
			return nil, utils.ValidationError("quantity for dish %d must be at least 1", line.DishID)
		}

		var dish models.Dish
		if err := s.db.First(&dish, line.DishID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, utils.ValidationError("dish %d not found", line.DishID)
			}
			return nil, utils.StoreError("looking up dish", err)
		}

		lineSubtotal := utils.Round2(dish.Price * float64(qty))
		subtotal += lineSubtotal
		items = append(items, models.OrderItem{
			DishID:    dish.ID,
			DishName:  dish.Name,
			Quantity:  qty,
			UnitPrice: dish.Price,
			Subtotal:  lineSubtotal,
			Notes:     line.Notes,
		})
	}

	subtotal = utils.Round2(subtotal)
	tax := utils.Round2(subtotal * TaxRate)
	total := utils.Round2(subtotal + tax)

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := upsertCustomer(tx, in.Customer)
		if err != nil {
			return err
		}

		number, err := nextOrderNumber(tx)
		if err != nil {
			return err
		}

		order = models.Order{
			Number:        number,
			TableID:       in.TableID,
			CustomerID:    customer.ID,
			StaffID:       in.StaffID,
			Status:        models.OrderStatusPending,
			PaymentMethod: in.PaymentMethod,
			Channel:       in.Channel,
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         total,
			Notes:         in.Notes,
			Items:         items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return utils.StoreError("creating order", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Items").Preload("Customer").Preload("Table").First(&order, order.ID).Error; err != nil {
		return nil, utils.StoreError("reloading order", err)
	}

	utils.InfoLogger.Printf("Order %s created (channel=%s, total=%.2f)", order.Number, order.Channel, order.Total)
	s.hub.BroadcastOrderUpdate(order)
	return &order, nil
}

// upsertCustomer finds or creates the customer by id document. Known
// customers get their particulars overwritten with the incoming values,
// last write wins. The unique index on id_document makes concurrent
// first-time creates collapse into one row instead of racing.
func upsertCustomer(tx *gorm.DB, in CustomerInput) (*models.Customer, error) {
	customer := models.Customer{
		IDDocument: in.IDDocument,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Address:    in.Address,
		Phone:      in.Phone,
		Email:      in.Email,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id_document"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "address", "phone", "email", "updated_at"}),
	}).Create(&customer).Error
	if err != nil {
		return nil, utils.StoreError("upserting customer", err)
	}

	// Reload: on the conflict path the generated ID is not populated.
	if err := tx.Where("id_document = ?", in.IDDocument).First(&customer).Error; err != nil {
		return nil, utils.StoreError("loading customer", err)
	}
	return &customer, nil
}

// nextOrderNumber increments the counter row under a row lock so no two
// orders are ever assigned the same number. A creation that aborts after
// this point leaves a gap in the sequence, which is tolerated. SQLite has
// no FOR UPDATE and serializes writers on its own, so the clause is only
// applied on mysql.
func nextOrderNumber(tx *gorm.DB) (string, error) {
	q := tx
	if tx.Dialector.Name() == "mysql" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var counter models.OrderCounter
	err := q.First(&counter, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = models.OrderCounter{ID: 1, Value: 0}
		if err := tx.Create(&counter).Error; err != nil {
			return "", utils.StoreError("creating order counter", err)
		}
	} else if err != nil {
		return "", utils.StoreError("locking order counter", err)
	}

	counter.Value++
	if err := tx.Save(&counter).Error; err != nil {
		return "", utils.StoreError("advancing order counter", err)
	}
	return fmt.Sprintf(OrderNumberFormat, counter.Value), nil
}

// statusRank orders the forward-only lifecycle. CANCELLED sits outside the
// ranking and is handled separately.
var statusRank = map[string]int{
	models.OrderStatusPending:       0,
	models.OrderStatusInPreparation: 1,
	models.OrderStatusReady:         2,
	models.OrderStatusDelivered:     3,
	models.OrderStatusPaid:          4,
}

type UpdateOrderInput struct {
	Status        *string `json:"status"`
	PaymentMethod *string `json:"payment_method"`
}

// UpdateOrder applies a partial update to an order's status and payment
// method. Unset fields are untouched. Transitions out of a terminal state
// are rejected, and the status may only move forward through the lifecycle;
// CANCELLED is reachable from any non-terminal state. Load, validation and
// save run in one transaction with the row locked on mysql, so two
// concurrent updates cannot both pass the terminal check.
func (s *OrderService) UpdateOrder(id uint, in UpdateOrderInput) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "mysql" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("order %d not found", id)
			}
			return utils.StoreError("loading order", err)
		}

		if in.Status != nil {
			newStatus := *in.Status
			if !models.ValidStatus(newStatus) {
				return utils.ValidationError("unknown order status %q", newStatus)
			}
			if newStatus != order.Status {
				if models.Terminal(order.Status) {
					return utils.ValidationError("order %s is %s and can no longer change status", order.Number, order.Status)
				}
				if newStatus != models.OrderStatusCancelled && statusRank[newStatus] < statusRank[order.Status] {
					return utils.ValidationError("order %s cannot move back from %s to %s", order.Number, order.Status, newStatus)
				}
				order.Status = newStatus
			}
		}

		if in.PaymentMethod != nil {
			if !models.ValidPaymentMethod(*in.PaymentMethod) {
				return utils.ValidationError("unknown payment method %q", *in.PaymentMethod)
			}
			order.PaymentMethod = in.PaymentMethod
		}

		if err := tx.Save(&order).Error; err != nil {
			return utils.StoreError("saving order", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Items").Preload("Customer").Preload("Table").First(&order, order.ID).Error; err != nil {
		return nil, utils.StoreError("reloading order", err)
	}

	s.hub.BroadcastOrderUpdate(order)
	return &order, nil
}

// GetOrder -> full order detail with customer, table and items.
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").Preload("Customer").Preload("Table").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("order %d not found", id)
		}
		return nil, utils.StoreError("loading order", err)
	}
	return &order, nil
}

// ListOrders -> orders newest first, optionally filtered by status. An
// unknown status filter is ignored rather than failing the listing.
func (s *OrderService) ListOrders(status string) ([]models.Order, error) {
	q := s.db.Preload("Items").Preload("Customer").Preload("Table").Order("created_at DESC")
	if status != "" && models.ValidStatus(status) {
		q = q.Where("status = ?", status)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, utils.StoreError("listing orders", err)
	}
	return orders, nil
}
