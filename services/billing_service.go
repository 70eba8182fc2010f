package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/utils"
)

// BillingService is the read-only search surface for the billing module.
type BillingService struct {
	db *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{db: db}
}

// OrderSummary is a billing row: one order with the customer particulars
// flattened in.
type OrderSummary struct {
	ID            uint      `json:"id"`
	Number        string    `json:"number"`
	TableNumber   string    `json:"table_number,omitempty"`
	CustomerName  string    `json:"customer_name"`
	IDDocument    string    `json:"id_document"`
	Phone         string    `json:"phone"`
	Total         float64   `json:"total"`
	Status        string    `json:"status"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type SearchOrdersInput struct {
	Name       string
	IDDocument string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// SearchOrders filters historical orders for billing: case-insensitive
// substring match on the customer name and id document, inclusive bounds on
// the creation date, newest first.
func (s *BillingService) SearchOrders(in SearchOrdersInput) ([]OrderSummary, error) {
	q := s.db.Model(&models.Order{}).
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Preload("Customer").Preload("Table").
		Order("orders.created_at DESC")

	if in.Name != "" {
		pattern := "%" + in.Name + "%"
		q = q.Where("LOWER(customers.first_name) LIKE LOWER(?) OR LOWER(customers.last_name) LIKE LOWER(?)", pattern, pattern)
	}
	if in.IDDocument != "" {
		q = q.Where("customers.id_document LIKE ?", "%"+in.IDDocument+"%")
	}
	if in.DateFrom != nil {
		q = q.Where("orders.created_at >= ?", *in.DateFrom)
	}
	if in.DateTo != nil {
		// Inclusive upper bound: anything before the end of that day
		q = q.Where("orders.created_at < ?", in.DateTo.AddDate(0, 0, 1))
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, utils.StoreError("searching orders", err)
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		row := OrderSummary{
			ID:            o.ID,
			Number:        o.Number,
			CustomerName:  o.Customer.FullName(),
			IDDocument:    o.Customer.IDDocument,
			Phone:         o.Customer.Phone,
			Total:         o.Total,
			Status:        o.Status,
			PaymentMethod: o.PaymentMethod,
			CreatedAt:     o.CreatedAt,
		}
		if o.Table != nil {
			row.TableNumber = o.Table.TableNumber
		}
		summaries = append(summaries, row)
	}
	return summaries, nil
}
