package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/domain"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate root to a relational table. The
// shipping address is flattened into columns; line items live in their
// own table keyed back to the order.
type orderRecord struct {
	ID        string            `gorm:"primaryKey;column:id;type:varchar(64)"`
	BuyerID   string            `gorm:"column:buyer_id;type:varchar(128);index"`
	Street    string            `gorm:"column:ship_street"`
	City      string            `gorm:"column:ship_city"`
	State     string            `gorm:"column:ship_state"`
	Country   string            `gorm:"column:ship_country"`
	ZipCode   string            `gorm:"column:ship_zip_code"`
	Items     []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;index"`
	UpdatedAt time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	OrderID     string          `gorm:"column:order_id;type:varchar(64);index"`
	ProductID   string          `gorm:"column:product_id;type:varchar(64)"`
	ProductName string          `gorm:"column:product_name"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(18,2)"`
	Units       int             `gorm:"column:units"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Save inserts or updates an order with its line items.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"buyer_id":      record.BuyerID,
				"ship_street":   record.Street,
				"ship_city":     record.City,
				"ship_state":    record.State,
				"ship_country":  record.Country,
				"ship_zip_code": record.ZipCode,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order with its line items.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).Preload("Items").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all orders, newest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		ID:        order.ID,
		BuyerID:   order.BuyerID,
		Street:    order.ShipTo.Street,
		City:      order.ShipTo.City,
		State:     order.ShipTo.State,
		Country:   order.ShipTo.Country,
		ZipCode:   order.ShipTo.ZipCode,
		CreatedAt: order.CreatedAt,
	}
	rec.Items = make([]orderItemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		rec.Items = append(rec.Items, orderItemRecord{
			ID:          item.ID,
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Units:       item.Units,
		})
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:      r.ID,
		BuyerID: r.BuyerID,
		ShipTo: domain.Address{
			Street:  r.Street,
			City:    r.City,
			State:   r.State,
			Country: r.Country,
			ZipCode: r.ZipCode,
		},
		CreatedAt: r.CreatedAt,
	}
	order.Items = make([]domain.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Units:       item.Units,
		})
	}
	return order
}
