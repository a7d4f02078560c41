package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	BuyerID   string    `gorm:"column:buyer_id;type:varchar(128);index"`
	Street    string    `gorm:"column:ship_street"`
	City      string    `gorm:"column:ship_city"`
	State     string    `gorm:"column:ship_state"`
	Country   string    `gorm:"column:ship_country"`
	ZipCode   string    `gorm:"column:ship_zip_code"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
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
