// internal/models/order.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShippingAddress is stored as a JSON column; field names are part of the
// wire contract shared with the storefront.
type ShippingAddress struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	ZipCode       string `json:"zipCode"`
	Address       string `json:"address"`
	DetailAddress string `json:"detailAddress,omitempty"`
}

func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Order struct {
	BaseModel
	ClerkID         *string         `json:"clerk_id" gorm:"size:64;index"`
	TotalAmount     int64           `json:"total_amount" gorm:"not null"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"type:jsonb;not null"`
	OrderNote       *string         `json:"order_note,omitempty" gorm:"type:text"`
	GuestEmail      *string         `json:"guest_email,omitempty" gorm:"size:255;index"`
	GuestPhone      *string         `json:"guest_phone,omitempty" gorm:"size:32;index"`
	TrackingNumber  *string         `json:"tracking_number,omitempty" gorm:"size:64"`
	ShippingCarrier *string         `json:"shipping_carrier,omitempty" gorm:"size:64"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots product name and unit price at creation time; later
// product edits must not change them.
type OrderItem struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	ProductName string    `json:"product_name" gorm:"size:255;not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Price       int64     `json:"price" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (OrderItem) TableName() string { return "order_items" }

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
