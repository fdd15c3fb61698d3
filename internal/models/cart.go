// internal/models/cart.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is one pending (product, quantity) selection for a signed-in
// member. Guest carts never hit the server; they arrive as inline line items
// at checkout.
//
// Rows are deleted for real, not soft-deleted: the unique (member, product)
// index must free up as soon as a row is removed or the cart is cleared.
type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ClerkID   string    `json:"clerk_id" gorm:"size:64;not null;index;uniqueIndex:ux_cart_items_clerk_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_clerk_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (CartItem) TableName() string { return "cart_items" }

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
