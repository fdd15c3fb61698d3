// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name          string         `json:"name" gorm:"size:255;not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Category      string         `json:"category" gorm:"size:100;index"`
	Price         int64          `json:"price" gorm:"not null"`
	StockQuantity int            `json:"stock_quantity" gorm:"not null;default:0"`
	IsActive      bool           `json:"is_active" gorm:"default:true;index"`
	Images        pq.StringArray `json:"images" gorm:"type:text[]"`
}

func (Product) TableName() string { return "products" }
