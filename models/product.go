package models

import "time"

// Product is a catalog entry that breakage/exchange items reference.
type Product struct {
	ProductID int        `gorm:"primaryKey;column:product_id" json:"product_id"`
	Name      string     `gorm:"column:name" json:"name"`
	Code      string     `gorm:"column:code;unique" json:"code"`
	Capacity  string     `gorm:"column:capacity" json:"capacity"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
