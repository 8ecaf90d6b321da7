package entity

import (
	"time"
)

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

func (s ProductStatus) Valid() bool {
	return s == ProductActive || s == ProductInactive
}

type Product struct {
	ID          string        `json:"id" firestore:"id"`
	ShopID      string        `json:"shop_id" firestore:"shopId"`
	SellerID    string        `json:"seller_id" firestore:"sellerId"`
	Name        string        `json:"name" firestore:"name"`
	Description string        `json:"description" firestore:"description"`
	Price       float64       `json:"price" firestore:"price"`
	Category    string        `json:"category" firestore:"category"`
	ImageURL    string        `json:"image_url" firestore:"imageUrl"`
	Stock       int           `json:"stock" firestore:"stock"`
	Status      ProductStatus `json:"status" firestore:"status"`
	CreatedAt   time.Time     `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time     `json:"updated_at" firestore:"updatedAt"`
}
