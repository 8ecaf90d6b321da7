package entity

import (
	"time"
)

type CartItem struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	ProductID string    `json:"product_id" firestore:"productId"`
	Quantity  int       `json:"quantity" firestore:"quantity"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// CartItemID is deterministic so the store holds at most one row per (user, product).
func CartItemID(userID, productID string) string {
	return userID + "_" + productID
}

// CartLine is a cart row joined with its product.
type CartLine struct {
	Item    *CartItem `json:"item"`
	Product *Product  `json:"product"`
	Total   float64   `json:"line_total"`
}

type CartView struct {
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
	Count int        `json:"count"`
}
