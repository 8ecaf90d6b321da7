package entity

import (
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Purchased reports whether the order counts as a purchase for ratings.
func (s OrderStatus) Purchased() bool {
	return s == OrderPaid || s == OrderCompleted
}

type Order struct {
	ID          string      `json:"id" firestore:"id"`
	CheckoutID  string      `json:"checkout_id" firestore:"checkoutId"`
	UserID      string      `json:"user_id" firestore:"userId"`
	ShopID      string      `json:"shop_id" firestore:"shopId"`
	TotalAmount float64     `json:"total_amount" firestore:"totalAmount"`
	Status      OrderStatus `json:"status" firestore:"status"`
	CreatedAt   time.Time   `json:"created_at" firestore:"createdAt"`
}

type OrderItem struct {
	ID          string    `json:"id" firestore:"id"`
	OrderID     string    `json:"order_id" firestore:"orderId"`
	UserID      string    `json:"user_id" firestore:"userId"`
	ProductID   string    `json:"product_id" firestore:"productId"`
	ProductName string    `json:"product_name" firestore:"productName"`
	Quantity    int       `json:"quantity" firestore:"quantity"`
	Price       float64   `json:"price" firestore:"price"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

type OrderWithItems struct {
	Order *Order       `json:"order"`
	Items []*OrderItem `json:"items"`
}

type CheckoutStatus string

const (
	CheckoutStarted   CheckoutStatus = "started"
	CheckoutCompleted CheckoutStatus = "completed"
)

// Checkout is the saga record of one checkout attempt, keyed by the cart contents.
type Checkout struct {
	ID          string         `json:"id" firestore:"id"`
	UserID      string         `json:"user_id" firestore:"userId"`
	OrderIDs    []string       `json:"order_ids" firestore:"orderIds"`
	Status      CheckoutStatus `json:"status" firestore:"status"`
	CreatedAt   time.Time      `json:"created_at" firestore:"createdAt"`
	CompletedAt *time.Time     `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
}

type CheckoutResult struct {
	CheckoutID  string            `json:"checkout_id"`
	Orders      []*OrderWithItems `json:"orders"`
	TotalAmount float64           `json:"total_amount"`
}
