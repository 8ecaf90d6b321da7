package entity

import (
	"time"
)

// ShopStatus is the lifecycle state of a shop.
type ShopStatus string

const (
	ShopPending  ShopStatus = "pending"
	ShopApproved ShopStatus = "approved"
	ShopRejected ShopStatus = "rejected"
	ShopActive   ShopStatus = "active"
	ShopInactive ShopStatus = "inactive"
)

func (s ShopStatus) Valid() bool {
	switch s {
	case ShopPending, ShopApproved, ShopRejected, ShopActive, ShopInactive:
		return true
	}
	return false
}

// Operational reports whether the shop may list and sell products.
func (s ShopStatus) Operational() bool {
	return s == ShopApproved || s == ShopActive
}

type Shop struct {
	ID            string     `json:"id" firestore:"id"`
	OwnerUserID   string     `json:"owner_user_id" firestore:"ownerUserId"`
	ShopName      string     `json:"shop_name" firestore:"shopName"`
	Description   string     `json:"description" firestore:"description"`
	LogoURL       string     `json:"logo_url" firestore:"logoUrl"`
	Status        ShopStatus `json:"status" firestore:"status"`
	ReviewComment string     `json:"review_comment,omitempty" firestore:"reviewComment,omitempty"`
	ReviewedBy    string     `json:"reviewed_by,omitempty" firestore:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty" firestore:"reviewedAt,omitempty"`
	AverageRating float64    `json:"average_rating" firestore:"averageRating"`
	RatingCount   int        `json:"rating_count" firestore:"ratingCount"`
	CreatedAt     time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time  `json:"updated_at" firestore:"updatedAt"`
}
