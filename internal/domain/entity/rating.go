package entity

import (
	"time"
)

type RatingTarget string

const (
	RatingTargetProduct RatingTarget = "product"
	RatingTargetShop    RatingTarget = "shop"
)

// Rating is a 1..5 score left by a buyer on a product or a shop.
type Rating struct {
	ID        string       `json:"id" firestore:"id"`
	Target    RatingTarget `json:"target" firestore:"target"`
	TargetID  string       `json:"target_id" firestore:"targetId"`
	UserID    string       `json:"user_id" firestore:"userId"`
	Rating    int          `json:"rating" firestore:"rating"`
	Comment   string       `json:"comment" firestore:"comment"`
	CreatedAt time.Time    `json:"created_at" firestore:"createdAt"`
}

func RatingID(userID, targetID string) string {
	return userID + "_" + targetID
}

type RatingSummary struct {
	AverageRating float64   `json:"average_rating"`
	TotalCount    int       `json:"total_count"`
	Ratings       []*Rating `json:"ratings"`
}
