package entity

import (
	"time"
)

// Decision is an inspector's verdict on a pending shop or help post.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// ReviewStatus is the moderation state of a post.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// ShopReview and PostReview are the audit trail of moderation decisions.
type ShopReview struct {
	ID            string    `json:"id" firestore:"id"`
	ShopID        string    `json:"shop_id" firestore:"shopId"`
	ApplicantID   string    `json:"applicant_id" firestore:"applicantId"`
	ReviewerID    string    `json:"reviewer_id" firestore:"reviewerId"`
	Decision      Decision  `json:"decision" firestore:"decision"`
	ReviewComment string    `json:"review_comment" firestore:"reviewComment"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}

type PostReview struct {
	ID            string    `json:"id" firestore:"id"`
	PostID        string    `json:"post_id" firestore:"postId"`
	AuthorID      string    `json:"author_id" firestore:"authorId"`
	ReviewerID    string    `json:"reviewer_id" firestore:"reviewerId"`
	Decision      Decision  `json:"decision" firestore:"decision"`
	ReviewComment string    `json:"review_comment" firestore:"reviewComment"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}

type ReviewTaskType string

const (
	ReviewTaskShop ReviewTaskType = "shop"
	ReviewTaskPost ReviewTaskType = "post"
)

// ReviewTask is one entry of an inspector's queue.
type ReviewTask struct {
	Type         ReviewTaskType `json:"type"`
	TargetID     string         `json:"target_id"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	SubmittedBy  string         `json:"submitted_by"`
	RewardPoints int            `json:"reward_points,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
