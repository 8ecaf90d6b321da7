package entity

import (
	"time"
)

type PostType string

const (
	PostDaily PostType = "daily"
	PostHelp  PostType = "help"
)

func (t PostType) Valid() bool {
	return t == PostDaily || t == PostHelp
}

type Post struct {
	ID            string       `json:"id" firestore:"id"`
	UserID        string       `json:"user_id,omitempty" firestore:"userId"`
	Content       string       `json:"content" firestore:"content"`
	PostType      PostType     `json:"post_type" firestore:"postType"`
	IsAnonymous   bool         `json:"is_anonymous" firestore:"isAnonymous"`
	ReviewStatus  ReviewStatus `json:"review_status" firestore:"reviewStatus"`
	ReviewComment string       `json:"review_comment,omitempty" firestore:"reviewComment,omitempty"`
	RewardPoints  int          `json:"reward_points" firestore:"rewardPoints"`
	IsSolved      bool         `json:"is_solved" firestore:"isSolved"`
	SolverID      string       `json:"solver_id,omitempty" firestore:"solverId,omitempty"`
	LikesCount    int          `json:"likes_count" firestore:"likesCount"`
	CommentsCount int          `json:"comments_count" firestore:"commentsCount"`
	CreatedAt     time.Time    `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time    `json:"updated_at" firestore:"updatedAt"`
}

// PublicView hides the author of anonymous posts.
func (p *Post) PublicView() *Post {
	cp := *p
	if cp.IsAnonymous {
		cp.UserID = ""
	}
	return &cp
}

type PostLike struct {
	ID        string    `json:"id" firestore:"id"`
	PostID    string    `json:"post_id" firestore:"postId"`
	UserID    string    `json:"user_id" firestore:"userId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

func PostLikeID(userID, postID string) string {
	return userID + "_" + postID
}

type Comment struct {
	ID        string    `json:"id" firestore:"id"`
	PostID    string    `json:"post_id" firestore:"postId"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Content   string    `json:"content" firestore:"content"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
