package entity

import (
	"time"
)

// UserProfile carries the gamification counters of a user. Level never regresses.
type UserProfile struct {
	UserID     string    `json:"user_id" firestore:"userId"`
	Username   string    `json:"username" firestore:"username"`
	AvatarURL  string    `json:"avatar_url" firestore:"avatarUrl"`
	Experience int       `json:"experience" firestore:"experience"`
	Level      int       `json:"level" firestore:"level"`
	Points     int       `json:"points" firestore:"points"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`

	// NextLevelExperience is derived from Level when the profile is served.
	NextLevelExperience int `json:"next_level_experience" firestore:"-"`
}

const DefaultAvatarURL = "/images/UserAvatar.jpg"

// NewUserProfile builds the profile created lazily on first access.
func NewUserProfile(userID string, now time.Time) *UserProfile {
	short := userID
	if len(short) > 8 {
		short = short[:8]
	}
	return &UserProfile{
		UserID:    userID,
		Username:  "User_" + short,
		AvatarURL: DefaultAvatarURL,
		Level:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type ActionType string

const (
	ActionPostDaily ActionType = "post_daily"
	ActionPostHelp  ActionType = "post_help"
	ActionComment   ActionType = "comment"
	ActionLike      ActionType = "like"
	ActionSolveHelp ActionType = "solve_help"
)

type ExperienceLog struct {
	ID               string     `json:"id" firestore:"id"`
	UserID           string     `json:"user_id" firestore:"userId"`
	ActionType       ActionType `json:"action_type" firestore:"actionType"`
	ExperienceChange int        `json:"experience_change" firestore:"experienceChange"`
	PointsChange     int        `json:"points_change" firestore:"pointsChange"`
	CreatedAt        time.Time  `json:"created_at" firestore:"createdAt"`
}

type Inspector struct {
	UserID      string    `json:"user_id" firestore:"userId"`
	AppointedAt time.Time `json:"appointed_at" firestore:"appointedAt"`
	AppointedBy string    `json:"appointed_by" firestore:"appointedBy"`
}
