package rules

import (
	"fmt"

	"pawmarket/internal/domain/entity"
	"pawmarket/pkg/errors"
)

// ShopEvent is anything that can move a shop between statuses.
type ShopEvent string

const (
	ShopEventApprove    ShopEvent = "approve"
	ShopEventReject     ShopEvent = "reject"
	ShopEventActivate   ShopEvent = "activate"
	ShopEventDeactivate ShopEvent = "deactivate"
)

func ShopEventForDecision(d entity.Decision) ShopEvent {
	if d == entity.DecisionApprove {
		return ShopEventApprove
	}
	return ShopEventReject
}

// NextShopStatus is the single transition function for shops.
// Review events are only valid from pending; owner toggles only once the shop
// has been approved. Rejected is terminal.
func NextShopStatus(current entity.ShopStatus, event ShopEvent) (entity.ShopStatus, error) {
	switch event {
	case ShopEventApprove, ShopEventReject:
		if current != entity.ShopPending {
			return current, errors.InvalidState(fmt.Sprintf("shop already reviewed (status %s)", current))
		}
		if event == ShopEventApprove {
			return entity.ShopApproved, nil
		}
		return entity.ShopRejected, nil

	case ShopEventActivate, ShopEventDeactivate:
		switch current {
		case entity.ShopApproved, entity.ShopActive, entity.ShopInactive:
		default:
			return current, errors.InvalidState(fmt.Sprintf("shop status %s cannot be toggled", current))
		}
		if event == ShopEventActivate {
			return entity.ShopActive, nil
		}
		return entity.ShopInactive, nil
	}

	return current, errors.InvalidArgument(fmt.Sprintf("unknown shop event %q", event), nil)
}

// InitialReviewStatus: daily posts skip moderation, help posts wait for an inspector.
func InitialReviewStatus(t entity.PostType) entity.ReviewStatus {
	if t == entity.PostHelp {
		return entity.ReviewPending
	}
	return entity.ReviewApproved
}

// NextPostReviewStatus is the single transition function for post moderation.
func NextPostReviewStatus(post *entity.Post, d entity.Decision) (entity.ReviewStatus, error) {
	if !d.Valid() {
		return post.ReviewStatus, errors.InvalidArgument(fmt.Sprintf("unknown decision %q", d), nil)
	}
	if post.PostType != entity.PostHelp {
		return post.ReviewStatus, errors.InvalidState("only help posts go through review")
	}
	if post.ReviewStatus != entity.ReviewPending {
		return post.ReviewStatus, errors.InvalidState(fmt.Sprintf("post already reviewed (status %s)", post.ReviewStatus))
	}
	if d == entity.DecisionApprove {
		return entity.ReviewApproved, nil
	}
	return entity.ReviewRejected, nil
}

// CheckSolvable validates marking a help post as solved by solverID.
func CheckSolvable(post *entity.Post, authorID, solverID string) error {
	if post.UserID != authorID {
		return errors.Forbidden("only the author can mark a post as solved", nil)
	}
	if post.PostType != entity.PostHelp {
		return errors.InvalidState("only help posts can be solved")
	}
	if post.ReviewStatus != entity.ReviewApproved {
		return errors.InvalidState("post has not been approved")
	}
	if post.IsSolved {
		return errors.InvalidState("post is already solved")
	}
	if solverID == "" || solverID == authorID {
		return errors.InvalidArgument("solver must be another user", nil)
	}
	return nil
}

func DefaultReviewComment(d entity.Decision, comment string) string {
	if comment != "" {
		return comment
	}
	if d == entity.DecisionApprove {
		return "approved"
	}
	return "rejected"
}
