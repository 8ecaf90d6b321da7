package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
	"pawmarket/internal/domain/rules"
	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

const maxPostLength = 2000

type PostUseCase struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	inspectors  *InspectorUseCase
	profiles    *ProfileUseCase
}

func NewPostUseCase(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	inspectors *InspectorUseCase,
	profiles *ProfileUseCase,
) *PostUseCase {
	return &PostUseCase{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		inspectors:  inspectors,
		profiles:    profiles,
	}
}

type CreatePostInput struct {
	Content      string
	PostType     entity.PostType
	IsAnonymous  bool
	RewardPoints int
}

func (in CreatePostInput) validate() error {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return errors.InvalidArgument("content is required", nil)
	}
	if utf8.RuneCountInString(content) > maxPostLength {
		return errors.InvalidArgument("content is too long", nil)
	}
	if !in.PostType.Valid() {
		return errors.InvalidArgument(fmt.Sprintf("unknown post type %q", in.PostType), nil)
	}
	if in.RewardPoints < 0 {
		return errors.InvalidArgument("reward points cannot be negative", nil)
	}
	if in.PostType == entity.PostDaily && in.RewardPoints > 0 {
		return errors.InvalidArgument("only help posts carry a reward", nil)
	}
	return nil
}

// CreatePost publishes a daily post immediately and queues a help post for
// review. A help post's reward is taken from the author's points up front and
// held until the post is rejected or solved.
func (uc *PostUseCase) CreatePost(ctx context.Context, userID string, input CreatePostInput) (*entity.Post, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	post := &entity.Post{
		UserID:       userID,
		Content:      strings.TrimSpace(input.Content),
		PostType:     input.PostType,
		IsAnonymous:  input.IsAnonymous,
		ReviewStatus: rules.InitialReviewStatus(input.PostType),
		RewardPoints: input.RewardPoints,
	}

	if post.RewardPoints > 0 {
		if err := uc.profiles.adjustPoints(ctx, userID, -post.RewardPoints); err != nil {
			return nil, err
		}
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		if post.RewardPoints > 0 {
			if refundErr := uc.profiles.adjustPoints(ctx, userID, post.RewardPoints); refundErr != nil {
				logger.LogStepError("create_post", "refund_escrow", userID, refundErr)
			}
		}
		return nil, err
	}

	action := entity.ActionPostDaily
	if post.PostType == entity.PostHelp {
		action = entity.ActionPostHelp
	}
	uc.profiles.awardBestEffort(ctx, userID, action)

	return post, nil
}

// ListPublicPosts only ever returns approved posts.
func (uc *PostUseCase) ListPublicPosts(ctx context.Context, postType entity.PostType, limit, offset int) ([]*entity.Post, int64, error) {
	if postType != "" && !postType.Valid() {
		return nil, 0, errors.InvalidArgument(fmt.Sprintf("unknown post type %q", postType), nil)
	}

	posts, total, err := uc.postRepo.List(ctx, repository.PostFilter{
		PostType:     postType,
		ReviewStatus: entity.ReviewApproved,
	}, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	public := make([]*entity.Post, len(posts))
	for i, p := range posts {
		public[i] = p.PublicView()
	}
	return public, total, nil
}

func (uc *PostUseCase) ListMyPosts(ctx context.Context, userID string, limit, offset int) ([]*entity.Post, int64, error) {
	return uc.postRepo.List(ctx, repository.PostFilter{UserID: userID}, limit, offset)
}

// GetPost returns an unapproved post only to its author and to inspectors.
func (uc *PostUseCase) GetPost(ctx context.Context, viewerID, postID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID == viewerID {
		return post, nil
	}

	if post.ReviewStatus != entity.ReviewApproved {
		ok, err := uc.inspectors.IsInspector(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.NotFound("Post", nil)
		}
	}
	return post.PublicView(), nil
}

// visiblePost loads a post that others may interact with.
func (uc *PostUseCase) visiblePost(ctx context.Context, postID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.ReviewStatus != entity.ReviewApproved {
		return nil, errors.NotFound("Post", nil)
	}
	return post, nil
}

func (uc *PostUseCase) LikePost(ctx context.Context, userID, postID string) error {
	if _, err := uc.visiblePost(ctx, postID); err != nil {
		return err
	}
	if err := uc.postRepo.Like(ctx, &entity.PostLike{PostID: postID, UserID: userID}); err != nil {
		return err
	}

	uc.profiles.awardBestEffort(ctx, userID, entity.ActionLike)
	return nil
}

func (uc *PostUseCase) UnlikePost(ctx context.Context, userID, postID string) error {
	return uc.postRepo.Unlike(ctx, userID, postID)
}

// MarkSolved closes a help post and pays its reward to solverID, who must
// have commented on it. The post and the solver's profile are written together.
func (uc *PostUseCase) MarkSolved(ctx context.Context, authorID, postID, solverID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := rules.CheckSolvable(post, authorID, solverID); err != nil {
		return nil, err
	}

	commented, err := uc.commentRepo.HasCommented(ctx, postID, solverID)
	if err != nil {
		return nil, err
	}
	if !commented {
		return nil, errors.InvalidArgument("solver has not commented on this post", nil)
	}

	var award rules.AwardResult
	post, err = uc.postRepo.MutateWithProfile(ctx, postID, solverID, func(p *entity.Post, solver *entity.UserProfile) error {
		if err := rules.CheckSolvable(p, authorID, solverID); err != nil {
			return err
		}
		p.IsSolved = true
		p.SolverID = solverID

		var err error
		award, err = rules.ApplyAward(solver, entity.ActionSolveHelp, p.RewardPoints, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.profiles.recordAward(ctx, solverID, award)
	return post, nil
}
