package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"pawmarket/internal/domain/entity"
	"pawmarket/pkg/errors"
)

const maxCommentLength = 1000

func (uc *PostUseCase) CreateComment(ctx context.Context, userID, postID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.InvalidArgument("content is required", nil)
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, errors.InvalidArgument("content is too long", nil)
	}
	if _, err := uc.visiblePost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	uc.profiles.awardBestEffort(ctx, userID, entity.ActionComment)
	return comment, nil
}

func (uc *PostUseCase) ListComments(ctx context.Context, viewerID, postID string, limit, offset int) ([]*entity.Comment, int64, error) {
	if _, err := uc.GetPost(ctx, viewerID, postID); err != nil {
		return nil, 0, err
	}
	return uc.commentRepo.ListByPost(ctx, postID, limit, offset)
}
