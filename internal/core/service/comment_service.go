package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/piazza/piazza-api/internal/core/domain"
	"github.com/piazza/piazza-api/internal/core/ports"
)

type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	tx       ports.TxRunner
	idem     IdempotencyStore
	logger   zerolog.Logger
	now      func() time.Time
}

// NewCommentService wires a CommentService; nil tx and idem behave as in NewPostService.
func NewCommentService(
	comments ports.CommentRepository,
	posts ports.PostRepository,
	tx ports.TxRunner,
	idem IdempotencyStore,
	logger zerolog.Logger,
) *CommentService {
	if tx == nil {
		tx = directTx{}
	}
	if idem == nil {
		idem = noopIdempotency{}
	}
	return &CommentService{
		comments: comments,
		posts:    posts,
		tx:       tx,
		idem:     idem,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateComment stores the comment and appends it to the post's comment list.
func (s *CommentService) CreateComment(ctx context.Context, in ports.CreateCommentInput) (*domain.Comment, error) {
	if id, ok := replayedID(ctx, s.idem, s.logger, scopeComment, in.AuthorID, in.IdempotencyKey); ok {
		existing, err := s.comments.FindByID(ctx, id)
		if err == nil {
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("comment_id", id).Msg("idempotent replay")
			return existing, nil
		}
		if !errors.Is(err, domain.ErrCommentNotFound) {
			return nil, err
		}
	}

	comment, err := domain.NewComment(in.AuthorID, in.PostID, in.Content, s.now())
	if err != nil {
		return nil, err
	}

	if _, err := s.posts.FindByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.comments.Create(ctx, comment); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		return s.posts.AttachComment(ctx, in.PostID, comment.ID)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("post_id", in.PostID).Msg("failed to create comment")
		return nil, err
	}
	rememberID(ctx, s.idem, s.logger, scopeComment, in.AuthorID, in.IdempotencyKey, comment.ID)

	s.logger.Info().Str("comment_id", comment.ID).Str("post_id", in.PostID).Str("author_id", in.AuthorID).Msg("comment created")
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID string) ([]*domain.Comment, error) {
	return s.comments.FindByPost(ctx, postID)
}

// DeleteComment detaches the comment from its post and deletes it. Only the
// comment's author may do this.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, requesterID string) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != requesterID {
		return fmt.Errorf("%w: only the author can delete this comment", domain.ErrForbidden)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// A comment can outlive its post when an earlier write ran without a
		// transaction; there is nothing to detach from then.
		err := s.posts.DetachComment(ctx, comment.PostID, comment.ID)
		if err != nil && !errors.Is(err, domain.ErrPostNotFound) {
			return fmt.Errorf("detach comment: %w", err)
		}
		return s.comments.Delete(ctx, comment.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("comment_id", commentID).Str("post_id", comment.PostID).Msg("comment deleted")
	return nil
}
