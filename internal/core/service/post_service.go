package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/piazza/piazza-api/internal/core/domain"
	"github.com/piazza/piazza-api/internal/core/ports"
)

type PostService struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	tx       ports.TxRunner
	idem     IdempotencyStore
	logger   zerolog.Logger
	now      func() time.Time
}

// NewPostService wires a PostService. tx and idem may be nil, in which case
// steps run without a transaction and retry keys are ignored.
func NewPostService(
	posts ports.PostRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	tx ports.TxRunner,
	idem IdempotencyStore,
	logger zerolog.Logger,
) *PostService {
	if tx == nil {
		tx = directTx{}
	}
	if idem == nil {
		idem = noopIdempotency{}
	}
	return &PostService{
		posts:    posts,
		comments: comments,
		users:    users,
		tx:       tx,
		idem:     idem,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost publishes a post. A repeated IdempotencyKey from the same author
// returns the post created by the first call.
func (s *PostService) CreatePost(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	if id, ok := replayedID(ctx, s.idem, s.logger, scopePost, in.AuthorID, in.IdempotencyKey); ok {
		existing, err := s.posts.FindByID(ctx, id)
		if err == nil {
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("post_id", id).Msg("idempotent replay")
			return existing, nil
		}
		if !errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
	}

	post, err := domain.NewPost(in.AuthorID, in.Content, in.Topic, in.ValidUntil, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		s.logger.Error().Err(err).Msg("failed to create post")
		return nil, err
	}
	rememberID(ctx, s.idem, s.logger, scopePost, in.AuthorID, in.IdempotencyKey, post.ID)

	s.logger.Info().
		Str("post_id", post.ID).
		Str("author_id", post.AuthorID).
		Str("topic", post.Topic).
		Time("valid_until", post.ValidUntil).
		Msg("post created")

	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*ports.PostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.populate(ctx, []*domain.Post{post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListPosts applies the visibility filter for the caller and, for
// authenticated max-interest requests, collapses the result to one post.
func (s *PostService) ListPosts(ctx context.Context, in ports.ListPostsInput) (*ports.ListPostsResult, error) {
	q := postQuery(in, s.now())

	posts, err := s.posts.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	maxInterest := in.MaxInterest && in.RequesterID != ""
	if maxInterest {
		top := mostInteresting(posts)
		posts = nil
		if top != nil {
			posts = []*domain.Post{top}
		}
	}

	views, err := s.populate(ctx, posts)
	if err != nil {
		return nil, err
	}
	return &ports.ListPostsResult{Posts: views, MaxInterest: maxInterest}, nil
}

// UpdatePost edits content, topic or expiry. Only the author may edit.
func (s *PostService) UpdatePost(ctx context.Context, in ports.UpdatePostInput) (*ports.PostView, error) {
	post, err := s.posts.FindByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !post.IsAuthoredBy(in.RequesterID) {
		return nil, fmt.Errorf("%w: only the author can edit this post", domain.ErrForbidden)
	}

	now := s.now()
	changes := ports.PostChanges{UpdatedAt: now}

	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, fmt.Errorf("%w: content cannot be empty", domain.ErrInvalidInput)
		}
		changes.Content = in.Content
	}
	if in.Topic != nil {
		if strings.TrimSpace(*in.Topic) == "" {
			return nil, fmt.Errorf("%w: topic cannot be empty", domain.ErrInvalidInput)
		}
		changes.Topic = in.Topic
	}
	if in.ValidUntil != nil && *in.ValidUntil != "" {
		validUntil, err := domain.ResolveExpiry(*in.ValidUntil, now)
		if err != nil {
			return nil, err
		}
		changes.ValidUntil = &validUntil
	}

	updated, err := s.posts.Update(ctx, in.PostID, changes)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", in.PostID).Msg("post updated")

	views, err := s.populate(ctx, []*domain.Post{updated})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// DeletePost removes the post's comments and then the post itself.
func (s *PostService) DeletePost(ctx context.Context, id, requesterID string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !post.IsAuthoredBy(requesterID) {
		return fmt.Errorf("%w: only the author can delete this post", domain.ErrForbidden)
	}

	var removed int64
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.comments.DeleteByPost(ctx, id)
		if err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		removed = n
		return s.posts.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("post_id", id).Int64("comments_removed", removed).Msg("post deleted")
	return nil
}

// LikePost bumps the like counter. Authors cannot like their own posts.
func (s *PostService) LikePost(ctx context.Context, id, requesterID string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.IsAuthoredBy(requesterID) {
		return nil, fmt.Errorf("%w: cannot like your own post", domain.ErrForbidden)
	}
	return s.posts.IncrementVote(ctx, id, ports.VoteLike)
}

// DislikePost bumps the dislike counter. Expired posts no longer accept dislikes.
func (s *PostService) DislikePost(ctx context.Context, id, requesterID string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.ExpiredAt(s.now()) {
		return nil, domain.ErrPostExpired
	}
	s.logger.Debug().Str("post_id", id).Str("user_id", requesterID).Msg("dislike")
	return s.posts.IncrementVote(ctx, id, ports.VoteDislike)
}

// populate joins authors and comments (with their authors) onto posts using
// one batched lookup per collection.
func (s *PostService) populate(ctx context.Context, posts []*domain.Post) ([]ports.PostView, error) {
	if len(posts) == 0 {
		return []ports.PostView{}, nil
	}

	var commentIDs []string
	for _, p := range posts {
		commentIDs = append(commentIDs, p.Comments...)
	}

	commentsByID := make(map[string]*domain.Comment, len(commentIDs))
	if len(commentIDs) > 0 {
		comments, err := s.comments.FindByIDs(ctx, commentIDs)
		if err != nil {
			return nil, fmt.Errorf("populate comments: %w", err)
		}
		for _, c := range comments {
			commentsByID[c.ID] = c
		}
	}

	seen := make(map[string]struct{})
	var userIDs []string
	addUser := func(id string) {
		if _, ok := seen[id]; ok || id == "" {
			return
		}
		seen[id] = struct{}{}
		userIDs = append(userIDs, id)
	}
	for _, p := range posts {
		addUser(p.AuthorID)
	}
	for _, c := range commentsByID {
		addUser(c.AuthorID)
	}

	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("populate authors: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	views := make([]ports.PostView, len(posts))
	for i, p := range posts {
		comments := make([]ports.CommentView, 0, len(p.Comments))
		for _, cid := range p.Comments {
			c, ok := commentsByID[cid]
			if !ok {
				continue
			}
			comments = append(comments, ports.CommentView{
				ID:        c.ID,
				Content:   c.Content,
				CreatedAt: c.CreatedAt,
				Author:    ports.AuthorRef{ID: c.AuthorID, FullName: names[c.AuthorID]},
			})
		}

		views[i] = ports.PostView{
			ID:         p.ID,
			Content:    p.Content,
			Topic:      p.Topic,
			Author:     ports.AuthorRef{ID: p.AuthorID, FullName: names[p.AuthorID]},
			Likes:      p.Likes,
			Dislikes:   p.Dislikes,
			Comments:   comments,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
			ValidUntil: p.ValidUntil,
		}
	}
	return views, nil
}
