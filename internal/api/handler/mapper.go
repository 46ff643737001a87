package handler

import (
	"github.com/piazza/piazza-api/internal/core/domain"
	"github.com/piazza/piazza-api/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toProfileInput(req profileRequest) ports.ProfileInput {
	return ports.ProfileInput{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}
}

func toPostResponse(v ports.PostView) postResponse {
	comments := make([]postCommentResponse, len(v.Comments))
	for i, c := range v.Comments {
		comments[i] = postCommentResponse{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Author:    authorResponse{ID: c.Author.ID, FullName: c.Author.FullName},
		}
	}

	return postResponse{
		ID:         v.ID,
		Content:    v.Content,
		Topic:      v.Topic,
		Author:     authorResponse{ID: v.Author.ID, FullName: v.Author.FullName},
		Likes:      v.Likes,
		Dislikes:   v.Dislikes,
		Comments:   comments,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
		ValidUntil: v.ValidUntil,
	}
}

func toPostResponses(views []ports.PostView) []postResponse {
	out := make([]postResponse, len(views))
	for i, v := range views {
		out[i] = toPostResponse(v)
	}
	return out
}
