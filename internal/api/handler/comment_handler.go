package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/piazza/piazza-api/internal/api/metrics"
	"github.com/piazza/piazza-api/internal/core/ports"
)

type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create handles POST /v1/comment.
//
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        Idempotency-Key  header    string                false  "Retry key; a repeat returns the first comment"
// @Param        body             body      createCommentRequest  true   "Comment"
// @Success      201              {object}  domain.Comment
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Router       /v1/comment [post]
func (h *CommentHandler) Create(c echo.Context) error {
	userID, err := requesterID(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err)
	}

	comment, err := h.service.CreateComment(c.Request().Context(), ports.CreateCommentInput{
		AuthorID:       userID,
		PostID:         req.Post,
		Content:        req.Content,
		IdempotencyKey: c.Request().Header.Get(IdempotencyHeader),
	})
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, comment)
}

// ListByPost handles GET /v1/comment/post/:postId.
//
// @Summary      List comments of a post
// @Tags         comments
// @Produce      json
// @Param        postId  path     string  true  "Post ID"
// @Success      200     {array}  domain.Comment
// @Router       /v1/comment/post/{postId} [get]
func (h *CommentHandler) ListByPost(c echo.Context) error {
	comments, err := h.service.ListComments(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// Delete handles DELETE /v1/comment/:commentId. Only the comment's author may delete it.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      plain
// @Security     TokenAuth
// @Param        commentId  path      string  true  "Comment ID"
// @Success      200        {string}  string  "Comment deleted"
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /v1/comment/{commentId} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	userID, err := requesterID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteComment(c.Request().Context(), c.Param("commentId"), userID); err != nil {
		return err
	}

	metrics.CommentsDeletedTotal.Inc()
	return c.String(http.StatusOK, "Comment deleted")
}
