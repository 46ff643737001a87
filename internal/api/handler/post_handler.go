package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/piazza/piazza-api/internal/api/metrics"
	"github.com/piazza/piazza-api/internal/core/ports"
)

// IdempotencyHeader lets clients retry a create without duplicating it.
const IdempotencyHeader = "Idempotency-Key"

// PostHandler handles HTTP requests for posts. /v1/post and
// /v1/post/topic/:topic share one listing path.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /v1/post.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        Idempotency-Key  header    string             false  "Retry key; a repeat returns the first post"
// @Param        body             body      createPostRequest  true   "Post content"
// @Success      201              {object}  domain.Post
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      500              {object}  map[string]string
// @Router       /v1/post [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := requesterID(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err)
	}

	post, err := h.service.CreatePost(c.Request().Context(), ports.CreatePostInput{
		AuthorID:       userID,
		Content:        req.Content,
		Topic:          req.Topic,
		ValidUntil:     req.ValidUntil,
		IdempotencyKey: c.Request().Header.Get(IdempotencyHeader),
	})
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, post)
}

// List handles GET /v1/post.
//
// Anonymous callers only see unexpired posts and every filter is ignored.
// With maxInterest=true an authenticated caller gets the single post with
// the most likes+dislikes as an object, or [] when nothing matches.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        createdFrom  query     string  false  "Lower createdAt bound (RFC 3339 or YYYY-MM-DD)"
// @Param        createdTo    query     string  false  "Upper createdAt bound (RFC 3339 or YYYY-MM-DD)"
// @Param        archiveOnly  query     bool    false  "Only expired posts"
// @Param        validOnly    query     bool    false  "Only unexpired posts; wins over archiveOnly"
// @Param        maxInterest  query     bool    false  "Only the most voted post"
// @Success      200          {array}   postResponse
// @Failure      400          {object}  map[string]string
// @Failure      401          {object}  map[string]string
// @Router       /v1/post [get]
func (h *PostHandler) List(c echo.Context) error {
	return h.list(c, "")
}

// ListByTopic handles GET /v1/post/topic/:topic with the same filters as List.
//
// @Summary      List posts of a topic
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        topic        path      string  true   "Topic"
// @Param        createdFrom  query     string  false  "Lower createdAt bound"
// @Param        createdTo    query     string  false  "Upper createdAt bound"
// @Param        archiveOnly  query     bool    false  "Only expired posts"
// @Param        validOnly    query     bool    false  "Only unexpired posts"
// @Param        maxInterest  query     bool    false  "Only the most voted post"
// @Success      200          {array}   postResponse
// @Failure      400          {object}  map[string]string
// @Failure      401          {object}  map[string]string
// @Router       /v1/post/topic/{topic} [get]
func (h *PostHandler) ListByTopic(c echo.Context) error {
	return h.list(c, c.Param("topic"))
}

func (h *PostHandler) list(c echo.Context, topic string) error {
	in := ports.ListPostsInput{
		RequesterID: optionalRequesterID(c),
		Topic:       topic,
	}

	if in.RequesterID != "" {
		var err error
		if in.CreatedFrom, err = parseDateParam(c, "createdFrom"); err != nil {
			return err
		}
		if in.CreatedTo, err = parseDateParam(c, "createdTo"); err != nil {
			return err
		}
		in.ArchiveOnly = c.QueryParam("archiveOnly") == "true"
		in.ValidOnly = c.QueryParam("validOnly") == "true"
		in.MaxInterest = c.QueryParam("maxInterest") == "true"
	}

	res, err := h.service.ListPosts(c.Request().Context(), in)
	if err != nil {
		return err
	}

	if res.MaxInterest && len(res.Posts) == 1 {
		return c.JSON(http.StatusOK, toPostResponse(res.Posts[0]))
	}
	return c.JSON(http.StatusOK, toPostResponses(res.Posts))
}

// Get handles GET /v1/post/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/post/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	view, err := h.service.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(*view))
}

// Update handles PUT /v1/post/:id. Only the author may edit.
//
// @Summary      Edit a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string             true  "Post ID"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/post/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	userID, err := requesterID(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err)
	}

	view, err := h.service.UpdatePost(c.Request().Context(), ports.UpdatePostInput{
		PostID:      c.Param("id"),
		RequesterID: userID,
		Content:     req.Content,
		Topic:       req.Topic,
		ValidUntil:  req.ValidUntil,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(*view))
}

// Delete handles DELETE /v1/post/:id. Comments of the post go with it.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      plain
// @Security     TokenAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {string}  string  "Post deleted"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/post/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := requesterID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeletePost(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}

	metrics.PostsDeletedTotal.Inc()
	return c.String(http.StatusOK, "Post deleted")
}

// Like handles PUT /v1/post/:id/like.
//
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  domain.Post
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/post/{id}/like [put]
func (h *PostHandler) Like(c echo.Context) error {
	userID, err := requesterID(c)
	if err != nil {
		return err
	}

	post, err := h.service.LikePost(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}

	metrics.VotesTotal.WithLabelValues("like").Inc()
	return c.JSON(http.StatusOK, post)
}

// Dislike handles PUT /v1/post/:id/dislike.
//
// @Summary      Dislike a post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  domain.Post
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/post/{id}/dislike [put]
func (h *PostHandler) Dislike(c echo.Context) error {
	userID, err := requesterID(c)
	if err != nil {
		return err
	}

	post, err := h.service.DislikePost(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}

	metrics.VotesTotal.WithLabelValues("dislike").Inc()
	return c.JSON(http.StatusOK, post)
}

// parseDateParam reads an optional RFC 3339 or YYYY-MM-DD query parameter.
func parseDateParam(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be an RFC 3339 timestamp or YYYY-MM-DD date")
}
