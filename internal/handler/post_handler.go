package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"inkwell/internal/auth"
	"inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRequest represents a post create or update request.
type PostRequest struct {
	Title    string   `json:"title" validate:"required,min=3"`
	Body     string   `json:"body" validate:"required,min=3"`
	Tags     []string `json:"tags" validate:"omitempty,dive,min=1"`
	ImageURL string   `json:"imageUrl" validate:"omitempty"`
}

// AuthorSummary carries the author display fields returned with post listings.
type AuthorSummary struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
}

// PostListItem represents a post in the plain listing.
type PostListItem struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	Tags      []string      `json:"tags"`
	ImageURL  string        `json:"imageUrl,omitempty"`
	Views     int64         `json:"views"`
	Author    AuthorSummary `json:"author"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// TagsResponse represents the recent-tags listing.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PostRequest true "Post data"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ValidationResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.NewValidationResponse(err))
	}

	userID, ok := auth.CurrentUserID(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidToken)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	post, err := h.postService.Create(c.Request().Context(), userID, service.PostInput{
		Title:    req.Title,
		Body:     req.Body,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, post)
}

// Update godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body PostRequest true "Post data"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ValidationResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.NewValidationResponse(err))
	}

	userID, ok := auth.CurrentUserID(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidToken)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	post, err := h.postService.Update(c.Request().Context(), postID, userID, service.PostInput{
		Title:    req.Title,
		Body:     req.Body,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, post)
}

// Remove godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Remove(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	userID, ok := auth.CurrentUserID(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidToken)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.postService.Remove(c.Request().Context(), postID, userID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// GetOne godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) GetOne(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.postService.GetOne(c.Request().Context(), postID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, post)
}

// GetAll godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {array} PostListItem
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) GetAll(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	items := make([]PostListItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, toListItem(post))
	}
	return c.JSON(http.StatusOK, items)
}

// GetPopulate godoc
// @Summary List posts with authors fully resolved
// @Tags posts
// @Produce json
// @Success 200 {array} model.Post
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/populate [get]
func (h *PostHandler) GetPopulate(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, posts)
}

// GetLastTags godoc
// @Summary List recently used tags
// @Tags posts
// @Produce json
// @Success 200 {object} TagsResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tags [get]
func (h *PostHandler) GetLastTags(c echo.Context) error {
	tags, err := h.postService.LastTags(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TagsResponse{Tags: tags})
}

func parsePostID(c echo.Context) (uuid.UUID, error) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid post ID",
			Code:  "INVALID_UUID",
		})
	}
	return postID, nil
}

func toListItem(post model.Post) PostListItem {
	return PostListItem{
		ID:       post.ID,
		Title:    post.Title,
		Body:     post.Body,
		Tags:     post.Tags,
		ImageURL: post.ImageURL,
		Views:    post.Views,
		Author: AuthorSummary{
			ID:        post.Author.ID,
			FullName:  post.Author.FullName,
			AvatarURL: post.Author.AvatarURL,
		},
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
