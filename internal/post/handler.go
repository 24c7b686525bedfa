package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/bloghub/pkg/middleware"
	"github.com/fkhayef/bloghub/pkg/response"
	"github.com/fkhayef/bloghub/pkg/validation"
)

// Handler handles HTTP requests for post operations
type Handler struct {
	service     *Service
	requireAuth func(http.Handler) http.Handler
}

// NewHandler creates a new post handler with dependencies injected
func NewHandler(service *Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireAuth: requireAuth}
}

// Routes returns the router for post endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Get("/user/{userID}", h.ListByAuthor)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

// List handles GET /posts
// @Summary      List posts
// @Description  Get a paginated list of all posts, newest first
// @Tags         posts
// @Produce      json
// @Param        skip query int false "Rows to skip" default(0)
// @Param        limit query int false "Max rows to return" default(100)
// @Success      200 {object} response.APIResponse{data=[]PostResponse}
// @Router       /posts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)

	posts, total, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		response.StorageError(w, err, "Failed to list posts")
		return
	}

	meta := &response.Meta{Skip: skip, Limit: limit, Total: total}
	response.JSONWithMeta(w, http.StatusOK, ToResponses(posts), meta)
}

// GetByID handles GET /posts/{id}
// @Summary      Get post by ID
// @Description  Get a single post with its author
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} response.APIResponse{data=PostResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /posts/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	post, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.StorageError(w, err, "Failed to get post")
		return
	}

	response.JSON(w, http.StatusOK, post.ToResponse())
}

// Create handles POST /posts
// @Summary      Create a post
// @Description  Create a new post authored by the current user
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body CreatePostRequest true "Post creation request"
// @Success      201 {object} response.APIResponse{data=PostResponse}
// @Failure      401 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /posts [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	post, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAllowed):
			response.Unauthorized(w, err.Error())
		case errors.Is(err, ErrEmptyTitle), errors.Is(err, ErrEmptyContent):
			response.UnprocessableEntity(w, err.Error())
		default:
			response.StorageError(w, err, "Failed to create post")
		}
		return
	}

	response.JSON(w, http.StatusCreated, post.ToResponse())
}

// Update handles PUT /posts/{id}
// @Summary      Update a post
// @Description  Partially update a post; only the author may do this
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path int true "Post ID"
// @Param        request body UpdatePostRequest true "Post update request"
// @Success      200 {object} response.APIResponse{data=PostResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /posts/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	post, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotPostAuthor):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrEmptyTitle), errors.Is(err, ErrEmptyContent):
			response.UnprocessableEntity(w, err.Error())
		default:
			response.StorageError(w, err, "Failed to update post")
		}
		return
	}

	response.JSON(w, http.StatusOK, post.ToResponse())
}

// Delete handles DELETE /posts/{id}
// @Summary      Delete a post
// @Description  Delete a post; only the author may do this
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      204 "No Content"
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /posts/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotPostAuthor):
			response.Forbidden(w, err.Error())
		default:
			response.StorageError(w, err, "Failed to delete post")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByAuthor handles GET /posts/user/{userID}
// @Summary      List posts by author ID
// @Description  Get a user's posts, newest first
// @Tags         posts
// @Produce      json
// @Param        userID path int true "Author user ID"
// @Param        skip query int false "Rows to skip" default(0)
// @Param        limit query int false "Max rows to return" default(100)
// @Success      200 {object} response.APIResponse{data=[]PostResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /posts/user/{userID} [get]
func (h *Handler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	skip, limit := pagination(r)

	posts, err := h.service.ListByAuthor(r.Context(), authorID, skip, limit)
	if err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.StorageError(w, err, "Failed to list posts")
		return
	}

	response.JSON(w, http.StatusOK, ToResponses(posts))
}

func pagination(r *http.Request) (skip, limit int) {
	skip, _ = strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return skip, limit
}
