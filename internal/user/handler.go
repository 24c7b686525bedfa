package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/bloghub/internal/post"
	"github.com/fkhayef/bloghub/pkg/middleware"
	"github.com/fkhayef/bloghub/pkg/response"
	"github.com/fkhayef/bloghub/pkg/validation"
)

// Handler handles HTTP requests for user profile operations
type Handler struct {
	service     *Service
	requireAuth func(http.Handler) http.Handler
}

// NewHandler creates a new user handler with dependencies injected
func NewHandler(service *Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireAuth: requireAuth}
}

// Routes returns the router for user endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/me", h.GetMe)
		r.Put("/me", h.UpdateMe)
	})

	r.Get("/{username}", h.GetPublicProfile)
	r.Get("/{username}/posts", h.ListPosts)
	r.Get("/{username}/stats", h.GetStats)

	return r
}

// GetMe handles GET /users/me
// @Summary      Get own profile
// @Description  Get the current user's full profile
// @Tags         users
// @Produce      json
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      401 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	user, err := h.service.GetByID(r.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.StorageError(w, err, "Failed to get profile")
		return
	}

	response.JSON(w, http.StatusOK, user.ToResponse())
}

// UpdateMe handles PUT /users/me
// @Summary      Update own profile
// @Description  Update the current user's profile; only name, bio, avatar, website, and location are settable
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile update request"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      401 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /users/me [put]
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotProfileOwner):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, err.Error())
		default:
			response.StorageError(w, err, "Failed to update profile")
		}
		return
	}

	response.JSON(w, http.StatusOK, user.ToResponse())
}

// GetPublicProfile handles GET /users/{username}
// @Summary      Get public profile
// @Description  Get a user's public profile for their author page
// @Tags         users
// @Produce      json
// @Param        username path string true "Username"
// @Success      200 {object} response.APIResponse{data=PublicProfileResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /users/{username} [get]
func (h *Handler) GetPublicProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.service.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.StorageError(w, err, "Failed to get profile")
		return
	}

	response.JSON(w, http.StatusOK, user.ToPublicProfile())
}

// ListPosts handles GET /users/{username}/posts
// @Summary      List a user's posts
// @Description  Get a user's posts for their author page, newest first
// @Tags         users
// @Produce      json
// @Param        username path string true "Username"
// @Param        skip query int false "Rows to skip" default(0)
// @Param        limit query int false "Max rows to return" default(10)
// @Success      200 {object} response.APIResponse{data=[]post.PostResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /users/{username}/posts [get]
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	posts, err := h.service.ListPosts(r.Context(), username, skip, limit)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.StorageError(w, err, "Failed to list posts")
		return
	}

	response.JSON(w, http.StatusOK, post.ToResponses(posts))
}

// GetStats handles GET /users/{username}/stats
// @Summary      Get user statistics
// @Description  Get post count and join date for a user's author page
// @Tags         users
// @Produce      json
// @Param        username path string true "Username"
// @Success      200 {object} response.APIResponse{data=StatsResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /users/{username}/stats [get]
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	stats, err := h.service.Stats(r.Context(), username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.StorageError(w, err, "Failed to get stats")
		return
	}

	response.JSON(w, http.StatusOK, stats)
}
