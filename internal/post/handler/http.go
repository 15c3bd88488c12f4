// Package handler exposes the feed post endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"alumni-network/backend/internal/platform/httpjson"
	"alumni-network/backend/internal/post/domain"
	"alumni-network/backend/internal/post/service"
	"alumni-network/backend/internal/server/middleware"
)

// Handler serves the post endpoints. All routes sit behind RequireSession.
type Handler struct {
	posts *service.Service
}

// NewHandler constructs the post handler.
func NewHandler(posts *service.Service) *Handler {
	return &Handler{posts: posts}
}

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type postResponse struct {
	ID          string   `json:"id"`
	AuthorID    string   `json:"authorId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	LikedBy     []string `json:"likedBy"`
}

func toPostResponse(p *domain.Post) postResponse {
	likedBy := p.LikedBy
	if likedBy == nil {
		likedBy = []string{}
	}
	return postResponse{
		ID:          p.ID,
		AuthorID:    p.AuthorID,
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		LikedBy:     likedBy,
	}
}

// Create handles POST /api/posts.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	if principal == nil {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}

	post, err := h.posts.Create(r.Context(), principal.UID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			httpjson.Error(w, http.StatusBadRequest, "invalid post fields")
			return
		}
		httpjson.Error(w, http.StatusInternalServerError, "could not create post")
		return
	}
	httpjson.Write(w, http.StatusCreated, toPostResponse(post))
}

// List handles GET /api/posts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "could not load posts")
		return
	}
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	httpjson.Write(w, http.StatusOK, out)
}

// Like handles POST /api/posts/{id}/like.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	if principal == nil {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	postID := chi.URLParam(r, "id")
	if err := h.posts.Like(r.Context(), postID, principal.UID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "post not found")
			return
		}
		httpjson.Error(w, http.StatusInternalServerError, "could not like post")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}

// Unlike handles DELETE /api/posts/{id}/like.
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	if principal == nil {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	postID := chi.URLParam(r, "id")
	if err := h.posts.Unlike(r.Context(), postID, principal.UID); err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "could not unlike post")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}
