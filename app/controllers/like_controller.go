package controllers

import (
	"log/slog"
	"net/http"

	"postlikes/app/middleware"
	"postlikes/app/services"

	"github.com/gorilla/mux"
)

// LikeController exposes the like toggle and the like roster
type LikeController struct {
	likeService *services.LikeService
	logger      *slog.Logger
}

// NewLikeController creates a new LikeController
func NewLikeController(likeService *services.LikeService, logger *slog.Logger) *LikeController {
	if logger == nil {
		logger = slog.Default()
	}
	return &LikeController{
		likeService: likeService,
		logger:      logger,
	}
}

// Like adds the caller to the post's roster
func (lc *LikeController) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		sendError(w, "Missing "+middleware.UserIDHeader+" header", http.StatusUnauthorized)
		return
	}

	post, err := lc.likeService.Like(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Unlike removes the caller from the post's roster
func (lc *LikeController) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		sendError(w, "Missing "+middleware.UserIDHeader+" header", http.StatusUnauthorized)
		return
	}

	post, err := lc.likeService.Unlike(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Likes returns the like count and the users who liked the post
func (lc *LikeController) Likes(w http.ResponseWriter, r *http.Request) {
	likes, err := lc.likeService.GetLikes(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, likes)
}
