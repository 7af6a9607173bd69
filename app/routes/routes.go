package routes

import (
	"log/slog"
	"net/http"

	"postlikes/app/controllers"
	"postlikes/app/middleware"
	"postlikes/app/repositories"
	"postlikes/app/services"

	"github.com/gorilla/mux"
)

// Options tunes the router.
type Options struct {
	Logger     *slog.Logger
	BcryptCost int
}

// SetupRoutes wires services and controllers on top of store and returns
// the API router.
func SetupRoutes(store repositories.Store, opts Options) *mux.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	postService := services.NewPostService(store.Posts(), store.Users(), logger)
	likeService := services.NewLikeService(store.Posts(), store.Users(), logger)
	userService := services.NewUserService(store.Users(), logger)
	if opts.BcryptCost != 0 {
		userService.SetBcryptCost(opts.BcryptCost)
	}

	postController := controllers.NewPostController(postService, logger)
	likeController := controllers.NewLikeController(likeService, logger)
	userController := controllers.NewUserController(userService)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.UserIdentity)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Posts API endpoints
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id}", postController.Edit).Methods("PUT")
	posts.HandleFunc("/{id}", postController.Delete).Methods("DELETE")

	// Likes API endpoints
	posts.HandleFunc("/{id}/like", likeController.Like).Methods("POST")
	posts.HandleFunc("/{id}/like", likeController.Unlike).Methods("DELETE")
	posts.HandleFunc("/{id}/likes", likeController.Likes).Methods("GET")

	// Users API endpoints
	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("", userController.Create).Methods("POST")
	users.HandleFunc("/{id}", userController.Show).Methods("GET")

	return router
}
