package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"warbler/handlers"
	"warbler/monitoring"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(userHandler *handlers.UserHandler, messageHandler *handlers.MessageHandler,
	likeHandler *handlers.LikeHandler, systemHandler *handlers.SystemHandler) http.Handler {
	router := mux.NewRouter()

	// Auth routes
	router.HandleFunc("/signup", userHandler.Signup).Methods("POST")
	router.HandleFunc("/login", userHandler.Login).Methods("POST")
	router.HandleFunc("/logout", userHandler.Logout).Methods("POST")

	// User routes
	router.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	router.HandleFunc("/users/profile", userHandler.UpdateProfile).Methods("PUT")
	router.HandleFunc("/users/delete", userHandler.DeleteUser).Methods("POST")
	router.HandleFunc("/users/follow/{id:[0-9]+}", userHandler.Follow).Methods("POST")
	router.HandleFunc("/users/stop-following/{id:[0-9]+}", userHandler.StopFollowing).Methods("POST")
	router.HandleFunc("/users/{id:[0-9]+}", userHandler.ShowUser).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}/following", userHandler.Following).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}/followers", userHandler.Followers).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}/likes", likeHandler.LikedMessages).Methods("GET")

	// Message routes
	router.HandleFunc("/", messageHandler.Home).Methods("GET")
	router.HandleFunc("/public", messageHandler.PublicTimeline).Methods("GET")
	router.HandleFunc("/messages", messageHandler.CreateMessage).Methods("POST")
	router.HandleFunc("/messages/{id:[0-9]+}", messageHandler.ShowMessage).Methods("GET")
	router.HandleFunc("/messages/{id:[0-9]+}", messageHandler.DeleteMessage).Methods("DELETE")
	router.HandleFunc("/messages/{id:[0-9]+}/like", likeHandler.ToggleLike).Methods("POST")
	router.HandleFunc("/msgs/{username}", messageHandler.MessagesPerUser).Methods("GET")

	// System routes
	router.HandleFunc("/health", systemHandler.Health).Methods("GET")

	// Add metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return monitoring.InstrumentHandler(noCache(router))
}

// noCache disables client caching on every response.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}
