package main

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"warbler/database"
	"warbler/handlers"
	"warbler/logger"
	"warbler/repositories"
	"warbler/routes"
)

func main() {
	logger.InitLogger()

	db, err := database.Connect()
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	likeRepo := repositories.NewLikeRepository(db)
	feedRepo := repositories.NewFeedRepository(db)

	sessionManager := handlers.NewSessionManager()
	userHandler := handlers.NewUserHandler(userRepo, followRepo, messageRepo, sessionManager)
	messageHandler := handlers.NewMessageHandler(messageRepo, feedRepo, likeRepo, userRepo, sessionManager)
	likeHandler := handlers.NewLikeHandler(likeRepo, userRepo, sessionManager)
	systemHandler := handlers.NewSystemHandler(db)

	router := routes.SetupRoutes(userHandler, messageHandler, likeHandler, systemHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5001"
	}
	logrus.Info("Server running on port ", port)
	logrus.Fatal(http.ListenAndServe(":"+port, router))
}
