package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/11Rojas/mascoticas-backend/controllers"
	"github.com/11Rojas/mascoticas-backend/repository"
	"github.com/11Rojas/mascoticas-backend/routes"
	"github.com/11Rojas/mascoticas-backend/services"
	"github.com/11Rojas/mascoticas-backend/socket"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and repositories
	log.Println("Initializing DynamoDB client...")
	dynamo := &repository.Dynamo{
		Client: repository.InitializeDynamoDBClient(),
		Prefix: os.Getenv("TABLE_PREFIX"),
	}
	log.Println("DynamoDB client initialized.")

	swipeRepo := &repository.SwipeRepo{Dynamo: dynamo}
	matchRepo := &repository.MatchRepo{Dynamo: dynamo}
	chatRepo := &repository.ChatRepo{Dynamo: dynamo}
	messageRepo := &repository.MessageRepo{Dynamo: dynamo}
	notificationRepo := &repository.NotificationRepo{Dynamo: dynamo}
	subscriptionRepo := &repository.SubscriptionRepo{Dynamo: dynamo}
	directory := &repository.ProfileDirectory{Dynamo: dynamo}

	// Realtime hub and background dispatcher
	hub := socket.NewHub()
	dispatcher := services.NewDispatcher(4, 256, 30*time.Second)
	defer dispatcher.Close()

	// Initialize Services
	pushService, err := services.NewPushServiceFromEnv(subscriptionRepo, chatRepo)
	if err != nil {
		log.Fatalf("Failed to initialize push service: %v", err)
	}
	s3Service, err := services.NewS3ServiceFromEnv(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}

	swipeService := &services.SwipeService{Swipes: swipeRepo}
	notificationService := &services.NotificationService{Notifications: notificationRepo}
	chatService := &services.ChatService{Chats: chatRepo, Directory: directory}
	messageService := &services.MessageService{
		Messages:    messageRepo,
		Chats:       chatRepo,
		Rooms:       chatService,
		Broadcaster: hub,
		Push:        pushService,
		Tasks:       dispatcher,
	}
	matchService := &services.MatchService{
		Swipes:        swipeService,
		Matches:       matchRepo,
		Chats:         chatRepo,
		Messages:      messageRepo,
		Notifications: notificationService,
		Directory:     directory,
		Broadcaster:   hub,
		Push:          pushService,
		Tasks:         dispatcher,
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/ws", socket.ServeWS(hub)).Methods("GET")

	// Register routes
	routes.RegisterSwipeRoutes(r, swipeService, matchService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterChatRoutes(r, chatService, messageService)
	routes.RegisterNotificationRoutes(r, notificationService)
	routes.RegisterPushRoutes(r, pushService)
	routes.RegisterS3Routes(r, s3Service)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
