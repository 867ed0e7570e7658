package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"buzzme_server/config"
	"buzzme_server/repository/dynamo"
	"buzzme_server/routes"
	"buzzme_server/services"
	"buzzme_server/socket"
	"buzzme_server/stream"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	// Initialize DynamoDB client and repositories
	log.Println("Initializing DynamoDB client...")
	dynamoClient := dynamo.InitializeDynamoDBClient(cfg.AWSRegion)
	dynamoService := &dynamo.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	profileRepo := dynamo.NewProfileRepo(dynamoService)
	requestRepo := dynamo.NewRequestRepo(dynamoService)
	signalRepo := dynamo.NewSignalRepo(dynamoService)
	matchRepo := dynamo.NewMatchRepo(dynamoService)
	messageRepo := dynamo.NewMessageRepo(dynamoService)
	notificationRepo := dynamo.NewNotificationRepo(dynamoService)

	// Initialize the stream hub and services
	hub := stream.NewHub()

	notificationService := &services.NotificationService{
		Notifications: notificationRepo,
		Hub:           hub,
	}
	matchService := &services.MatchService{
		Profiles: profileRepo,
		Requests: requestRepo,
		Signals:  signalRepo,
		Matches:  matchRepo,
		Notifier: notificationService,
		Hub:      hub,
	}
	requestService := &services.RequestService{
		Requests: requestRepo,
		Profiles: profileRepo,
		Resolver: matchService,
	}
	chatService := &services.ChatService{
		Matches:  matchRepo,
		Messages: messageRepo,
		Profiles: profileRepo,
		Hub:      hub,
	}
	presenceService := &services.PresenceService{
		Profiles: profileRepo,
		Window:   time.Duration(cfg.PresenceWindowSeconds) * time.Second,
	}
	profileService := &services.ProfileService{Profiles: profileRepo}

	// Initialize the Socket.IO server
	socketServer := socket.NewSocketServer(hub, presenceService)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("❌ Socket.IO server error: %v", err)
		}
	}()
	defer socketServer.Close()

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to BuzzMe")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterProfileRoutes(r, profileService)
	routes.RegisterActionRoutes(r, matchService)
	routes.RegisterRequestRoutes(r, requestService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterPresenceRoutes(r, presenceService)
	routes.RegisterNotificationRoutes(r, notificationService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
