package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"gigspace/internal/adapter/api"
	"gigspace/internal/adapter/api/handler"
	apimiddleware "gigspace/internal/adapter/api/middleware"
	"gigspace/internal/adapter/api/router"
	adapterstore "gigspace/internal/adapter/store"
	"gigspace/internal/adapter/repository"
	domainstore "gigspace/internal/domain/store"
	"gigspace/internal/infrastructure/firebase"
	"gigspace/internal/infrastructure/memstore"
	"gigspace/internal/infrastructure/ratelimit"
	"gigspace/internal/infrastructure/storage"
	"gigspace/internal/infrastructure/websocket"
	"gigspace/internal/usecase"
	"gigspace/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer firestoreClient.Close()

	// The chat core runs against the DocumentStore contract; everything
	// else talks to Firestore directly.
	var docStore domainstore.DocumentStore
	switch cfg.StoreBackend {
	case "memory":
		log.Printf("Using in-memory document store")
		docStore = memstore.New()
	default:
		docStore = adapterstore.NewFirestoreStore(firestoreClient)
	}

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	jobRepo := repository.NewFirestoreJobRepository(firestoreClient)
	projectRepo := repository.NewFirestoreProjectRepository(firestoreClient)
	proposalRepo := repository.NewFirestoreProposalRepository(firestoreClient)
	freelancerRepo := repository.NewFirestoreFreelancerRepository(firestoreClient)
	chatRepo := repository.NewStoreChatRepository(docStore)

	firebaseAuth := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	authUseCase := usecase.NewAuthUseCase(firebaseAuth, userRepo)
	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuth)
	jobUseCase := usecase.NewJobUseCase(jobRepo)
	projectUseCase := usecase.NewProjectUseCase(projectRepo, userRepo)
	freelancerUseCase := usecase.NewFreelancerUseCase(freelancerRepo, userRepo)
	proposalUseCase := usecase.NewProposalUseCase(proposalRepo, projectRepo, chatRepo, rateLimiter)
	chatUseCase := usecase.NewChatUseCase(chatRepo, projectRepo, userRepo, rateLimiter, cfg.MessageWindow)

	wsManager := websocket.NewManager(chatUseCase)
	wsManager.Start(ctx)
	chatUseCase.SetWebSocketManager(wsManager)

	var storageClient *storage.CloudStorageClient
	if cfg.StorageBucket != "" {
		storageClient, err = storage.NewCloudStorageClient(ctx, cfg.StorageBucket, os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"))
		if err != nil {
			log.Fatalf("Failed to initialize storage client: %v", err)
		}
		defer storageClient.Close()
	}

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	router.Setup(e, router.Handlers{
		Auth:       handler.NewAuthHandler(authUseCase),
		User:       handler.NewUserHandler(userUseCase),
		Job:        handler.NewJobHandler(jobUseCase),
		Freelancer: handler.NewFreelancerHandler(freelancerUseCase),
		Project:    handler.NewProjectHandler(projectUseCase),
		Proposal:   handler.NewProposalHandler(proposalUseCase),
		Chat:       handler.NewChatHandler(chatUseCase),
		File:       handler.NewFileHandler(storageClient),
		WebSocket:  handler.NewWebSocketHandler(wsManager, authMiddleware),
		Health:     handler.NewHealthHandler(),
	}, authMiddleware, adminMiddleware)

	log.Printf("Starting server on port %s (%s)", cfg.ServerPort, cfg.Environment)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
