package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"seventyFiveHardAPI/handlers"
	"seventyFiveHardAPI/internal/blob"
	"seventyFiveHardAPI/internal/database"
	"seventyFiveHardAPI/internal/notification"
	"seventyFiveHardAPI/internal/store"
	"seventyFiveHardAPI/middleware"
	"seventyFiveHardAPI/services"
)

var (
	dbPool              *pgxpool.Pool
	userService         *services.UserService
	challengeService    *services.ChallengeService
	taskService         *services.TaskService
	photoService        *services.PhotoService
	notificationService *services.NotificationService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := database.Migrate(dbURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Println("Database migrations applied")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to Postgres")

	st := store.NewPostgresStore(dbPool)
	locks := services.NewUserLocks()

	photoStore, err := blob.NewFirebaseStorage(ctx, "./serviceAccountKey.json")
	if err != nil {
		log.Fatal("Failed to initialize photo storage:", err)
	}

	userService = services.NewUserService(st)
	notificationService = services.NewNotificationService(st)
	challengeService = services.NewChallengeService(st, locks)
	taskService = services.NewTaskService(st, locks, notificationService)
	photoService = services.NewPhotoService(st, photoStore, locks)

	fcmService, err := notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	userHandler := handlers.NewUserHandler(userService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	taskHandler := handlers.NewTaskHandler(taskService)
	uploadHandler := handlers.NewUploadHandler(photoService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	webhookHandler := handlers.NewWebhookHandler(userService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "seventyFiveHard-api"}`))
	}).Methods("GET")

	r.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/delete-account", userHandler.DeleteAccount).Methods("DELETE")

	protected.HandleFunc("/challenge/start", challengeHandler.StartChallenge).Methods("POST")
	protected.HandleFunc("/challenge/reset", challengeHandler.ResetChallenge).Methods("POST")
	protected.HandleFunc("/challenge/complete", challengeHandler.CompleteChallenge).Methods("POST")
	protected.HandleFunc("/challenge/progress", challengeHandler.GetProgress).Methods("GET")
	protected.HandleFunc("/challenge/share", challengeHandler.ShareProgress).Methods("GET")

	protected.HandleFunc("/tasks/current", taskHandler.GetCurrentDay).Methods("GET")
	protected.HandleFunc("/tasks/update", taskHandler.UpdateTasks).Methods("PUT")
	protected.HandleFunc("/tasks/complete-day", taskHandler.CompleteDay).Methods("POST")
	protected.HandleFunc("/tasks/history", taskHandler.GetDayHistory).Methods("GET")

	protected.HandleFunc("/upload/progress-photo", uploadHandler.UploadProgressPhoto).Methods("POST")
	protected.HandleFunc("/upload/progress-photos", uploadHandler.GetProgressPhotos).Methods("GET")
	protected.HandleFunc("/upload/progress-photo/{photoId}", uploadHandler.DeleteProgressPhoto).Methods("DELETE")

	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
