package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/adaptlearn/backend/internal/auth"
	"github.com/adaptlearn/backend/internal/database"
	"github.com/adaptlearn/backend/internal/generator"
	"github.com/adaptlearn/backend/internal/items"
	"github.com/adaptlearn/backend/internal/middleware"
	"github.com/adaptlearn/backend/internal/responses"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	gen := generator.NewGenerator()
	itemStore := items.NewStore(db)
	itemService := items.NewService(itemStore, gen)
	responseStore := responses.NewStore(db)
	responseService := responses.NewService(responseStore, itemService)

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	itemHandler := items.NewHandler(itemService)
	responseHandler := responses.NewHandler(responseService)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentLearner).Methods("GET")

	protected.HandleFunc("/items", itemHandler.CreateItem).Methods("POST")
	protected.HandleFunc("/items", itemHandler.ListItems).Methods("GET")
	protected.HandleFunc("/items/{id:[0-9]+}", itemHandler.GetItem).Methods("GET")
	protected.HandleFunc("/items/{id:[0-9]+}/answer", responseHandler.SubmitAnswer).Methods("POST")

	protected.HandleFunc("/ability", responseHandler.GetAbility).Methods("GET")
	protected.HandleFunc("/next-item", responseHandler.NextItem).Methods("GET")
	protected.HandleFunc("/blockages", responseHandler.GetBlockages).Methods("GET")
	protected.HandleFunc("/history", responseHandler.GetHistory).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Background item generation worker
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go itemService.StartGenerationWorker(ctx)

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
