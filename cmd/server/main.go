package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"als-tracker-api/internal/config"
	"als-tracker-api/internal/database"
	"als-tracker-api/internal/handlers"
	"als-tracker-api/internal/models"
	"als-tracker-api/internal/utils"
	"als-tracker-api/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	zapLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	// Initialize database (lazy singleton, opened here on first use)
	db, err := database.Get(cfg)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize JWT utility
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiration)

	// Create router
	router := mux.NewRouter()
	router.Use(handlers.RequestLogger(zapLogger))

	resetLimiter := rate.NewLimiter(rate.Every(time.Minute), 10)

	// Health check endpoint
	router.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Auth routes
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	{
		authRouter.HandleFunc("/login", handlers.Login(db.DB, jwtUtil)).Methods("POST")
		authRouter.HandleFunc("/password-reset/request", handlers.RateLimitMiddleware(resetLimiter)(handlers.RequestPasswordReset(db.DB))).Methods("POST")
		authRouter.HandleFunc("/password-reset/status", handlers.RateLimitMiddleware(resetLimiter)(handlers.PasswordResetStatus(db.DB))).Methods("POST")
	}

	// Authenticated routes
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(handlers.JWTMiddleware(jwtUtil))
	{
		apiRouter.HandleFunc("/login-history", handlers.GetLoginHistory(db.DB)).Methods("GET")

		// Students
		apiRouter.HandleFunc("/students", handlers.GetAllStudents(db.DB)).Methods("GET")
		apiRouter.HandleFunc("/students", handlers.CreateStudent(db.DB)).Methods("POST")
		apiRouter.HandleFunc("/students/{id:[0-9]+}", handlers.GetStudentByID(db.DB)).Methods("GET")
		apiRouter.HandleFunc("/students/{id:[0-9]+}", handlers.UpdateStudent(db.DB)).Methods("PUT")
		apiRouter.HandleFunc("/students/{id:[0-9]+}", handlers.DeleteStudent(db.DB)).Methods("DELETE")

		// Barangays
		apiRouter.HandleFunc("/barangays", handlers.GetAllBarangays(db.DB)).Methods("GET")
		apiRouter.HandleFunc("/barangays", handlers.CreateBarangay(db.DB)).Methods("POST")
		apiRouter.HandleFunc("/barangays/{id:[0-9]+}", handlers.DeleteBarangay(db.DB)).Methods("DELETE")

		// Programs
		apiRouter.HandleFunc("/programs", handlers.GetAllPrograms(db.DB)).Methods("GET")
		apiRouter.HandleFunc("/programs", handlers.CreateProgram(db.DB)).Methods("POST")
		apiRouter.HandleFunc("/programs/{id:[0-9]+}", handlers.UpdateProgram(db.DB)).Methods("PUT")
		apiRouter.HandleFunc("/programs/{id:[0-9]+}", handlers.DeleteProgram(db.DB)).Methods("DELETE")

		// Progress events
		apiRouter.HandleFunc("/events", handlers.GetAllEvents(db.DB)).Methods("GET")
		apiRouter.HandleFunc("/events", handlers.CreateEvent(db.DB)).Methods("POST")
		apiRouter.HandleFunc("/events/{id:[0-9]+}", handlers.DeleteEvent(db.DB)).Methods("DELETE")
	}

	// Master admin routes
	masterRouter := apiRouter.PathPrefix("").Subrouter()
	masterRouter.Use(handlers.RequireRole(models.RoleMasterAdmin))
	{
		masterRouter.HandleFunc("/password-reset/requests", handlers.ListResetRequests(db.DB)).Methods("GET")
		masterRouter.HandleFunc("/password-reset/requests/{id}/approve", handlers.ApproveResetRequest(db.DB)).Methods("POST")
		masterRouter.HandleFunc("/password-reset/requests/{id}/deny", handlers.DenyResetRequest(db.DB)).Methods("POST")

		masterRouter.HandleFunc("/users", handlers.GetAllUsers(db.DB)).Methods("GET")
		masterRouter.HandleFunc("/users", handlers.Register(db.DB)).Methods("POST")
		masterRouter.HandleFunc("/users/{id:[0-9]+}", handlers.UpdateUser(db.DB)).Methods("PUT")
		masterRouter.HandleFunc("/users/{id:[0-9]+}/bypass", handlers.GrantBypass(db.DB, cfg.BypassTTL)).Methods("POST")
		masterRouter.HandleFunc("/users/{id:[0-9]+}/bypass", handlers.RevokeBypass(db.DB)).Methods("DELETE")
	}

	// CORS configuration
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: corsHandler.Handler(router),
	}

	go func() {
		zapLogger.Info("Server running", zap.String("port", cfg.AppPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zapLogger.Error("Forced shutdown", zap.Error(err))
	}
}
