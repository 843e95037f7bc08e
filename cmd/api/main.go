// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Internal packages
	"github.com/Ecera-System/ESMatromonial-sub000/internal/auth"
	"github.com/Ecera-System/ESMatromonial-sub000/internal/common/database"
	"github.com/Ecera-System/ESMatromonial-sub000/internal/config"
	"github.com/Ecera-System/ESMatromonial-sub000/internal/match"
	"github.com/Ecera-System/ESMatromonial-sub000/internal/notification"
	"github.com/Ecera-System/ESMatromonial-sub000/internal/profile"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting ESMatrimonial Matching API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Printf("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis (optional)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable: %v, continuing without cache", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 6. Run database migrations
	log.Println("\n🔨 Step 6: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations:", err)
	}
	log.Println("✅ Database migrations completed")

	// 7. Initialize Auth system
	log.Println("\n🔐 Step 7: Initializing authentication...")
	authService := auth.NewService(cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Authentication initialized")

	// 8. Initialize Profile module
	log.Println("\n👤 Step 8: Initializing Profile module...")
	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo)
	profileHandler := profile.NewHandler(profileService)
	log.Println("✅ Profile module initialized")

	// 9. Initialize Notification module
	log.Println("\n🔔 Step 9: Initializing Notification module...")
	notificationRepo := notification.NewPostgresRepository(db)

	var emailService notification.EmailService
	if cfg.EnableEmailNotifications {
		switch cfg.EmailProvider {
		case "sendgrid":
			emailService, err = notification.NewSendGridEmailService(cfg.SendGridAPIKey, cfg.EmailFrom, "ESMatrimonial")
			if err != nil {
				log.Printf("⚠️  Failed to initialize SendGrid: %v, using mock", err)
				emailService = notification.NewMockEmailService()
			} else {
				log.Println("   ✅ Using SendGrid for emails")
			}
		default:
			emailService = notification.NewMockEmailService()
			log.Println("   📝 Using mock email service (development mode)")
		}
	}

	var smsService notification.SMSService
	if cfg.EnableSMSNotifications {
		switch cfg.SMSProvider {
		case "twilio":
			smsService, err = notification.NewTwilioSMSService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
			if err != nil {
				log.Printf("⚠️  Failed to initialize Twilio: %v, using mock", err)
				smsService = notification.NewMockSMSService()
			} else {
				log.Println("   ✅ Using Twilio for SMS")
			}
		default:
			smsService = notification.NewMockSMSService()
			log.Println("   📝 Using mock SMS service (development mode)")
		}
	}

	notificationService := notification.NewService(notificationRepo, profileRepo, emailService, smsService)
	notificationHandler := notification.NewHandler(notificationService)
	log.Println("✅ Notification module initialized")

	// 10. Initialize Match module
	log.Println("\n💞 Step 10: Initializing Match module...")
	matchRepo := match.NewPostgresRepository(db)
	exclusions := match.NewExclusionStore(db, redisClient, cfg.ExclusionCacheTTL)
	matchService := match.NewService(matchRepo, profileRepo, exclusions, notificationService, match.Config{
		CandidatePoolLimit:   cfg.CandidatePoolLimit,
		ActiveUserWindowDays: cfg.ActiveUserWindowDays,
	})
	matchHandler := match.NewHandler(matchService)
	log.Println("✅ Match module initialized")

	// 11. Start recommendation scheduler
	log.Println("\n⏰ Step 11: Starting recommendation scheduler...")
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	scheduler := match.NewScheduler(matchService, cfg.DailyGenerationHour, cfg.GenerationTimeout)
	scheduler.Start(schedulerCtx)
	log.Printf("✅ Daily generation scheduled for %02d:00", cfg.DailyGenerationHour)

	// 12. Setup routes
	log.Println("\n🛣️  Step 12: Setting up routes...")
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	profile.RegisterRoutes(router, profileHandler, authMiddleware)
	log.Println("   ✅ Profile routes registered")

	match.RegisterRoutes(router, matchHandler, authMiddleware)
	log.Println("   ✅ Recommendation routes registered")

	notification.RegisterRoutes(router, notificationHandler, authMiddleware)
	log.Println("   ✅ Notification routes registered")

	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 13. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")
	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// requestIDMiddleware tags every request with an ID for log correlation
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// runMigrations creates the schema on startup
func runMigrations(db *sqlx.DB) error {
	log.Println("   - Creating/updating tables...")

	migrations := []string{
		// Users table with profile and partner preference columns
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL DEFAULT '',
			date_of_birth DATE,
			gender VARCHAR(20) NOT NULL DEFAULT '',
			height VARCHAR(10),
			weight VARCHAR(10),
			marital_status VARCHAR(50),
			religion VARCHAR(100),
			caste VARCHAR(100),
			mother_tongue VARCHAR(100),
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(20),
			country VARCHAR(100),
			state VARCHAR(100),
			city VARCHAR(100),
			education VARCHAR(255),
			education_details TEXT,
			occupation VARCHAR(255),
			annual_income VARCHAR(100),
			work_location VARCHAR(255),
			diet VARCHAR(50),
			smoking VARCHAR(50),
			drinking VARCHAR(50),
			hobbies TEXT,
			interests TEXT,
			about_me TEXT,
			partner_gender VARCHAR(20),
			partner_age_min INTEGER,
			partner_age_max INTEGER,
			partner_height_min VARCHAR(10),
			partner_height_max VARCHAR(10),
			partner_education VARCHAR(255),
			partner_occupation VARCHAR(255),
			partner_income VARCHAR(100),
			partner_country VARCHAR(100),
			partner_location VARCHAR(100),
			partner_religion VARCHAR(100),
			partner_caste VARCHAR(100),
			partner_marital_status VARCHAR(50),
			partner_about TEXT,
			photos TEXT[] NOT NULL DEFAULT '{}',
			is_verified BOOLEAN DEFAULT FALSE,
			account_status VARCHAR(20) DEFAULT 'active',
			last_active TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Skipped users (exclusion set)
		`CREATE TABLE IF NOT EXISTS skipped_users (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			skipped_user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, skipped_user_id)
		)`,

		// Daily recommendations, one per user per day
		`CREATE TABLE IF NOT EXISTS daily_recommendations (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			recommended_user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			match_score DOUBLE PRECISION NOT NULL,
			match_percentage INTEGER NOT NULL,
			is_viewed BOOLEAN DEFAULT FALSE,
			is_skipped BOOLEAN DEFAULT FALSE,
			is_liked BOOLEAN DEFAULT FALSE,
			recommendation_date DATE NOT NULL DEFAULT CURRENT_DATE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, recommendation_date)
		)`,

		// In-app notifications
		`CREATE TABLE IF NOT EXISTS notifications (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type VARCHAR(50) NOT NULL,
			title VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			link VARCHAR(255),
			is_read BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes for the matchmaking hot paths
		`CREATE INDEX IF NOT EXISTS idx_users_matching ON users(gender, account_status, is_verified)`,
		`CREATE INDEX IF NOT EXISTS idx_users_last_active ON users(last_active)`,
		`CREATE INDEX IF NOT EXISTS idx_skipped_users_user ON skipped_users(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_recommendations_user_date ON daily_recommendations(user_id, recommendation_date)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, is_read)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
