package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/sbnm007/traffic-management-system/internal/adapter/handler"
	"github.com/sbnm007/traffic-management-system/internal/adapter/repository/postgres"
	"github.com/sbnm007/traffic-management-system/internal/adapter/routing/osrm"
	"github.com/sbnm007/traffic-management-system/internal/core/services"
	"github.com/sbnm007/traffic-management-system/internal/platform/database"
	"github.com/sbnm007/traffic-management-system/internal/platform/metrics"
)

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using OS environment variables.")
	}

	dbConfig := database.Config{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "postgres"),
		Password: getenv("DB_PASSWORD", "postgres"),
		DBName:   getenv("DB_NAME", "road_capacity"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	var redisClient *redis.Client

	redisAddr := fmt.Sprintf("%s:%s", getenv("REDIS_HOST", "localhost"), getenv("REDIS_PORT", "6379"))
	log.Printf("Connecting to Redis at %s...", redisAddr)

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unavailable, continuing without caching: %v", err)
	} else {
		log.Println("Redis connected successfully!")
		redisClient = client
		defer redisClient.Close()
	}

	segmentRepo := postgres.NewSegmentRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	osrmURL := getenv("OSRM_SERVER_URL", "http://osrm-server:5000")
	routePlanner := osrm.NewClient(osrmURL, redisClient)

	bookingService := services.NewBookingService(segmentRepo, bookingRepo, routePlanner, redisClient)

	releaseInterval := 15 * time.Minute
	if val, err := strconv.Atoi(os.Getenv("RELEASE_INTERVAL_MINUTES")); err == nil && val > 0 {
		releaseInterval = time.Duration(val) * time.Minute
	}

	releaseService := services.NewReleaseService(segmentRepo, releaseInterval)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	go releaseService.Run(workerCtx)

	bookingHandler := handler.NewBookingHandler(bookingService)

	router := httprouter.New()

	router.POST("/api/bookings", metrics.Instrument("/api/bookings", bookingHandler.CreateBooking))
	router.GET("/api/bookings/:id", metrics.Instrument("/api/bookings/:id", bookingHandler.GetBooking))
	router.GET("/api/segments", metrics.Instrument("/api/segments", bookingHandler.GetSegments))
	router.GET("/api/segments/:id", metrics.Instrument("/api/segments/:id", bookingHandler.GetSegment))

	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())
	router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"healthy","time":%q}`, time.Now().Format(time.RFC3339))
	})

	port := getenv("PORT", "8080")

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
