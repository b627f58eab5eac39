package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/api"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/events"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/repository"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/scheduling"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/service"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/tracing"
	_ "github.com/abdelrahman-hamdy/itqan-platform-sub035/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	api.SetupGlobalHandler("schedule-service")

	shutdownTracer, err := tracing.InitTracerProvider("schedule-service")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations()
		return
	}

	db := connectDB()
	defer db.Close()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	eventPublisher, err := events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	loc := academyLocation()
	clock := scheduling.NewLocationClock(loc)

	sessionRepo := repository.NewPostgresSessionRepository(db)
	circleRepo := repository.NewPostgresCircleRepository(db)
	subscriptionRepo := repository.NewPostgresSubscriptionRepository(db)
	courseRepo := repository.NewPostgresCourseRepository(db)
	trialRepo := repository.NewPostgresTrialRepository(db)
	profileRepo := repository.NewPostgresTeacherProfileRepository(db)

	detector := scheduling.NewConflictDetector(sessionRepo, profileRepo, clock, bufferMinutes())

	scheduleService := service.NewScheduleService(
		sessionRepo, circleRepo, subscriptionRepo, courseRepo, trialRepo, profileRepo,
		detector, eventPublisher, clock,
	)

	scheduleHandler := api.NewScheduleHandler(scheduleService, loc)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "schedule-service"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")

	scheduleRoutes := v1.Group("/schedules")
	scheduleRoutes.Use(api.AuthMiddleware())
	scheduleRoutes.Post("/validate", scheduleHandler.ValidatePlan)
	scheduleRoutes.Post("/bulk", scheduleHandler.BulkSchedule)
	scheduleRoutes.Get("/availability", scheduleHandler.CheckAvailability)
	scheduleRoutes.Get("/recommendations", scheduleHandler.Recommendations)
	scheduleRoutes.Get("/status", scheduleHandler.SchedulingStatus)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8004"
	}

	log.Printf("Listening schedule-service on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

// academyLocation is the timezone all scheduling decisions run in. Teachers
// and students may be anywhere; the academy calendar is one timezone.
func academyLocation() *time.Location {
	name := os.Getenv("ACADEMY_TIMEZONE")
	if name == "" {
		name = "Africa/Cairo"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("WARNING: invalid ACADEMY_TIMEZONE %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

func bufferMinutes() int {
	raw := os.Getenv("SESSION_BUFFER_MINUTES")
	if raw == "" {
		return scheduling.DefaultBufferMinutes
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("WARNING: invalid SESSION_BUFFER_MINUTES %q, using default", raw)
		return scheduling.DefaultBufferMinutes
	}
	return n
}

func connectDB() *sqlx.DB {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations() {
	fmt.Println("Running database migrations...")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
