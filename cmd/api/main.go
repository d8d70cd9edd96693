package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/novatech-uz/company-backend-go/internal/config"
	appHTTP "github.com/novatech-uz/company-backend-go/internal/handler/http"
	"github.com/novatech-uz/company-backend-go/internal/pkg/cache"
	"github.com/novatech-uz/company-backend-go/internal/pkg/clock"
	"github.com/novatech-uz/company-backend-go/internal/pkg/cron"
	"github.com/novatech-uz/company-backend-go/internal/pkg/database"
	"github.com/novatech-uz/company-backend-go/internal/pkg/email"
	"github.com/novatech-uz/company-backend-go/internal/pkg/jwt"
	"github.com/novatech-uz/company-backend-go/internal/pkg/metrics"
	"github.com/novatech-uz/company-backend-go/internal/repository/postgresql"
	attendanceService "github.com/novatech-uz/company-backend-go/internal/service/attendance"
	serviceAuth "github.com/novatech-uz/company-backend-go/internal/service/auth"
	awardService "github.com/novatech-uz/company-backend-go/internal/service/award"
	contactService "github.com/novatech-uz/company-backend-go/internal/service/contact"
	dashboardService "github.com/novatech-uz/company-backend-go/internal/service/dashboard"
	employeeService "github.com/novatech-uz/company-backend-go/internal/service/employee"
	featureService "github.com/novatech-uz/company-backend-go/internal/service/feature"
	productService "github.com/novatech-uz/company-backend-go/internal/service/product"
	technologyService "github.com/novatech-uz/company-backend-go/internal/service/technology"
	testimonialService "github.com/novatech-uz/company-backend-go/internal/service/testimonial"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	schedule, err := clock.NewSchedule(
		cfg.Attendance.Timezone,
		cfg.Attendance.StartTime,
		cfg.Attendance.GraceMinutes,
		cfg.Attendance.StandardHours,
	)
	if err != nil {
		slog.Error("Invalid attendance schedule", "error", err)
		os.Exit(1)
	}
	clk := clock.System{}

	appMetrics := metrics.New()

	// Redis is optional; without it every cache lookup is a miss.
	var redisClient *redis.Client
	if addr := cfg.RedisAddr(); addr != "" {
		redisClient, err = cache.NewRedisClient(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Warn("Redis unavailable, caching disabled", "addr", addr, "error", err)
			redisClient = nil
		}
	}
	appCache := cache.New(redisClient, cfg.Redis.TTL, appMetrics)
	defer appCache.Close()

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	contactRepo := postgresql.NewContactRepository(db)
	productRepo := postgresql.NewProductRepository(db)
	technologyRepo := postgresql.NewTechnologyRepository(db)
	awardRepo := postgresql.NewAwardRepository(db)
	testimonialRepo := postgresql.NewTestimonialRepository(db)
	featureRepo := postgresql.NewFeatureRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		slog.Error("Failed to initialize email service", "error", err)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.JWT.CookieSecure)

	authSvc := serviceAuth.NewAuthService(transactor, userRepo, refreshTokenRepo, JWTService, clk)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, clk, schedule, appCache, appMetrics)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, appCache)
	contactSvc := contactService.NewContactService(transactor, contactRepo, userRepo, appCache, emailService)
	productSvc := productService.NewProductService(productRepo, appCache)
	technologySvc := technologyService.NewTechnologyService(technologyRepo, appCache)
	awardSvc := awardService.NewAwardService(awardRepo, appCache)
	testimonialSvc := testimonialService.NewTestimonialService(testimonialRepo, appCache)
	featureSvc := featureService.NewFeatureService(featureRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, contactRepo, productRepo, clk, schedule, appCache)

	handlers := appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(JWTService, authSvc),
		Attendance:  appHTTP.NewAttendanceHandler(attendanceSvc),
		Employee:    appHTTP.NewEmployeeHandler(employeeSvc),
		Product:     appHTTP.NewProductHandler(productSvc),
		Technology:  appHTTP.NewTechnologyHandler(technologySvc),
		Award:       appHTTP.NewAwardHandler(awardSvc),
		Testimonial: appHTTP.NewTestimonialHandler(testimonialSvc),
		Feature:     appHTTP.NewFeatureHandler(featureSvc),
		Contact:     appHTTP.NewContactHandler(contactSvc),
		Dashboard:   appHTTP.NewDashboardHandler(dashboardSvc),
	}

	router := appHTTP.NewRouter(JWTService, handlers, appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        appMetrics,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler()
	if cfg.Attendance.AutoCloseInterval > 0 {
		cron.NewAttendanceJobs(attendanceSvc, cfg.Attendance.AutoCloseInterval).RegisterJobs(scheduler)
	}
	scheduler.Start(ctx)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
}
