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

	"github.com/nimbus-hr/hrms-backend-go/internal/config"
	appHTTP "github.com/nimbus-hr/hrms-backend-go/internal/handler/http"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/cron"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/database"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/jobs"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/zk"
	"github.com/nimbus-hr/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/nimbus-hr/hrms-backend-go/internal/service/attendance"
	authService "github.com/nimbus-hr/hrms-backend-go/internal/service/auth"
	"github.com/nimbus-hr/hrms-backend-go/internal/service/autoleave"
	dashboardService "github.com/nimbus-hr/hrms-backend-go/internal/service/dashboard"
	holidayService "github.com/nimbus-hr/hrms-backend-go/internal/service/holiday"
	leaveService "github.com/nimbus-hr/hrms-backend-go/internal/service/leave"
	syncService "github.com/nimbus-hr/hrms-backend-go/internal/service/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	loc := cfg.Location()
	lateHour, lateMinute := cfg.LateThresholdClock()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	entitlementRepo := postgresql.NewEntitlementRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	checkpointRepo := postgresql.NewCheckpointRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, leaveRepo, holidayRepo, loc, lateHour, lateMinute)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, entitlementRepo, loc)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, loc)
	authSvc := authService.NewAuthService(userRepo, JWTService)
	dashboardSvc := dashboardService.NewDashboardService(attendanceSvc, leaveSvc, holidaySvc, loc)

	runTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}
	adjuster := autoleave.NewAdjuster(attendanceRepo, leaveRepo, runTx, loc)

	reconcileQueue := jobs.NewQueue("auto-leave", adjuster.HandleJob, jobs.QueueConfig{
		Workers:    4,
		BufferSize: 64,
		Delay:      2 * time.Second,
	})
	reconcileQueue.Start(context.Background())
	defer reconcileQueue.Stop()

	device := fmt.Sprintf("%s:%d", cfg.Biometric.Host, cfg.Biometric.Port)
	terminal := zk.NewClient(cfg.Biometric.Host, cfg.Biometric.Port, cfg.Biometric.ConnectTimeout, cfg.Biometric.ReadTimeout, loc)
	defer func() {
		if err := terminal.Disconnect(); err != nil {
			slog.Warn("Failed to disconnect from biometric terminal", "error", err)
		}
	}()
	syncer := syncService.NewBiometricSyncer(device, syncService.NewDeviceSource(terminal), userRepo, checkpointRepo, attendanceSvc)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("biometric-sync", cfg.Biometric.PollInterval, syncer.Run)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:     JWTService,
		ReconcileQueue: reconcileQueue,
		Location:       loc,
		Auth:           appHTTP.NewAuthHandler(authSvc, JWTService),
		Attendance:     appHTTP.NewAttendanceHandler(attendanceSvc, loc),
		Leave:          appHTTP.NewLeaveHandler(leaveSvc),
		Holiday:        appHTTP.NewHolidayHandler(holidaySvc),
		Dashboard:      appHTTP.NewDashboardHandler(dashboardSvc),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
