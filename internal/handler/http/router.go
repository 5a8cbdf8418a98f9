package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/nimbus-hr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/jobs"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	JWTService     jwt.Service
	ReconcileQueue *jobs.Queue
	Location       *time.Location

	Auth       AuthHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Holiday    HolidayHandler
	Dashboard  DashboardHandler
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "nimbus-hrms"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", deps.Auth.Login)
			r.Post("/refresh", deps.Auth.Refresh)
			r.Post("/logout", deps.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))
			r.Use(middleware.ReconcileAfterWrite(deps.ReconcileQueue, deps.Location))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch-in", deps.Attendance.PunchIn)
				r.Post("/punch-out", deps.Attendance.PunchOut)
				r.Get("/today", deps.Attendance.Today)
				r.Get("/my", deps.Attendance.MyLog)
				r.Get("/calendar", deps.Attendance.Calendar)
				r.Get("/summary", deps.Attendance.Summary)
				r.Get("/stats", deps.Attendance.Stats)
				r.Get("/weekly", deps.Attendance.WeeklyChart)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/daily", deps.Attendance.Daily)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", deps.Leave.Apply)
				r.Get("/my", deps.Leave.History)
				r.Get("/balances", deps.Leave.Balances)
				r.Get("/stats", deps.Leave.Stats)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", deps.Leave.ListAll)
					r.Post("/{id}/approve", deps.Leave.Approve)
					r.Post("/{id}/reject", deps.Leave.Reject)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", deps.Holiday.List)
				r.Get("/upcoming", deps.Holiday.Upcoming)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", deps.Holiday.Create)
					r.Delete("/{id}", deps.Holiday.Delete)
				})
			})

			r.Get("/dashboard", deps.Dashboard.Overview)
		})
	})
	return r
}
