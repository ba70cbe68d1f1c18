package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirhq/hadir-backend-go/internal/config"
	"github.com/hadirhq/hadir-backend-go/internal/domain/auth"
	"github.com/hadirhq/hadir-backend-go/internal/handler/http/middleware"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Employee   EmployeeHandler
	Policy     PolicyHandler
	Payroll    PayrollHandler
	Dashboard  DashboardHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hadir-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Get("/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(auth.PermissionAttendanceScan)).
					Post("/scan", h.Attendance.Scan)
				r.With(middleware.RequirePermission(auth.PermissionQRDisplay)).
					Get("/qr-token", h.Attendance.QRToken)
				r.With(middleware.RequirePermission(auth.PermissionAttendanceViewOwn)).
					Get("/me", h.Attendance.MyAttendance)
				r.With(middleware.RequirePermission(auth.PermissionAttendanceViewAll)).
					Get("/", h.Attendance.List)
				r.With(middleware.RequirePermission(auth.PermissionAttendanceManage)).
					Patch("/{id}", h.Attendance.Update)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(auth.PermissionEmployeeViewAll)).
					Get("/", h.Employee.List)
				r.With(middleware.RequirePermission(auth.PermissionEmployeeViewAll)).
					Get("/{id}", h.Employee.Get)
				r.With(middleware.RequirePermission(auth.PermissionEmployeeManage)).
					Post("/", h.Employee.Create)
				r.With(middleware.RequirePermission(auth.PermissionEmployeeManage)).
					Patch("/{id}", h.Employee.Update)
				r.With(middleware.RequirePermission(auth.PermissionEmployeeManage)).
					Delete("/{id}", h.Employee.Deactivate)
			})

			r.Route("/settings/policy", func(r chi.Router) {
				r.Use(middleware.RequirePermission(auth.PermissionSettingsManage))
				r.Get("/", h.Policy.Get)
				r.Put("/", h.Policy.Update)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.With(middleware.RequirePermission(auth.PermissionPayrollGenerate)).
					Post("/preview", h.Payroll.Preview)
				r.With(middleware.RequirePermission(auth.PermissionPayrollDisburse)).
					Post("/disburse", h.Payroll.Disburse)
				r.With(middleware.RequirePermission(auth.PermissionPayrollViewAll)).
					Get("/history", h.Payroll.ListHistory)
				r.With(middleware.RequirePermission(auth.PermissionPayrollViewAll)).
					Get("/history/period", h.Payroll.GetHistory)
			})

			r.With(middleware.RequirePermission(auth.PermissionDashboardView)).
				Get("/dashboard/summary", h.Dashboard.TodaySummary)
		})
	})

	return r
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
