package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	"github.com/lumiere-salon/salon-backend-go/internal/handler/http/middleware"
	"github.com/lumiere-salon/salon-backend-go/internal/handler/http/response"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/jwt"
)

// RouterConfig carries the settings the router needs from the environment.
type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	AllowedOrigins []string
	LogLevel       slog.Level
}

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Attendance   AttendanceHandler
	Sale         SaleHandler
	Payroll      PayrollHandler
	Notification NotificationHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	authenticated := func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Post("/sse-token", h.Auth.SSEToken)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			// EventSource authenticates with a short-lived token in the query
			r.Get("/stream", h.Notification.Stream)

			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			authenticated(r)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.Auth.Me)
				r.Get("/pages", h.Auth.Pages)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeView)).Get("/", h.Employee.ListEmployees)
				r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Post("/", h.Employee.CreateEmployee)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionEmployeeView)).Get("/", h.Employee.GetEmployee)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
						r.Put("/", h.Employee.UpdateEmployee)
						r.Delete("/", h.Employee.DeleteEmployee)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				// Staff clock themselves in and out
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)

				r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/", h.Attendance.List)
				r.With(middleware.RequirePermission(user.PermissionAttendanceManage)).Post("/", h.Attendance.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/", h.Attendance.Get)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
						r.Put("/", h.Attendance.Update)
						r.Delete("/", h.Attendance.Delete)
					})
				})
			})

			r.Route("/sales", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionSalesView)).Get("/", h.Sale.List)
				r.With(middleware.RequirePermission(user.PermissionSalesManage)).Post("/", h.Sale.Create)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequirePage(user.PagePayroll))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollView))
					r.Get("/payslips", h.Payroll.ListPayslips)
					r.Get("/payslips/{employeeId}", h.Payroll.GetPayslip)
					r.Get("/records", h.Payroll.ListPayrollRecords)
					r.Get("/records/{id}", h.Payroll.GetPayrollRecord)
					r.Get("/summary", h.Payroll.GetPayrollSummary)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
					r.Post("/generate", h.Payroll.GeneratePayroll)
					r.Post("/records/finalize", h.Payroll.FinalizePayroll)
					r.Delete("/records/{id}", h.Payroll.DeletePayrollRecord)
				})

				r.With(middleware.RequirePermission(user.PermissionReportsExport)).Get("/report", h.Payroll.DownloadReport)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
