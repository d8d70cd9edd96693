package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/user"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/middleware"
	"github.com/novatech-uz/company-backend-go/internal/pkg/jwt"
	"github.com/novatech-uz/company-backend-go/internal/pkg/metrics"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth        AuthHandler
	Attendance  AttendanceHandler
	Employee    EmployeeHandler
	Product     ProductHandler
	Technology  TechnologyHandler
	Award       AwardHandler
	Testimonial TestimonialHandler
	Feature     FeatureHandler
	Contact     ContactHandler
	Dashboard   DashboardHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	Metrics        *metrics.Metrics
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(opts.Metrics.Middleware)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	adminOnly := middleware.RequireRole(user.RoleAdmin, user.RoleSuperAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromCookie))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Get("/me", h.Auth.Me)
				r.Put("/details", h.Auth.UpdateDetails)
				r.Put("/password", h.Auth.UpdatePassword)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.With(middleware.RequirePermission(user.PermissionAttendanceCheckIn)).Post("/checkin", h.Attendance.CheckIn)
			r.With(middleware.RequirePermission(user.PermissionAttendanceCheckIn)).Put("/checkout/{id}", h.Attendance.CheckOut)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/today", h.Attendance.GetToday)
				r.Get("/stats", h.Attendance.GetStats)
				r.Get("/report/monthly", h.Attendance.GetMonthlyReport)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/employee/{employeeId}", h.Attendance.GetByEmployee)

				r.Get("/", h.Attendance.List)
				r.Post("/", h.Attendance.Create)
				r.Get("/{id}", h.Attendance.Get)
				r.Put("/{id}", h.Attendance.Update)
				r.Delete("/{id}", h.Attendance.Delete)
				r.With(middleware.RequirePermission(user.PermissionAttendanceApprove)).Put("/{id}/approve", h.Attendance.Approve)
			})
		})

		r.Route("/team", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Get("/featured", h.Employee.FeaturedEmployees)
			r.Get("/department/{department}", h.Employee.EmployeesByDepartment)
			r.Get("/{id}", h.Employee.GetEmployee)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Use(middleware.AdminOnly)
				r.Post("/", h.Employee.CreateEmployee)
				r.Put("/{id}", h.Employee.UpdateEmployee)
				r.Delete("/{id}", h.Employee.DeleteEmployee)
			})
		})

		contentAdmin := func(r chi.Router) {
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.RequirePermission(user.PermissionContentManage))
		}

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Get("/featured", h.Product.Featured)
			r.Get("/category/{category}", h.Product.ByCategory)

			r.Group(func(r chi.Router) {
				contentAdmin(r)
				r.Get("/stats", h.Product.Stats)
				r.Post("/", h.Product.Create)
				r.Put("/{id}", h.Product.Update)
				r.Delete("/{id}", h.Product.Delete)
			})

			r.Get("/{idOrSlug}", h.Product.Get)
		})

		r.Route("/technologies", func(r chi.Router) {
			r.Get("/", h.Technology.List)
			r.Get("/featured", h.Technology.Featured)
			r.Get("/category/{category}", h.Technology.ByCategory)
			r.Get("/{idOrSlug}", h.Technology.Get)

			r.Group(func(r chi.Router) {
				contentAdmin(r)
				r.Post("/", h.Technology.Create)
				r.Put("/{id}", h.Technology.Update)
				r.Delete("/{id}", h.Technology.Delete)
			})
		})

		r.Route("/awards", func(r chi.Router) {
			r.Get("/", h.Award.List)
			r.Get("/stats", h.Award.Stats)
			r.Get("/year/{year}", h.Award.ByYear)
			r.Get("/{id}", h.Award.Get)

			r.Group(func(r chi.Router) {
				contentAdmin(r)
				r.Post("/", h.Award.Create)
				r.Put("/{id}", h.Award.Update)
				r.Delete("/{id}", h.Award.Delete)
			})
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", h.Testimonial.List)
			r.Get("/featured", h.Testimonial.Featured)
			r.Get("/stats", h.Testimonial.Stats)
			r.Get("/rating/{rating}", h.Testimonial.ByRating)
			r.Get("/{id}", h.Testimonial.Get)

			r.Group(func(r chi.Router) {
				contentAdmin(r)
				r.Post("/", h.Testimonial.Create)
				r.Put("/{id}", h.Testimonial.Update)
				r.Delete("/{id}", h.Testimonial.Delete)
			})
		})

		r.Route("/features", func(r chi.Router) {
			r.Get("/", h.Feature.List)
			r.Get("/active", h.Feature.Active)
			r.Get("/{id}", h.Feature.Get)

			r.Group(func(r chi.Router) {
				contentAdmin(r)
				r.Post("/", h.Feature.Create)
				r.Put("/{id}", h.Feature.Update)
				r.Delete("/{id}", h.Feature.Delete)
			})
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", h.Contact.Create)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Use(middleware.RequirePermission(user.PermissionContactManage))
				r.Get("/", h.Contact.List)
				r.Get("/stats", h.Contact.Stats)
				r.Get("/{id}", h.Contact.Get)
				r.Put("/{id}", h.Contact.Update)
				r.Delete("/{id}", h.Contact.Delete)
				r.Post("/{id}/notes", h.Contact.AddNote)
				r.Put("/{id}/assign/{userId}", h.Contact.Assign)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.RequirePermission(user.PermissionDashboardView))
			r.Get("/overview", h.Dashboard.GetOverview)
			r.Get("/attendance", h.Dashboard.GetAttendance)
			r.Get("/products", h.Dashboard.GetProducts)
			r.Get("/team", h.Dashboard.GetTeam)
			r.Get("/contacts", h.Dashboard.GetContacts)
			r.Get("/analytics", h.Dashboard.GetAnalytics)
		})
	})
	return r
}
