package http

import (
	"log/slog"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payslip-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the settings the router needs from the application config.
type RouterConfig struct {
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	logger *slog.Logger,
	JWTService jwt.Service,
	privileges user.PrivilegeChecker,
	payslipHandler PayslipHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payslips", func(r chi.Router) {
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payslipHandler.GetPayslip)
					r.Get("/other-inputs", payslipHandler.PreviewOtherInputs)
					r.Post("/send", payslipHandler.SendPayslip)

					// Payroll managers only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireGroup(privileges, user.GroupPayrollManager))
						r.Post("/finalize", payslipHandler.Finalize)
						r.Put("/period", payslipHandler.UpdatePeriod)
					})
				})

				r.With(middleware.RequireGroup(privileges, user.GroupPayrollManager)).
					Post("/finalize", payslipHandler.FinalizeBatch)
			})

			r.Get("/payroll/payment-days", payslipHandler.PaymentDays)
		})
	})
	return r
}
