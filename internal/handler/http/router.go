package http

import (
	"log/slog"
	"os"

	"github.com/fieldpay/commission-backend-go/internal/handler/http/middleware"
	"github.com/fieldpay/commission-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	employeeHandler EmployeeHandler,
	businessUnitHandler BusinessUnitHandler,
	payPeriodHandler PayPeriodHandler,
	uploadHandler UploadHandler,
	commissionHandler CommissionHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fieldpay-commission"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
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
	r.Use(chiMiddleware.Heartbeat("/ping"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Post("/", employeeHandler.CreateEmployee)
				r.Get("/summary", employeeHandler.GetSummary)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.GetEmployee)
					r.Put("/", employeeHandler.UpdateEmployee)
					r.Post("/deactivate", employeeHandler.DeactivateEmployee)

					r.Route("/overrides", func(r chi.Router) {
						r.Get("/", employeeHandler.ListRateOverrides)
						r.Put("/", employeeHandler.UpsertRateOverride)
						r.Delete("/{unitID}", employeeHandler.RemoveRateOverride)
					})
				})
			})

			r.Route("/business-units", func(r chi.Router) {
				r.Get("/", businessUnitHandler.ListBusinessUnits)
				r.Post("/", businessUnitHandler.CreateBusinessUnit)
				r.Post("/validate-setup", businessUnitHandler.ValidateSetup)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", businessUnitHandler.GetBusinessUnit)
					r.Put("/", businessUnitHandler.UpdateBusinessUnit)
				})
			})

			r.Route("/pay-periods", func(r chi.Router) {
				r.Get("/", payPeriodHandler.ListPeriods)
				r.Put("/schedule", payPeriodHandler.UpsertScheduleConfig)
				r.Get("/schedule", payPeriodHandler.GetScheduleConfig)
				r.Post("/generate", payPeriodHandler.GeneratePeriods)
				r.Get("/current", payPeriodHandler.GetCurrentPeriod)
				r.Get("/stats", payPeriodHandler.GetStats)
				r.Get("/{id}", payPeriodHandler.GetPeriod)
			})

			r.Route("/uploads", func(r chi.Router) {
				r.Post("/{kind}", uploadHandler.Upload)
				r.Get("/batches", uploadHandler.ListBatches)
				r.Get("/batches/{id}", uploadHandler.GetBatch)
			})

			r.Route("/commissions", func(r chi.Router) {
				r.Post("/calculate", commissionHandler.Calculate)
				r.Get("/breakdown", commissionHandler.GetBreakdown)
				r.Get("/summary", commissionHandler.GetSummary)
			})
		})
	})
	return r
}
