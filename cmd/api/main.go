package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/fieldpay/commission-backend-go/internal/config"
	"github.com/fieldpay/commission-backend-go/internal/domain/businessunit"
	"github.com/fieldpay/commission-backend-go/internal/fixtures"
	appHTTP "github.com/fieldpay/commission-backend-go/internal/handler/http"
	"github.com/fieldpay/commission-backend-go/internal/pkg/cache"
	"github.com/fieldpay/commission-backend-go/internal/pkg/database"
	"github.com/fieldpay/commission-backend-go/internal/pkg/jwt"
	"github.com/fieldpay/commission-backend-go/internal/pkg/storage"
	"github.com/fieldpay/commission-backend-go/internal/repository/postgresql"
	businessUnitService "github.com/fieldpay/commission-backend-go/internal/service/businessunit"
	commissionService "github.com/fieldpay/commission-backend-go/internal/service/commission"
	datasetService "github.com/fieldpay/commission-backend-go/internal/service/dataset"
	employeeService "github.com/fieldpay/commission-backend-go/internal/service/employee"
	payPeriodService "github.com/fieldpay/commission-backend-go/internal/service/payperiod"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	// The breakdown cache is an optimization; the API stays up without it.
	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("redis unavailable, breakdown caching disabled", "error", err)
		redisClient = nil
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	unitRepo := postgresql.NewBusinessUnitRepository(db)
	payPeriodRepo := postgresql.NewPayPeriodRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	commissionRepo := postgresql.NewCommissionRepository(db)
	uploadRepo := postgresql.NewUploadRepository(db)

	if err := seedDefaultUnits(ctx, unitRepo); err != nil {
		log.Fatal("Failed to seed default business units:", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, unitRepo)
	businessUnitSvc := businessUnitService.NewBusinessUnitService(unitRepo, employeeRepo, jobRepo, payPeriodRepo)
	payPeriodSvc := payPeriodService.NewPayPeriodService(payPeriodRepo)
	datasetSvc := datasetService.NewDatasetService(
		db,
		uploadRepo,
		timesheetRepo,
		jobRepo,
		unitRepo,
		payPeriodRepo,
		fileStorage,
		cfg.Upload.FallbackUnit,
	)
	commissionSvc := commissionService.NewCommissionService(
		commissionRepo,
		payPeriodRepo,
		employeeRepo,
		unitRepo,
		timesheetRepo,
		jobRepo,
		redisClient,
		cfg.Payroll.OvertimeMultiplier,
		cfg.Payroll.DoubleTimeMultiplier,
	)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	businessUnitHandler := appHTTP.NewBusinessUnitHandler(businessUnitSvc)
	payPeriodHandler := appHTTP.NewPayPeriodHandler(payPeriodSvc)
	uploadHandler := appHTTP.NewUploadHandler(datasetSvc)
	commissionHandler := appHTTP.NewCommissionHandler(commissionSvc)

	router := appHTTP.NewRouter(
		JWTService,
		employeeHandler,
		businessUnitHandler,
		payPeriodHandler,
		uploadHandler,
		commissionHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

// seedDefaultUnits populates an empty installation with the standard trade
// units. Existing configuration is never touched.
func seedDefaultUnits(ctx context.Context, unitRepo businessunit.BusinessUnitRepository) error {
	count, err := unitRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, unit := range fixtures.GetDefaultBusinessUnits() {
		if _, err := unitRepo.Create(ctx, unit); err != nil {
			return err
		}
	}
	slog.Info("seeded default business units")
	return nil
}
