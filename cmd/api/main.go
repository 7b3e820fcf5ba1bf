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

	"github.com/lumiere-salon/salon-backend-go/internal/config"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/notification"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/sale"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/user"
	appHTTP "github.com/lumiere-salon/salon-backend-go/internal/handler/http"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/cache"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/cron"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/database"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/jwt"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/payrollapi"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/sse"
	"github.com/lumiere-salon/salon-backend-go/internal/repository/memory"
	"github.com/lumiere-salon/salon-backend-go/internal/repository/postgresql"
	attendanceService "github.com/lumiere-salon/salon-backend-go/internal/service/attendance"
	serviceAuth "github.com/lumiere-salon/salon-backend-go/internal/service/auth"
	employeeService "github.com/lumiere-salon/salon-backend-go/internal/service/employee"
	notificationService "github.com/lumiere-salon/salon-backend-go/internal/service/notification"
	payrollService "github.com/lumiere-salon/salon-backend-go/internal/service/payroll"
	saleService "github.com/lumiere-salon/salon-backend-go/internal/service/sale"
	"github.com/redis/go-redis/v9"
)

type repositories struct {
	user         user.UserRepository
	employee     employee.EmployeeRepository
	attendance   attendance.AttendanceRepository
	sale         sale.SaleRepository
	payroll      payroll.PayrollRepository
	notification notification.Repository
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	// Payslip sources
	source, invalidate, closeSource, err := buildPayslipSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	// Notifications
	notifSvc := notificationService.NewNotificationService(repos.notification, sse.NewHub(0), notificationService.Config{})
	notifSvc.Start(ctx)
	defer notifSvc.Stop()
	announcer := notificationService.NewAnnouncer(notifSvc, repos.user)

	// Services
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authService := serviceAuth.NewAuthService(repos.user, JWTService)
	employeeSvc := employeeService.NewEmployeeService(repos.employee, repos.payroll)
	saleSvc := saleService.NewSaleService(repos.sale, repos.employee)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.employee, attendanceService.Options{
		DefaultShiftStart: cfg.Payroll.ScheduledStart,
		Location:          loc,
		Changed: func(ctx context.Context, employeeID string, date time.Time) {
			invalidate(ctx, employeeID, payroll.Period{Month: int(date.Month()), Year: date.Year()})
		},
	})
	payrollSvc := payrollService.NewPayrollService(
		repos.payroll,
		repos.employee,
		repos.attendance,
		repos.sale,
		source,
		payrollService.Options{
			BatchConcurrency: cfg.Payroll.BatchConcurrency,
			Currency:         cfg.Payroll.Currency,
			Generated:        announcer.PayrollGenerated,
			Finalized:        announcer.PayrollFinalized,
		},
	)

	// Background jobs
	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(repos.attendance, repos.user, notifSvc, cron.AttendanceJobsConfig{
		Interval:  cfg.Notification.Interval,
		LongShift: cfg.Notification.LongShift,
		Location:  loc,
	}).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        cfg.App.Name,
			Version:        cfg.App.Version,
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.Handlers{
			Auth:         appHTTP.NewAuthHandler(JWTService, authService),
			Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
			Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
			Sale:         appHTTP.NewSaleHandler(saleSvc),
			Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
			Notification: appHTTP.NewNotificationHandler(notifSvc, JWTService),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "data_source", cfg.App.DataSource)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.App.DataSource == config.DataSourcePostgres {
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return &repositories{
			user:         postgresql.NewUserRepository(db),
			employee:     postgresql.NewEmployeeRepository(db),
			attendance:   postgresql.NewAttendanceRepository(db),
			sale:         postgresql.NewSaleRepository(db),
			payroll:      postgresql.NewPayrollRepository(db),
			notification: postgresql.NewNotificationRepository(db),
			close:        db.Close,
		}, nil
	}

	store := memory.NewStore()
	if err := store.Seed(cfg.App.SeedPassword, time.Now().In(cfg.Location())); err != nil {
		return nil, fmt.Errorf("seed memory store: %w", err)
	}
	slog.Warn("using in-memory demo data")
	return &repositories{
		user:         memory.NewUserRepository(store),
		employee:     memory.NewEmployeeRepository(store),
		attendance:   memory.NewAttendanceRepository(store),
		sale:         memory.NewSaleRepository(store),
		payroll:      memory.NewPayrollRepository(store),
		notification: memory.NewNotificationRepository(store),
		close:        func() {},
	}, nil
}

// buildPayslipSource returns the local calculator, or the remote API behind
// an optional Redis cache with the local calculator as fallback.
func buildPayslipSource(ctx context.Context, cfg *config.Config) (
	payroll.PayslipSource,
	func(ctx context.Context, employeeID string, period payroll.Period),
	func(),
	error,
) {
	local := payrollService.NewLocalSource(payrollService.NewCalculator(cfg.Payroll.ScheduledStart))
	noopInvalidate := func(context.Context, string, payroll.Period) {}

	if cfg.PayrollAPI.URL == "" {
		return local, noopInvalidate, func() {}, nil
	}

	remote, err := payrollapi.NewRemoteSource(ctx, payrollapi.Config{
		BaseURL:       cfg.PayrollAPI.URL,
		ClientID:      cfg.PayrollAPI.ClientID,
		ClientSecret:  cfg.PayrollAPI.ClientSecret,
		TokenURL:      cfg.PayrollAPI.TokenURL,
		Scopes:        cfg.PayrollAPI.Scopes,
		RatePerSecond: cfg.PayrollAPI.RatePerSecond,
		Burst:         cfg.PayrollAPI.Burst,
		Timeout:       cfg.PayrollAPI.Timeout,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("payroll api: %w", err)
	}

	if cfg.Redis.URL == "" {
		return payrollService.NewFallbackSource(remote, local, cfg.PayrollAPI.FallbackTimeout), noopInvalidate, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, payslips will not be cached until it recovers", "error", err)
	}

	cached := cache.NewCachedSource(rdb, remote, cfg.Redis.CacheTTL)
	invalidate := func(ctx context.Context, employeeID string, period payroll.Period) {
		if err := cached.Invalidate(ctx, employeeID, period); err != nil {
			slog.Warn("failed to invalidate cached payslip", "employee_id", employeeID, "error", err)
		}
	}
	closeRedis := func() {
		if err := rdb.Close(); err != nil {
			slog.Warn("failed to close redis", "error", err)
		}
	}
	return payrollService.NewFallbackSource(cached, local, cfg.PayrollAPI.FallbackTimeout), invalidate, closeRedis, nil
}
