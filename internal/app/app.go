package app

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bistrostack/gastropanel/config"
	"github.com/bistrostack/gastropanel/internal/audit"
	"github.com/bistrostack/gastropanel/internal/notify"
	"github.com/bistrostack/gastropanel/internal/repository"
	"github.com/bistrostack/gastropanel/pkg/metrics"
	"github.com/robfig/cron/v3"
)

const auditWorkers = 4

type Application struct {
	appConfig *config.AppConfig
	store     *repository.Store
	sched     *cron.Cron
	recorder  *audit.Recorder
	notifier  *notify.Publisher
}

// Ensure Application implements all interfaces
var (
	_ StoreProvider     = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AuditProvider     = (*Application)(nil)
	_ NotifyProvider    = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() *repository.Store {
	return a.store
}

// OverrideStore replaces the application's persistence handle (used in tests).
func (a *Application) OverrideStore(store *repository.Store) {
	a.store = store
}

func (a *Application) Init(ctx context.Context, cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	metrics.InitMetrics(cfg.Metrics.Prefix)

	// A failed database connection is fatal.
	a.store, err = repository.Connect(ctx, cfg.Database.URL, cfg.Database.Name)
	if err != nil {
		return err
	}
	zap.S().Infof("Database connection successful, name: %s", cfg.Database.Name)

	if err := a.store.EnsureIndexes(ctx); err != nil {
		zap.S().Errorf("index creation failed: %v", err)
	}
	if n, err := a.store.CountEmployees(ctx); err == nil {
		zap.S().Infof("staff directory loaded, %d employees", n)
	}

	a.recorder, err = audit.NewRecorder(a.store, auditWorkers)
	if err != nil {
		zap.S().Errorf("audit recorder init failed: %v", err)
	}

	// The event broker is optional; the API runs fine without it.
	a.notifier, err = notify.Dial(cfg.Amqp.URL, cfg.Amqp.Exchange)
	if err != nil {
		zap.S().Warnf("event broker unavailable: %v", err)
		a.notifier = nil
	}

	a.checkCatalog(ctx)

	a.initJob()
	return nil
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Audit returns the activity recorder
func (a *Application) Audit() *audit.Recorder {
	return a.recorder
}

// Notifier returns the event publisher; nil when no broker is configured
func (a *Application) Notifier() *notify.Publisher {
	return a.notifier
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}

	if a.recorder != nil {
		a.recorder.Close()
	}

	if a.notifier != nil {
		a.notifier.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.store.Close(ctx)

	_ = zap.L().Sync()
}
