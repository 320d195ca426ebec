package app

import (
	"context"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/robfig/cron/v3"
	"github.com/talkincode/brewhub/config"
	"github.com/talkincode/brewhub/internal/booking"
	"github.com/talkincode/brewhub/internal/cart"
	"github.com/talkincode/brewhub/internal/catalog"
	"github.com/talkincode/brewhub/internal/dashboard"
	"github.com/talkincode/brewhub/internal/orders"
	"github.com/talkincode/brewhub/internal/remote"
	"github.com/talkincode/brewhub/internal/session"
	"github.com/talkincode/brewhub/internal/wishlist"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Application wires the client core together: config, logger, session
// store, remote client, managers and the two dashboard controllers.
type Application struct {
	appConfig *config.AppConfig
	sess      *session.Store
	client    *remote.Client
	bus       EventBus.Bus
	sched     *cron.Cron
	node      *snowflake.Node

	catalog   *catalog.Store
	cartMgr   *cart.Manager
	wishlist  *wishlist.Manager
	bookings  *booking.Manager
	history   *orders.History
	auth      *dashboard.Auth
	userDash  *dashboard.User
	adminDash *dashboard.Admin
}

var (
	_ ConfigProvider    = (*Application)(nil)
	_ SessionProvider   = (*Application)(nil)
	_ BusProvider       = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig { return a.appConfig }
func (a *Application) Session() *session.Store   { return a.sess }
func (a *Application) Bus() EventBus.Bus         { return a.bus }
func (a *Application) Scheduler() *cron.Cron     { return a.sched }

func (a *Application) Catalog() *catalog.Store          { return a.catalog }
func (a *Application) Cart() *cart.Manager              { return a.cartMgr }
func (a *Application) Wishlist() *wishlist.Manager      { return a.wishlist }
func (a *Application) Bookings() *booking.Manager       { return a.bookings }
func (a *Application) History() *orders.History         { return a.history }
func (a *Application) Auth() *dashboard.Auth            { return a.auth }
func (a *Application) UserDashboard() *dashboard.User   { return a.userDash }
func (a *Application) AdminDashboard() *dashboard.Admin { return a.adminDash }

// Init sets up the logger, opens the session store and builds every
// manager against the remote client. nav is the shell's Navigator.
func (a *Application) Init(nav dashboard.Navigator) error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger()

	if err := os.MkdirAll(cfg.System.Workdir, 0755); err != nil {
		return err
	}

	a.sess, err = session.Open(filepath.Join(cfg.System.Workdir, "brewhub.db"))
	if err != nil {
		return err
	}

	a.node, err = snowflake.NewNode(1)
	if err != nil {
		return err
	}

	a.bus = EventBus.New()
	a.client = remote.NewClient(cfg.Api, a.sess)

	a.catalog = catalog.NewStore(a.client)
	a.cartMgr = cart.New(a.client, a.client, a.bus, a.node)
	a.wishlist = wishlist.New(a.client)
	a.bookings = booking.New(a.client, a.node)
	a.history = orders.NewHistory(a.client, a.sess)
	a.auth = dashboard.NewAuth(a.client, a.sess, nav)

	a.userDash = dashboard.NewUser(dashboard.UserDeps{
		Catalog:          a.catalog,
		Cart:             a.cartMgr,
		Wishlist:         a.wishlist,
		Bookings:         a.bookings,
		History:          a.history,
		Session:          a.sess,
		Navigator:        nav,
		Bus:              a.bus,
		CheckoutRedirect: cfg.Api.CheckoutRedirect(),
	})
	a.adminDash = dashboard.NewAdmin(dashboard.AdminDeps{
		Catalog:   a.catalog,
		Api:       a.client,
		Bookings:  a.bookings,
		History:   a.history,
		Session:   a.sess,
		Navigator: nav,
		Bus:       a.bus,
	})

	a.initJobs()
	return nil
}

func (a *Application) initLogger() {
	cfg := a.appConfig
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

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
		var err error
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)
}

// initJobs schedules the periodic catalog refresh. The catalog is
// read-mostly; a stale copy only delays new menu items, so refresh
// failures are logged and skipped.
func (a *Application) initJobs() {
	a.sched = cron.New()
	spec := a.appConfig.Api.CatalogRefresh
	if spec == "" {
		spec = "@every 5m"
	}
	_, err := a.sched.AddFunc(spec, func() {
		if !a.sess.LoggedIn() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), a.appConfig.Api.RequestTimeout())
		defer cancel()
		if err := a.catalog.Load(ctx); err != nil {
			zap.L().Warn("catalog refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		zap.S().Errorf("invalid catalog refresh spec %q: %v", spec, err)
	}
}

// StartBackgroundJobs starts the cron scheduler.
func (a *Application) StartBackgroundJobs() {
	if a.sched != nil {
		a.sched.Start()
	}
}

// Release stops the scheduler, closes the session store and flushes the
// logger.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.sess != nil {
		if err := a.sess.Close(); err != nil {
			zap.L().Warn("closing session store", zap.Error(err))
		}
	}
	_ = zap.L().Sync()
}
