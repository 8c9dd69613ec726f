package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/autoparts-storefront/internal/application/admin"
	"github.com/jhoicas/autoparts-storefront/internal/application/catalog"
	"github.com/jhoicas/autoparts-storefront/internal/application/checkout"
	"github.com/jhoicas/autoparts-storefront/internal/application/orders"
	"github.com/jhoicas/autoparts-storefront/internal/application/payment"
	"github.com/jhoicas/autoparts-storefront/internal/application/session"
	"github.com/jhoicas/autoparts-storefront/internal/domain/repository"
	"github.com/jhoicas/autoparts-storefront/internal/infrastructure/backend"
	"github.com/jhoicas/autoparts-storefront/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/autoparts-storefront/internal/infrastructure/pdf"
	"github.com/jhoicas/autoparts-storefront/internal/infrastructure/postgres"
	"github.com/jhoicas/autoparts-storefront/internal/infrastructure/qrcode"
	infraredis "github.com/jhoicas/autoparts-storefront/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/autoparts-storefront/internal/interfaces/http"
	"github.com/jhoicas/autoparts-storefront/pkg/config"
	"github.com/jhoicas/autoparts-storefront/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: los tokens sólo sirven para desarrollo")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	state, closeState, err := openStateStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("almacén de sesiones")
	}
	defer closeState()

	client, err := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente del backend")
	}

	sessions := session.NewManager(state, client)
	catalogSvc := catalog.NewService(client)
	checkoutSvc := checkout.NewService(client, checkout.WithConfirmDelay(cfg.Payment.ConfirmDelay))
	dashboard := payment.NewDashboard(client)
	ordersSvc := orders.NewService(
		client,
		infrapdf.NewMarotoReceiptGenerator(cfg.App.Name),
		qrcode.NewService(256, "M"),
		cfg.App.PublicURL,
	)
	adminSvc := admin.NewService(client)

	limiter := httpRouter.NewLoginLimiter(5, time.Minute)
	locker := session.NewLocker()
	payments := httpRouter.NewPaymentHandler(client, dashboard, locker, httpRouter.PaymentOptions{
		Delay:         cfg.Payment.SimulatedDelay,
		RedirectDelay: cfg.Payment.RedirectDelay,
	})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Sweep()
				payments.Sweep()
			}
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Payment.SimulatedDelay + cfg.Payment.RedirectDelay + cfg.Backend.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AutoParts Storefront API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:  sessions,
		State:     state,
		CartGW:    client,
		Catalog:   catalogSvc,
		Checkout:  checkoutSvc,
		Confirmer: client,
		Dashboard: dashboard,
		Orders:    ordersSvc,
		Admin:     adminSvc,
		Payments:  payments,
		Tokens: httpRouter.TokenConfig{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
		},
		Limiter: limiter,
		Locker:  locker,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStateStore abre el almacén de sesiones según STORE_DRIVER. El closer libera conexiones y goroutines.
func openStateStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.StateStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewStateStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		if cfg.Store.TTL > 0 {
			go purgeLoop(ctx, store, cfg.Store.TTL, log)
		}
		return store, pool.Close, nil

	case config.StoreRedis:
		client, err := infraredis.NewClient(infraredis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		store := infraredis.NewStateStore(client, cfg.Store.TTL)
		return store, func() { closeQuietly(store) }, nil

	default:
		store := memory.NewStateStore(cfg.Store.TTL)
		return store, store.Close, nil
	}
}

// purgeLoop borra periódicamente las sesiones vencidas en PostgreSQL.
func purgeLoop(ctx context.Context, store *postgres.StateStore, ttl time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if abandoned, err := store.AbandonedCarts(ctx, ttl); err != nil {
				log.Warn().Err(err).Msg("carritos abandonados")
			} else if abandoned.Carts > 0 {
				log.Info().
					Int64("carts", abandoned.Carts).
					Str("total", abandoned.Total.StringFixed(2)).
					Msg("carritos abandonados antes de la purga")
			}
			n, err := store.PurgeExpired(ctx, ttl)
			if err != nil {
				log.Warn().Err(err).Msg("purga de sesiones")
				continue
			}
			if n > 0 {
				log.Info().Int64("rows", n).Msg("sesiones vencidas eliminadas")
			}
		}
	}
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}
