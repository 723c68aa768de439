package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/cryptoprivacy/storefront-api/internal/config"
	"github.com/cryptoprivacy/storefront-api/internal/domain/ledger"
	"github.com/cryptoprivacy/storefront-api/internal/domain/payment"
	"github.com/cryptoprivacy/storefront-api/internal/domain/product"
	"github.com/cryptoprivacy/storefront-api/internal/domain/storefront"
	"github.com/cryptoprivacy/storefront-api/internal/middleware"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/database"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/logger"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/nowpayments"
	pkgresponse "github.com/cryptoprivacy/storefront-api/internal/pkg/response"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/storage"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/supabase"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting storefront API")

	if cfg.IsProduction() && cfg.AdminPass == "admin123" {
		log.Warn().Msg("ADMIN_PASS is the default; set it before exposing /admin")
	}

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL, database.DefaultPool)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	// ---------- Repositories ----------
	var (
		ledgerRepo  ledger.Repository
		productRepo product.Repository
		paymentRepo payment.Repository
	)
	if cfg.UseSQL() {
		ledgerRepo = ledger.NewSQLRepository(db, cfg.LedgerTable)
		productRepo = product.NewSQLRepository(db, cfg.ProductsTable)
		paymentRepo = payment.NewSQLRepository(db, cfg.TransactionsTable)
	} else {
		sb := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, 0)
		if !sb.Configured() {
			log.Warn().Msg("Neither DATABASE_URL nor Supabase credentials are set; store reads will fail")
		}
		ledgerRepo = ledger.NewRESTRepository(sb, cfg.LedgerTable)
		productRepo = product.NewRESTRepository(sb, cfg.ProductsTable)
		paymentRepo = payment.NewRESTRepository(sb, cfg.TransactionsTable)
	}

	// ---------- Services ----------
	ledgerOpts := []ledger.Option{}
	if cfg.ExportArchiveEnabled {
		archive, err := storage.New(ctx, storage.Config{
			LocalDir:    cfg.ExportArchiveDir,
			S3Endpoint:  cfg.S3Endpoint,
			S3Region:    cfg.S3Region,
			S3Bucket:    cfg.S3Bucket,
			S3AccessKey: cfg.S3AccessKey,
			S3SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create export archive")
		}
		ledgerOpts = append(ledgerOpts, ledger.WithArchive(archive))
		log.Info().Bool("s3", cfg.UseS3()).Msg("Ledger export archive enabled")
	}

	ledgerService, err := ledger.NewService(ledgerRepo, newSessionStore(rdb, cfg.LedgerSessionTTL), cfg.AdminTimezone, ledgerOpts...)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.AdminTimezone).Msg("Failed to create ledger service")
	}

	productService := product.NewService(productRepo, rdb, cfg.ProductCacheTTL)
	storefrontService := storefront.NewService(productService, cfg.PaymentAddress())

	invoices := nowpayments.NewClient(cfg.NOWPaymentsBaseURL, cfg.NOWPaymentsAPIKey, 0)
	paymentService := payment.NewService(paymentRepo, invoices, productService, cfg.BaseURL)

	// ---------- Router ----------
	r := newRouter(cfg, routeHandlers{
		ledger:     ledger.NewHandler(ledgerService),
		products:   product.NewHandler(productService),
		storefront: storefront.NewHandler(storefrontService),
		payments:   payment.NewHandler(paymentService),
		ready:      readiness(db, rdb),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

type routeHandlers struct {
	ledger     *ledger.Handler
	products   *product.Handler
	storefront *storefront.Handler
	payments   *payment.Handler
	ready      func(ctx context.Context) error
}

func newRouter(cfg *config.Config, h routeHandlers) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if h.ready != nil {
			if err := h.ready(r.Context()); err != nil {
				log.Warn().Err(err).Msg("Health check degraded")
				status = "degraded"
			}
		}
		pkgresponse.OK(w, map[string]string{
			"status":  status,
			"version": version,
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/products", h.products.Routes())
		r.Post("/payments", h.payments.CreatePayment)
		r.Post("/transactions", h.payments.RecordTransaction)
		r.Mount("/", h.storefront.Routes())
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth(cfg.AdminUser, cfg.AdminPass))
		r.Mount("/api", h.ledger.Routes())
	})

	return r
}

func newSessionStore(rdb *redis.Client, ttl time.Duration) ledger.SessionStore {
	if rdb != nil {
		return ledger.NewRedisSessionStore(rdb, ttl)
	}
	log.Info().Msg("Redis not configured, ledger sessions kept in memory")
	return ledger.NewMemorySessionStore(ttl)
}

func readiness(db *sqlx.DB, rdb *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				return err
			}
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return err
			}
		}
		return nil
	}
}
