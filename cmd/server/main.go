package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "curio/internal/auth/handler"
	authservice "curio/internal/auth/service"
	"curio/internal/auth/store/revocation"
	"curio/internal/category"
	"curio/internal/city"
	"curio/internal/item"
	jwttoken "curio/internal/jwt_token"
	"curio/internal/platform/config"
	"curio/internal/platform/httpserver"
	"curio/internal/platform/logger"
	"curio/internal/platform/metrics"
	"curio/internal/platform/middleware"
	"curio/internal/platform/postgres"
	"curio/internal/platform/redis"
	"curio/internal/tag"
	"curio/internal/user"
	verificationhandler "curio/internal/verification/handler"
	verificationservice "curio/internal/verification/service"
	verificationstore "curio/internal/verification/store"
)

// stores groups one implementation per domain so wiring picks postgres or
// memory in a single place.
type stores struct {
	users         user.Store
	categories    category.Store
	tags          tag.Store
	cities        city.Store
	items         item.Store
	verifications verificationstore.Store
}

func memoryStores() stores {
	return stores{
		users:         user.NewInMemoryStore(),
		categories:    category.NewInMemoryStore(),
		tags:          tag.NewInMemoryStore(),
		cities:        city.NewInMemoryStore(),
		items:         item.NewInMemoryStore(),
		verifications: verificationstore.NewMemory(),
	}
}

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err.Error())
		os.Exit(1)
	}

	st := memoryStores()
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open postgres", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()

		if err := postgres.Migrate(db); err != nil {
			log.Error("failed to migrate postgres", "error", err.Error())
			os.Exit(1)
		}

		st = stores{
			users:         user.NewPostgres(db),
			categories:    category.NewPostgres(db),
			tags:          tag.NewPostgres(db),
			cities:        city.NewPostgres(db),
			items:         item.NewPostgres(db),
			verifications: verificationstore.NewPostgres(db),
		}
		log.Info("using postgres storage")
	} else {
		log.Info("no database configured, using in-memory storage")
	}

	var revocations authservice.RevocationList = revocation.NewMemoryTRL()
	redisClient, err := redis.New(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		revocations = revocation.NewRedisTRL(redisClient.Client)
		log.Info("using redis token revocation list")
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	jwtValidator := jwttoken.NewJWTServiceAdapter(jwtService)

	userService := user.NewService(st.users, m)
	authService := authservice.NewService(st.users, jwtService, revocations, cfg.AccessTokenTTL)
	tagService := tag.NewService(st.tags)
	categoryService := category.NewService(st.categories, st.items)
	cityService := city.NewService(st.cities, st.items)
	itemService := item.NewService(st.items, st.categories, st.cities, st.tags, st.verifications, m)
	verificationService := verificationservice.NewService(st.verifications, st.items, st.users, m)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.Latency(m))
	router.Use(middleware.Timeout(cfg.RequestTimeout))
	router.Use(middleware.ContentTypeJSON)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "health check failed", "error", err.Error())
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	user.NewHandler(userService, log).Register(router)
	authhandler.New(authService, jwtValidator, revocations, log).Register(router)
	category.NewHandler(categoryService, log).Register(router)
	tag.NewHandler(tagService, log).Register(router)
	city.NewHandler(cityService, log).Register(router)
	item.NewHandler(itemService, log).Register(router)
	verificationhandler.New(verificationService, jwtValidator, revocations, log).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
