package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"pawmarket/internal/adapter/api"
	"pawmarket/internal/adapter/api/handler"
	apimiddleware "pawmarket/internal/adapter/api/middleware"
	"pawmarket/internal/adapter/api/router"
	"pawmarket/internal/adapter/repository"
	"pawmarket/internal/domain/service"
	"pawmarket/internal/infrastructure/firebase"
	"pawmarket/internal/infrastructure/lock"
	"pawmarket/internal/infrastructure/metrics"
	"pawmarket/internal/infrastructure/ratelimit"
	"pawmarket/internal/infrastructure/storage"
	"pawmarket/internal/usecase"
	"pawmarket/pkg/config"
	"pawmarket/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Configure(os.Stdout, cfg.Environment)
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opt option.ClientOption
	switch {
	case cfg.FirebaseServiceAccountJSON != "":
		logger.Info("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))
	case cfg.FirebaseServiceAccountPath != "":
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); err != nil {
			log.Fatal().Err(err).Str("path", cfg.FirebaseServiceAccountPath).Msg("Service account file is not readable")
		}
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
		opt = option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)
	default:
		logger.Info("Using application default credentials")
	}

	var opts []option.ClientOption
	if opt != nil {
		opts = append(opts, opt)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Firebase")
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Firebase Auth")
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Firestore client")
	}
	defer firestoreClient.Close()

	bucket := cfg.StorageBucket
	if bucket == "" {
		bucket = cfg.FirebaseProject + ".appspot.com"
	}
	storageClient, err := storage.NewCloudStorageClient(ctx, bucket, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Cloud Storage")
	}
	defer storageClient.Close()

	store := repository.NewStore(firestoreClient, repository.StoreOptions{
		CallTimeout: cfg.StoreCallTimeout,
		MaxRetries:  cfg.StoreMaxRetries,
	})

	profileRepo := repository.NewFirestoreProfileRepository(store)
	inspectorRepo := repository.NewFirestoreInspectorRepository(store)
	shopRepo := repository.NewFirestoreShopRepository(store)
	productRepo := repository.NewFirestoreProductRepository(store)
	cartRepo := repository.NewFirestoreCartRepository(store)
	orderRepo := repository.NewFirestoreOrderRepository(store)
	checkoutRepo := repository.NewFirestoreCheckoutRepository(store)
	postRepo := repository.NewFirestorePostRepository(store)
	commentRepo := repository.NewFirestoreCommentRepository(store)
	ratingRepo := repository.NewFirestoreRatingRepository(store)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	healthChecks := map[string]handler.HealthCheck{
		"firestore": store.Ping,
	}

	var locker service.Locker
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
		}
		locker = lock.NewRedisLocker(redisClient, "pawmarket:lock:")
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
		logger.Info("Checkout locks backed by Redis at %s", cfg.RedisAddr)
	} else {
		locker = lock.NewMemoryLocker()
		logger.Warn("REDIS_ADDR not set, checkout locks are process-local")
	}

	collector := metrics.NewCollector("pawmarket")

	limiter := ratelimit.NewRateLimiter(
		ratelimit.Policy{PerMinute: 60, Burst: 20},
		map[string]ratelimit.Policy{
			router.ActionAuthLogin:     {PerMinute: cfg.AuthPerMinute, Burst: cfg.AuthPerMinute},
			router.ActionCreatePost:    {PerMinute: cfg.FeedWritesPerMinute, Burst: 5},
			router.ActionCreateComment: {PerMinute: cfg.FeedWritesPerMinute, Burst: 5},
			router.ActionLikePost:      {PerMinute: cfg.FeedWritesPerMinute * 3, Burst: 10},
		},
	)
	limiter.StartCleanupRoutine(ctx, 5*time.Minute)

	profileUseCase := usecase.NewProfileUseCase(profileRepo, storageClient, collector)
	inspectorUseCase := usecase.NewInspectorUseCase(inspectorRepo, shopRepo, postRepo, profileUseCase)
	moderationUseCase := usecase.NewModerationUseCase(inspectorUseCase, shopRepo, postRepo, collector)
	shopUseCase := usecase.NewShopUseCase(shopRepo, orderRepo, storageClient)
	productUseCase := usecase.NewProductUseCase(productRepo, shopRepo, storageClient)
	cartUseCase := usecase.NewCartUseCase(cartRepo, productRepo, shopRepo)
	checkoutUseCase := usecase.NewCheckoutUseCase(cartUseCase, cartRepo, shopRepo, orderRepo, checkoutRepo, locker, cfg.CheckoutLockTTL, collector)
	postUseCase := usecase.NewPostUseCase(postRepo, commentRepo, inspectorUseCase, profileUseCase)
	ratingUseCase := usecase.NewRatingUseCase(ratingRepo, orderRepo, productRepo, shopRepo)
	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, profileUseCase, inspectorUseCase)

	handler.Setup(
		authUseCase,
		profileUseCase,
		inspectorUseCase,
		moderationUseCase,
		shopUseCase,
		productUseCase,
		cartUseCase,
		checkoutUseCase,
		postUseCase,
		ratingUseCase,
	)
	handler.SetupHealthHandler(healthChecks)

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.IsDevelopment()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(apimiddleware.RequestLogger())
	e.Use(apimiddleware.Metrics(collector))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	inspectorMiddleware := apimiddleware.NewInspectorMiddleware(inspectorUseCase)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter, collector)

	router.Setup(e, authMiddleware, inspectorMiddleware, rateLimitMiddleware, collector.Handler())

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
