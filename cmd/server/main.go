package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidora/internal/api"
	"github.com/lalith-99/vidora/internal/auth"
	"github.com/lalith-99/vidora/internal/config"
	"github.com/lalith-99/vidora/internal/db"
	"github.com/lalith-99/vidora/internal/observ"
	"github.com/lalith-99/vidora/internal/repository"
	"github.com/lalith-99/vidora/internal/repository/memory"
	"github.com/lalith-99/vidora/internal/repository/postgres"
	"github.com/lalith-99/vidora/internal/repository/redis"
	"github.com/lalith-99/vidora/internal/service"
	"github.com/lalith-99/vidora/internal/storage"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// stores groups the repository implementations the services need, plus
// the probes the health endpoint runs against them.
type stores struct {
	users         repository.UserRepository
	videos        repository.VideoRepository
	comments      repository.CommentRepository
	tweets        repository.TweetRepository
	likes         repository.LikeRepository
	playlists     repository.PlaylistRepository
	subscriptions repository.SubscriptionRepository
	reads         repository.ReadModelRepository
	sessions      repository.SessionRepository

	checks  map[string]api.HealthCheck
	closers []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func run() error {
	// ---------------------------------------------------------------
	// 1. Config and logger
	// ---------------------------------------------------------------
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ---------------------------------------------------------------
	// 2. Stores
	//
	// Startup has no request deadline, so it runs on Background.
	// ---------------------------------------------------------------
	ctx := context.Background()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	assetStore, err := openAssetStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if pinger, ok := assetStore.(interface{ Ping(context.Context) error }); ok {
		st.checks["storage"] = pinger.Ping
	}

	// ---------------------------------------------------------------
	// 3. Services and router
	// ---------------------------------------------------------------
	tokens := auth.NewTokenIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	svc := api.Services{
		Users:         service.NewUserService(st.users, st.sessions, tokens, assetStore, logger),
		Videos:        service.NewVideoService(st.videos, st.users, assetStore, logger),
		Comments:      service.NewCommentService(st.comments, st.videos, logger),
		Tweets:        service.NewTweetService(st.tweets, st.users, logger),
		Likes:         service.NewLikeService(st.likes, st.videos, st.comments, st.tweets, logger),
		Playlists:     service.NewPlaylistService(st.playlists, st.videos, st.users, logger),
		Subscriptions: service.NewSubscriptionService(st.subscriptions, st.users, logger),
		Reads:         service.NewReadModel(st.reads, st.videos, logger),
	}

	router := api.NewRouter(svc, tokens, api.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins,
		SecureCookies:  cfg.CookieSecure,
		MaxUploadBytes: cfg.MaxUploadBytes,
		HealthChecks:   st.checks,
	}, logger)

	// ---------------------------------------------------------------
	// 4. Serve until SIGINT/SIGTERM
	//
	// WriteTimeout stays generous because uploads stream through the
	// handler before the response is written.
	// ---------------------------------------------------------------
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Minute,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting Vidora",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.String("store", cfg.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openStores connects the backend selected by STORE. Postgres keeps
// refresh tokens in Redis; the memory backend keeps them in process.
func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	if cfg.Store == "memory" {
		logger.Warn("using in-memory store, data is lost on restart")
		mem := memory.New()
		sessions := memory.NewSessionStore()
		return &stores{
			users:         mem.Users(),
			videos:        mem.Videos(),
			comments:      mem.Comments(),
			tweets:        mem.Tweets(),
			likes:         mem.Likes(),
			playlists:     mem.Playlists(),
			subscriptions: mem.Subscriptions(),
			reads:         mem.ReadModel(),
			sessions:      sessions,
			checks:        map[string]api.HealthCheck{"sessions": sessions.Ping},
		}, nil
	}

	database, err := db.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	sessions, err := redis.NewSessionStore(ctx, cfg.RedisURL)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("redis connection established")

	pool := database.Pool()
	return &stores{
		users:         postgres.NewUserStore(pool),
		videos:        postgres.NewVideoStore(pool),
		comments:      postgres.NewCommentStore(pool),
		tweets:        postgres.NewTweetStore(pool),
		likes:         postgres.NewLikeStore(pool),
		playlists:     postgres.NewPlaylistStore(pool),
		subscriptions: postgres.NewSubscriptionStore(pool),
		reads:         postgres.NewReadModelStore(pool),
		sessions:      sessions,
		checks: map[string]api.HealthCheck{
			"database": database.Health,
			"redis":    sessions.Ping,
		},
		closers: []func(){
			database.Close,
			func() {
				if err := sessions.Close(); err != nil {
					logger.Warn("failed to close redis client", zap.Error(err))
				}
			},
		},
	}, nil
}

// openAssetStore uses MinIO when an endpoint is configured and keeps
// uploads in memory otherwise.
func openAssetStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.AssetStore, error) {
	if cfg.MinioEndpoint == "" {
		logger.Warn("MINIO_ENDPOINT not set, keeping uploads in memory")
		return storage.NewMemoryStore(), nil
	}

	store, err := storage.NewMinioStore(ctx, storage.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		PublicURL: cfg.MinioPublicURL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to minio: %w", err)
	}
	return store, nil
}
