// @title        Horarios admin console
// @version      1.0
// @description  Session, role sections and backend pass-through of the academic scheduling console.
// @BasePath     /
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

	"github.com/horarios/admin-console/internal/api"
	"github.com/horarios/admin-console/internal/core/ports"
	"github.com/horarios/admin-console/internal/core/service"
	"github.com/horarios/admin-console/internal/infrastructure/apiclient"
	"github.com/horarios/admin-console/internal/infrastructure/credstore"
	mongostore "github.com/horarios/admin-console/internal/infrastructure/db/mongo"
	redisstore "github.com/horarios/admin-console/internal/infrastructure/db/redis"
	"github.com/horarios/admin-console/internal/pkg/config"
	"github.com/horarios/admin-console/pkg/logger"
)

type credentialBackend interface {
	ports.CredentialStore
	ports.Pinger
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Service: "console"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	creds, closeCreds, err := openCredentialStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Credential.Backend).Msg("credential store unavailable")
	}
	defer closeCreds()

	client := apiclient.New(cfg.Backend.URL,
		apiclient.WithTimeout(cfg.Backend.Timeout),
		apiclient.WithLogger(log.With().Str("component", "apiclient").Logger()),
	)
	session := service.NewSessionService(
		apiclient.NewAuthAPI(client),
		client,
		client,
		creds,
		service.SessionOptions{RefreshOnUnauthorized: cfg.Session.RefreshOnUnauthorized},
		log.With().Str("component", "session").Logger(),
	)

	router := api.NewRouter(api.Deps{
		Session:     session,
		Health:      map[string]ports.Pinger{"backend": client, "credentials": creds},
		RestoreWait: cfg.Session.RestoreWait,
		Log:         log,
	})

	go func() {
		state := session.Initialize(ctx)
		log.Info().Str("phase", string(state.Phase())).Msg("session initialized")
	}()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("backend", cfg.Backend.URL).Msg("console listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

func openCredentialStore(ctx context.Context, cfg *config.Config) (credentialBackend, func(), error) {
	noop := func() {}
	switch cfg.Credential.Backend {
	case config.CredentialMemory:
		return credstore.NewMemoryStore(), noop, nil
	case config.CredentialRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, noop, err
		}
		store := redisstore.NewCredentialStore(rdb, cfg.Credential.Key, redisstore.WithKeyPrefix(cfg.Redis.KeyPrefix))
		return store, func() { _ = rdb.Close() }, nil
	case config.CredentialMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, noop, err
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}
		return mongostore.NewCredentialStore(db, cfg.Credential.Key), closeFn, nil
	case config.CredentialFile:
		store, err := credstore.NewFileStore(cfg.Credential.Dir, cfg.Credential.Key)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	default:
		return nil, noop, fmt.Errorf("unsupported credential backend %q", cfg.Credential.Backend)
	}
}
