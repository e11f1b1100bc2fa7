package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/horarios/admin-console/internal/devbackend"
	"github.com/horarios/admin-console/pkg/logger"
)

func main() {
	cfg := devbackend.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development", Service: "devbackend"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users := devbackend.NewUserStore()
	if err := devbackend.Seed(users, cfg.SeedPassword, bcrypt.DefaultCost); err != nil {
		log.Fatal().Err(err).Msg("seed users")
	}
	svc := devbackend.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.RefreshWindow)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           devbackend.NewServer(svc, log).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("development backend listening")
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
