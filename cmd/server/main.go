package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fupbi/followup-shell/chatkit"
	"github.com/fupbi/followup-shell/internal/config"
	"github.com/fupbi/followup-shell/server"
	"github.com/fupbi/followup-shell/session"
	"github.com/fupbi/followup-shell/users"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg := config.Load()
	setupLogging(cfg)
	displayAppname("FollowUP")

	if cfg.AuthSecret == "" {
		// Startup proceeds so the misconfiguration is observable over
		// HTTP (500s), matching the serverless deployment behaviour.
		log.Warn().Msg("AUTH_SECRET is not set; auth endpoints will answer 500")
	}

	registry, err := users.LoadRegistry(cfg.UsersFile)
	if err != nil {
		return fmt.Errorf("loading user registry: %w", err)
	}
	log.Info().Int("users", registry.Len()).Str("file", cfg.UsersFile).Msg("user registry loaded")

	sessions := session.NewService(cfg.AuthSecret, registry)
	provider := chatkit.NewClient(cfg.ChatKitBase, cfg.OpenAIAPIKey)

	httpServer := &http.Server{Addr: cfg.Port, Handler: server.New(cfg, sessions, provider)}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
