package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"

	"github.com/pennyspath/chat-backend/pkg/api/handler"
	"github.com/pennyspath/chat-backend/pkg/api/middleware"
	"github.com/pennyspath/chat-backend/pkg/logger"
	"github.com/pennyspath/chat-backend/pkg/openai"
	"github.com/pennyspath/chat-backend/pkg/ratelimit"
	"github.com/pennyspath/chat-backend/pkg/workers"
)

type Config struct {
	ServerAddress          string        `env:"SERVER_ADDRESS" envDefault:":8080"`
	OpenAIKey              string        `env:"OPENAI_API_KEY"`
	OpenAIRealtimeModel    string        `env:"OPENAI_REALTIME_MODEL" envDefault:"gpt-4o-realtime-preview"`
	AllowedOrigin          string        `env:"ALLOWED_ORIGIN"`
	StreamIdleTimeout      time.Duration `env:"STREAM_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout        time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RateLimitSweepInterval time.Duration `env:"RATE_LIMIT_SWEEP_INTERVAL" envDefault:"1h"`
	RateLimitBucketMaxAge  time.Duration `env:"RATE_LIMIT_BUCKET_MAX_AGE" envDefault:"24h"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	workerGroup, err := setupWorkers()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func setupWorkers() (workers.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	if cfg.OpenAIKey == "" {
		// The server still comes up so health checks and the persona
		// catalogue work; upstream calls fail with a configuration error.
		slog.Warn("OPENAI_API_KEY is not set, upstream requests will be rejected")
	}

	openAIClient := openai.NewClient(cfg.OpenAIKey, cfg.OpenAIRealtimeModel)
	limiter := ratelimit.NewLimiter()

	mux := http.NewServeMux()
	mux.Handle("/chat", handler.NewChat(openAIClient, limiter, cfg.StreamIdleTimeout))
	mux.Handle("/speech", handler.NewSpeech(openAIClient, limiter))
	mux.Handle("/transcribe", handler.NewTranscribe(openAIClient, limiter))
	mux.Handle("/realtime-token", handler.NewRealtimeToken(openAIClient, limiter, cfg.OpenAIRealtimeModel))
	mux.Handle("/personas", handler.NewPersonas(limiter))
	mux.Handle("/healthz", handler.NewHealth())

	httpHandler := middleware.RequestID(middleware.CORS(cfg.AllowedOrigin, mux))

	var workerGroup workers.Group

	if worker, err := workers.NewHTTPServer(cfg.ServerAddress, httpHandler, cfg.ShutdownTimeout); err == nil {
		workerGroup = append(workerGroup, worker)
	} else {
		return nil, err
	}

	if worker, err := workers.NewBucketSweeper(limiter, cfg.RateLimitSweepInterval, cfg.RateLimitBucketMaxAge); err == nil {
		workerGroup = append(workerGroup, worker)
	} else {
		return nil, err
	}

	return workerGroup, nil
}
