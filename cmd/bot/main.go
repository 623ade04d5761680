package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kaylobb/dinobot/internal/challenge"
	"github.com/kaylobb/dinobot/internal/common/clock"
	commonUUID "github.com/kaylobb/dinobot/internal/common/uuid"
	"github.com/kaylobb/dinobot/internal/config"
	"github.com/kaylobb/dinobot/internal/dice"
	"github.com/kaylobb/dinobot/internal/fragments"
	"github.com/kaylobb/dinobot/internal/handlers/discord"
	"github.com/kaylobb/dinobot/internal/imaging"
	dinoRepo "github.com/kaylobb/dinobot/internal/repositories/dino"
	duelStatsRepo "github.com/kaylobb/dinobot/internal/repositories/duelstats"
	userRepo "github.com/kaylobb/dinobot/internal/repositories/user"
	dinoService "github.com/kaylobb/dinobot/internal/services/dino"
	duelService "github.com/kaylobb/dinobot/internal/services/duel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	users, err := userRepo.NewRedis(&userRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Error("failed to create user repository", "error", err)
		os.Exit(1)
	}

	dinos, err := dinoRepo.NewRedis(&dinoRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Error("failed to create dino repository", "error", err)
		os.Exit(1)
	}

	duelStats, err := duelStatsRepo.NewRedis(&duelStatsRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Error("failed to create duel stats repository", "error", err)
		os.Exit(1)
	}

	// A missing or empty fragment directory is a deployment error
	pools, err := fragments.Load(cfg.FragmentDir)
	if err != nil {
		logger.Error("failed to load dino fragments", "dir", cfg.FragmentDir, "error", err)
		os.Exit(1)
	}

	composer, err := imaging.NewComposer(cfg.OutputDir)
	if err != nil {
		logger.Error("failed to create image composer", "dir", cfg.OutputDir, "error", err)
		os.Exit(1)
	}

	// Initialize services
	dinoSvc, err := dinoService.NewService(&dinoService.Config{
		UserRepo:   users,
		DinoRepo:   dinos,
		DiceRoller: dice.New(&dice.Config{}),
		Clock:      clock.New(),
		UUID:       commonUUID.New(),
		Pools:      pools,
		Renderer:   composer,
	})
	if err != nil {
		logger.Error("failed to create dino service", "error", err)
		os.Exit(1)
	}

	duelSvc, err := duelService.NewService(&duelService.Config{
		UserRepo:   users,
		StatsRepo:  duelStats,
		DiceRoller: dice.New(&dice.Config{}),
		Clock:      clock.New(),
	})
	if err != nil {
		logger.Error("failed to create duel service", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.DiscordApplicationID,
		GuildID:       cfg.DiscordGuildID,
		DinoService:   dinoSvc,
		DuelService:   duelSvc,
		Registry:      challenge.NewRegistry(),
		Logger:        logger,
	})
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	if err := bot.Start(); err != nil {
		logger.Error("failed to start bot", "error", err)
		os.Exit(1)
	}

	// Wait for a signal to shut down
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	if err := bot.Stop(); err != nil {
		logger.Error("failed to stop bot cleanly", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
}
