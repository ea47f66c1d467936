package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"

	"github.com/convoybot/convoy/internal/common/clock"
	"github.com/convoybot/convoy/internal/common/uuid"
	"github.com/convoybot/convoy/internal/config"
	"github.com/convoybot/convoy/internal/handlers/discord"
	sessionRepo "github.com/convoybot/convoy/internal/repositories/session"
	moveService "github.com/convoybot/convoy/internal/services/move"
	"github.com/convoybot/convoy/internal/services/relocation"
)

// sessionTTLMargin keeps session records around a little past their
// deadline so a late timer still finds its session
const sessionTTLMargin = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	repo, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
		SessionTTL:  cfg.MoveTimeout + sessionTTLMargin,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	// One Discord session is shared by the bot, the notifier and the
	// platform adapter
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	adapter := discord.NewPlatformAdapter(dg)
	notifier := discord.NewNotifier(dg)

	// Initialize services
	relocator, err := relocation.New(&relocation.Config{
		MoveWait:          cfg.MoveWait,
		VCCreateChannel:   cfg.VCCreateChannel,
		VCCategory:        cfg.VCCategory,
		VCIgnoredChannels: cfg.VCIgnoredChannels,
		Mover:             adapter,
	})
	if err != nil {
		log.Fatalf("Failed to create relocation service: %v", err)
	}

	moveSvc, err := moveService.New(&moveService.Config{
		MoveTimeout:       cfg.MoveTimeout,
		VCCreateChannel:   cfg.VCCreateChannel,
		VCCategory:        cfg.VCCategory,
		VCIgnoredChannels: cfg.VCIgnoredChannels,
		SessionRepo:       repo,
		Relocator:         relocator,
		Notifier:          notifier,
		Channels:          adapter,
		Clock:             clock.New(),
		UUIDGenerator:     uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create move service: %v", err)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Session:       dg,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		MoveService:   moveSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cancel pending sessions before dropping the gateway connection so
	// their tracking messages don't dangle
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := moveSvc.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error cancelling pending sessions: %v", err)
	}

	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}
